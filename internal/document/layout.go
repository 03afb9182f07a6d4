// Package document renders a finalized quotation into a paginated,
// print-ready PDF.
//
// Layout is a strictly sequential cursor algorithm: every drawing step
// receives the layout context, draws at the current vertical offset and
// advances it, inserting page breaks when the remaining space falls below
// the step's bottom reserve. There is no shared mutable state outside the
// context, so each section can be exercised in isolation.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
	"github.com/fcm-construction/opsdesk-api/internal/terms"
)

// Page geometry in points (Letter portrait).
const (
	pageWidth  = 612.0
	pageHeight = 792.0

	marginLeft  = 40.0
	marginRight = 40.0
	marginTop   = 50.0

	lineHeight = 14.0

	// Bottom reserves: item rows break earlier than the terms section
	// because a term clause needs room for its banner as well.
	itemRowReserve  = 60.0
	termsReserve    = 70.0
	signatureHeight = 140.0

	contentWidth = pageWidth - marginLeft - marginRight

	logoWidth      = 140.0
	signatureWidth = 110.0
	priceColWidth  = 90.0
)

// Fixed header and footer copy.
var (
	companyName  = "FCM CONSTRUCTION SERVICES"
	contactLines = []string{
		"Blk 5 Lot 12 Marcos Highway, Mayamot, Antipolo City, Rizal",
		"Mobile: 0917 555 1234 | Tel: (02) 8655 0123",
		"Email: fcmconstructionservices@gmail.com",
	}
	confirmedBy = "CONFIRMED: ENGR. FERDINAND C. MANALO"
	footerLines = []string{
		"This quotation is valid only when countersigned by an authorized FCM representative.",
		"FCM Construction Services | Antipolo City, Rizal, Philippines",
	}
	thankYouLine = "Thank you for your business!"
)

// Config points the generator at the static image assets.
type Config struct {
	LogoPath      string
	SignaturePath string
}

// Generator renders quotation documents. Safe for concurrent use; each
// Generate call builds its own PDF instance.
type Generator struct {
	store  AssetStore
	cfg    Config
	logger *zap.Logger
}

func NewGenerator(store AssetStore, cfg Config, logger *zap.Logger) *Generator {
	return &Generator{store: store, cfg: cfg, logger: logger}
}

// layoutContext carries the cursor state threaded through every drawing
// step: the current page's vertical offset and the page count. y always
// points at the top of the next element.
type layoutContext struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	y    float64
	page int
}

// breakPageIf starts a new page when the cursor has passed the bottom
// reserve. Called before drawing any element that must not start inside
// the reserve band.
func (lc *layoutContext) breakPageIf(reserve float64) {
	if lc.y > pageHeight-reserve {
		lc.pdf.AddPage()
		lc.page++
		lc.y = marginTop
	}
}

// text draws s with its baseline one font-ascent below the cursor, without
// advancing it. Callers advance explicitly so multi-column rows share a
// baseline.
func (lc *layoutContext) text(x, y float64, s string) {
	lc.pdf.Text(x, y+10, lc.tr(s))
}

func (lc *layoutContext) textCentered(y float64, s string) {
	lc.text((pageWidth-lc.pdf.GetStringWidth(lc.tr(s)))/2, y, s)
}

func (lc *layoutContext) textRight(y float64, s string) {
	lc.text(pageWidth-marginRight-lc.pdf.GetStringWidth(lc.tr(s)), y, s)
}

func (lc *layoutContext) measure(s string) float64 {
	return lc.pdf.GetStringWidth(lc.tr(s))
}

// Generate renders the quotation to w. Terms and the total are re-resolved
// from the current template and items so the document can never show stale
// clause text.
func (g *Generator) Generate(ctx context.Context, q *domain.Quotation, w io.Writer) error {
	template := q.TermsTemplate
	if !template.IsValid() {
		template = domain.TermsTemplate1
	}

	total := decimal.Zero
	for _, item := range q.Items {
		total = total.Add(money.ParseOrZero(item.Price))
	}

	resolved, err := terms.Resolve(template, total)
	if err != nil {
		return fmt.Errorf("resolve terms for document: %w", err)
	}

	logo := fetchAsset(ctx, g.store, g.cfg.LogoPath, g.logger)
	signature := fetchAsset(ctx, g.store, g.cfg.SignaturePath, g.logger)

	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(fmt.Sprintf("Quotation %s", q.QuoteNumber), true)
	pdf.AddPage()

	lc := &layoutContext{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		y:    marginTop,
		page: 1,
	}

	g.drawLogo(lc, logo)
	g.drawContactInfo(lc)
	g.drawRule(lc)
	g.drawMetaRow(lc, q)
	g.drawClientInfo(lc, q)
	g.drawItems(lc, q.Items)
	g.drawTotal(lc, total)
	g.drawTerms(lc, resolved)
	g.drawProposal(lc, resolved)
	g.drawSignature(lc, signature)
	g.drawFooter(lc)

	if pdf.Err() {
		return fmt.Errorf("render quotation document: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// drawLogo centers the logo scaled to a fixed width, preserving aspect
// ratio. Without a usable image the company name is printed instead so the
// header is never blank.
func (g *Generator) drawLogo(lc *layoutContext, logo []byte) {
	if typ := imageType(logo); typ != "" {
		opts := gofpdf.ImageOptions{ImageType: typ}
		info := lc.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo))
		if lc.pdf.Err() {
			g.logger.Warn("logo decode failed, generating document without image",
				zap.Error(lc.pdf.Error()))
			lc.pdf.ClearError()
		} else if info.Width() > 0 {
			h := logoWidth * info.Height() / info.Width()
			lc.pdf.ImageOptions("logo", (pageWidth-logoWidth)/2, lc.y, logoWidth, h, false, opts, 0, "")
			lc.y += h + 10
			return
		}
	}

	lc.pdf.SetFont("Helvetica", "B", 16)
	lc.textCentered(lc.y, companyName)
	lc.y += 20 + 10
}

func (g *Generator) drawContactInfo(lc *layoutContext) {
	lc.pdf.SetFont("Helvetica", "", 9)
	for _, line := range contactLines {
		lc.textCentered(lc.y, line)
		lc.y += 12
	}
}

func (g *Generator) drawRule(lc *layoutContext) {
	lc.y += 6
	lc.pdf.SetLineWidth(1)
	lc.pdf.Line(marginLeft, lc.y, pageWidth-marginRight, lc.y)
	lc.y += 16
}

func (g *Generator) drawMetaRow(lc *layoutContext, q *domain.Quotation) {
	lc.pdf.SetFont("Helvetica", "", 10)
	meta := "Date: " + q.QuoteDate.Format("January 2, 2006")
	if q.ValidUntil != nil {
		meta += "    Valid Until: " + q.ValidUntil.Format("January 2, 2006")
	}
	lc.text(marginLeft, lc.y, meta)

	lc.pdf.SetFont("Helvetica", "B", 10)
	lc.textRight(lc.y, "Quotation No. "+q.QuoteNumber)
	lc.y += lineHeight + 8
}

// drawBanner draws a filled section header band and advances past it.
func (g *Generator) drawBanner(lc *layoutContext, label string) {
	lc.pdf.SetFillColor(222, 222, 222)
	lc.pdf.Rect(marginLeft, lc.y, contentWidth, 18, "F")
	lc.pdf.SetFont("Helvetica", "B", 10)
	lc.text(marginLeft+6, lc.y+2, label)
	lc.y += 18 + 8
}

// drawClientInfo prints five label:value rows. The value starts immediately
// after the measured label width, not at a fixed column.
func (g *Generator) drawClientInfo(lc *layoutContext, q *domain.Quotation) {
	g.drawBanner(lc, "CLIENT INFORMATION")

	rows := []struct {
		label, value string
	}{
		{"Client Name: ", q.ClientName},
		{"Job Description: ", q.JobDescription},
		{"Contact No.: ", q.ContactNumber},
		{"Address: ", q.Address},
		{"Attention: ", q.Attention},
	}

	for _, row := range rows {
		lc.pdf.SetFont("Helvetica", "", 10)
		lc.text(marginLeft, lc.y, row.label)
		labelWidth := lc.measure(row.label)

		lc.pdf.SetFont("Helvetica", "B", 10)
		lc.text(marginLeft+labelWidth, lc.y, row.value)
		lc.y += lineHeight
	}
	lc.y += 6
}

// drawItems prints one row per non-empty line item. Descriptions word-wrap
// into the width left after the price column; the price aligns with the
// row's first wrapped line. Each row checks the page break before drawing.
func (g *Generator) drawItems(lc *layoutContext, items []domain.LineItem) {
	g.drawBanner(lc, "DESCRIPTION")

	var visible []domain.LineItem
	for _, item := range items {
		if item.Description != "" || item.Price != "" {
			visible = append(visible, item)
		}
	}

	numbered := len(visible) > 1
	descWidth := contentWidth - priceColWidth - 10

	for i, item := range visible {
		lc.breakPageIf(itemRowReserve)

		prefix := "• "
		if numbered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}

		lc.pdf.SetFont("Helvetica", "", 10)
		lines := wrapText(lc.measure, prefix+item.Description, descWidth)
		if len(lines) == 0 {
			lines = []string{prefix}
		}

		firstLineY := lc.y
		for _, line := range lines {
			lc.text(marginLeft, lc.y, line)
			lc.y += lineHeight
		}

		price := domain.AmountPlaceholder
		if d, ok := money.Parse(item.Price); ok {
			price = "Php " + money.Format(d)
		}
		lc.textRight(firstLineY, price)

		lc.y += 2
	}
}

func (g *Generator) drawTotal(lc *layoutContext, total decimal.Decimal) {
	lc.y += 4
	lc.pdf.SetFont("Helvetica", "I", 9)
	lc.textCentered(lc.y, "*** NOTHING FOLLOWS ***")
	lc.y += lineHeight + 4

	lc.pdf.SetFont("Helvetica", "B", 11)
	lc.text(marginLeft, lc.y, "TOTAL DUE")
	lc.textRight(lc.y, "Php "+money.Format(total))
	lc.y += lineHeight + 10
}

func (g *Generator) drawTerms(lc *layoutContext, resolved terms.Resolved) {
	lc.breakPageIf(termsReserve)
	g.drawBanner(lc, "TERMS AND CONDITIONS")

	for i, clause := range resolved.Clauses {
		lc.breakPageIf(termsReserve)

		lc.pdf.SetFont("Helvetica", "", 10)
		for _, line := range wrapText(lc.measure, fmt.Sprintf("%d. %s", i+1, clause), contentWidth) {
			lc.text(marginLeft, lc.y, line)
			lc.y += lineHeight
		}
		lc.y += 2
	}
}

// drawProposal word-wraps the proposal prefix, then renders the bold total
// (plus closing period) inline on the last wrapped line when it fits, or on
// its own line otherwise. The total is never split across a wrap boundary.
func (g *Generator) drawProposal(lc *layoutContext, resolved terms.Resolved) {
	lc.breakPageIf(termsReserve)
	lc.y += 6

	lc.pdf.SetFont("Helvetica", "", 10)
	lines := wrapText(lc.measure, resolved.ProposalPrefix, contentWidth)
	if len(lines) == 0 {
		return
	}

	tail := resolved.ProposalTotal + resolved.ProposalSuffix
	lc.pdf.SetFont("Helvetica", "B", 10)
	tailWidth := lc.measure(tail)
	lc.pdf.SetFont("Helvetica", "", 10)

	last := lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		lc.text(marginLeft, lc.y, line)
		lc.y += lineHeight
	}

	if fitsInline(lc.measure, last, tailWidth, contentWidth) {
		lc.text(marginLeft, lc.y, last)
		x := marginLeft + lc.measure(last+" ")
		lc.pdf.SetFont("Helvetica", "B", 10)
		lc.text(x, lc.y, tail)
		lc.y += lineHeight
	} else {
		lc.text(marginLeft, lc.y, last)
		lc.y += lineHeight
		lc.pdf.SetFont("Helvetica", "B", 10)
		lc.text(marginLeft, lc.y, tail)
		lc.y += lineHeight
	}
	lc.y += 10
}

// drawSignature prints the acceptance line and signature rule, then the
// signature image and the confirmation caption positioned below the image's
// measured height, whatever its aspect ratio.
func (g *Generator) drawSignature(lc *layoutContext, signature []byte) {
	lc.breakPageIf(signatureHeight)

	lc.pdf.SetFont("Helvetica", "", 10)
	lc.text(marginLeft, lc.y, "Accepted and approved by:")
	lc.y += lineHeight + 14

	lc.pdf.SetFont("Helvetica", "B", 10)
	lc.text(marginLeft, lc.y, "X")
	lc.pdf.SetLineWidth(0.5)
	lc.pdf.Line(marginLeft+14, lc.y+12, marginLeft+214, lc.y+12)
	lc.y += lineHeight + 10

	sigHeight := 0.0
	if typ := imageType(signature); typ != "" {
		opts := gofpdf.ImageOptions{ImageType: typ}
		info := lc.pdf.RegisterImageOptionsReader("signature", opts, bytes.NewReader(signature))
		if lc.pdf.Err() {
			g.logger.Warn("signature decode failed, generating document without image",
				zap.Error(lc.pdf.Error()))
			lc.pdf.ClearError()
		} else if info.Width() > 0 {
			sigHeight = signatureWidth * info.Height() / info.Width()
			lc.pdf.ImageOptions("signature", marginLeft, lc.y, signatureWidth, sigHeight, false, opts, 0, "")
		}
	}

	lc.pdf.SetFont("Helvetica", "B", 10)
	lc.text(marginLeft, lc.y+sigHeight+2, confirmedBy)
	lc.y += sigHeight + lineHeight + 10
}

func (g *Generator) drawFooter(lc *layoutContext) {
	lc.pdf.SetFont("Helvetica", "", 8)
	for _, line := range footerLines {
		lc.text(marginLeft, lc.y, line)
		lc.y += 11
	}

	lc.pdf.SetFont("Helvetica", "I", 9)
	lc.textCentered(lc.y, thankYouLine)
	lc.y += lineHeight
}

// DownloadName returns the filename clients save the document as.
func DownloadName(q *domain.Quotation) string {
	return Filename(q.QuoteNumber, q.ClientName, q.JobDescription)
}
