package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
)

type failingStore struct{}

func (failingStore) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("blob not found")
}

func testQuotation(items []domain.LineItem) *domain.Quotation {
	return &domain.Quotation{
		QuoteNumber:    "2045",
		QuoteDate:      time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		ClientName:     "ACME Builders",
		JobDescription: "Warehouse Repainting",
		Address:        "Pasig City",
		Attention:      "Ms. Cruz",
		TermsTemplate:  domain.TermsTemplate1,
		Items:          items,
	}
}

func TestGenerateProducesPDF(t *testing.T) {
	g := NewGenerator(nil, Config{}, zap.NewNop())

	var buf bytes.Buffer
	err := g.Generate(context.Background(), testQuotation([]domain.LineItem{
		{Description: "Surface preparation and repainting of warehouse exterior", Price: "Php 150,000.00"},
		{Description: "Scaffolding rental", Price: "25000"},
		{Description: "Contingency", Price: ""},
	}), &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

// asset fetch failures must never abort document generation
func TestGenerateSurvivesAssetFailure(t *testing.T) {
	g := NewGenerator(failingStore{}, Config{
		LogoPath:      "assets/logo.png",
		SignaturePath: "assets/signature.png",
	}, zap.NewNop())

	var buf bytes.Buffer
	err := g.Generate(context.Background(), testQuotation([]domain.LineItem{
		{Description: "Test item", Price: "100"},
	}), &buf)
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestGenerateLongItemListPaginates(t *testing.T) {
	long := strings.Repeat("supply and install of reinforced concrete works ", 8)
	items := make([]domain.LineItem, 0, domain.MaxLineItems)
	for i := 0; i < domain.MaxLineItems; i++ {
		items = append(items, domain.LineItem{
			Description: fmt.Sprintf("Phase %d: %s", i+1, long),
			Price:       "10000",
		})
	}

	g := NewGenerator(nil, Config{}, zap.NewNop())
	var buf bytes.Buffer
	require.NoError(t, g.Generate(context.Background(), testQuotation(items), &buf))
	// a paginated document is materially larger than a single page
	assert.Greater(t, buf.Len(), 2000)
}

func TestGenerateRejectsUnknownTemplateGracefully(t *testing.T) {
	q := testQuotation([]domain.LineItem{{Description: "x", Price: "1"}})
	q.TermsTemplate = domain.TermsTemplateID("bogus")

	g := NewGenerator(nil, Config{}, zap.NewNop())
	var buf bytes.Buffer
	// invalid templates fall back to the default rather than failing
	require.NoError(t, g.Generate(context.Background(), q, &buf))
}

func TestBreakPageIfThreshold(t *testing.T) {
	newCtx := func() *layoutContext {
		pdf := gofpdf.New("P", "pt", "Letter", "")
		pdf.SetAutoPageBreak(false, 0)
		pdf.AddPage()
		return &layoutContext{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: marginTop, page: 1}
	}

	lc := newCtx()
	lc.y = pageHeight - itemRowReserve
	lc.breakPageIf(itemRowReserve)
	assert.Equal(t, 1, lc.page, "at the threshold exactly, no break")

	lc = newCtx()
	lc.y = pageHeight - itemRowReserve + 1
	lc.breakPageIf(itemRowReserve)
	assert.Equal(t, 2, lc.page, "past the threshold, break")
	assert.Equal(t, marginTop, lc.y)
}
