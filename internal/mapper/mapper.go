// Package mapper converts between persisted models, request payloads and
// API DTOs.
//
// Requests for quotations and billing entries accept legacy field-name
// aliases left behind by the spreadsheet-era record store (see decode.go).
// Alias resolution happens here, once, at the decode boundary; everything
// past the mapper works with the canonical shapes only.
package mapper

import (
	"time"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/money"
)

const (
	dateFormat      = "2006-01-02"
	timestampFormat = "2006-01-02T15:04:05Z"
)

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}

// ParseDate parses an ISO date string into a *time.Time, nil when blank.
// Validation has already guaranteed the format.
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// ToLineItemDTO converts LineItem to LineItemDTO
func ToLineItemDTO(item *domain.LineItem) domain.LineItemDTO {
	return domain.LineItemDTO{
		ID:           item.ID,
		Description:  item.Description,
		Price:        item.Price,
		PriceDisplay: money.FormatDisplay(item.Price, domain.AmountPlaceholder),
		Position:     item.Position,
	}
}

// ToQuotationDTO converts Quotation to QuotationDTO
func ToQuotationDTO(q *domain.Quotation) domain.QuotationDTO {
	items := make([]domain.LineItemDTO, 0, len(q.Items))
	for i := range q.Items {
		items = append(items, ToLineItemDTO(&q.Items[i]))
	}

	return domain.QuotationDTO{
		ID:             q.ID,
		QuoteNumber:    q.QuoteNumber,
		QuoteDate:      q.QuoteDate.Format(dateFormat),
		ValidUntil:     formatDate(q.ValidUntil),
		ClientName:     q.ClientName,
		JobDescription: q.JobDescription,
		ContactNumber:  q.ContactNumber,
		Address:        q.Address,
		Attention:      q.Attention,
		Status:         q.Status,
		TermsTemplate:  q.TermsTemplate,
		Terms:          q.Terms,
		ProposalText:   q.ProposalText,
		TotalDue:       q.TotalDue,
		Items:          items,
		ProjectID:      q.ProjectID,
		CreatedAt:      q.CreatedAt.Format(timestampFormat),
		UpdatedAt:      q.UpdatedAt.Format(timestampFormat),
	}
}

// ToQuotation builds the model carried into the service from a validated
// request. Derived fields (terms, proposal, total) are left blank; the
// service regenerates them on save.
func ToQuotation(req *domain.CreateQuotationRequest) *domain.Quotation {
	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{
			Description: item.Description,
			Price:       item.Price,
		})
	}

	quoteDate := time.Now()
	if d := ParseDate(req.QuoteDate); d != nil {
		quoteDate = *d
	}

	return &domain.Quotation{
		QuoteNumber:    req.QuoteNumber,
		QuoteDate:      quoteDate,
		ValidUntil:     ParseDate(req.ValidUntil),
		ClientName:     req.ClientName,
		JobDescription: req.JobDescription,
		ContactNumber:  req.ContactNumber,
		Address:        req.Address,
		Attention:      req.Attention,
		Status:         req.Status,
		TermsTemplate:  req.TermsTemplate,
		Items:          items,
		ProjectID:      req.ProjectID,
	}
}

// ToBillingEntryDTO converts BillingEntry to BillingEntryDTO
func ToBillingEntryDTO(e *domain.BillingEntry) domain.BillingEntryDTO {
	return domain.BillingEntryDTO{
		ID:                     e.ID,
		SalesInvoiceNumber:     e.SalesInvoiceNumber,
		BillingStatementNumber: e.BillingStatementNumber,
		QuoteNumber:            e.QuoteNumber,
		Description:            e.Description,
		Address:                e.Address,
		Amount:                 e.Amount,
		AmountDisplay:          money.FormatDisplay(e.Amount, domain.AmountPlaceholder),
		Status:                 e.Status,
		Payment:                e.Payment,
		CheckInfo:              e.CheckInfo,
		CheckNumber:            e.CheckNumber,
		PaymentDate:            formatDate(e.PaymentDate),
		LedgerRef:              e.LedgerRef,
		CreatedAt:              e.CreatedAt.Format(timestampFormat),
		UpdatedAt:              e.UpdatedAt.Format(timestampFormat),
	}
}

// ToBillingEntry converts a validated request into the model.
func ToBillingEntry(req *domain.BillingEntryRequest) *domain.BillingEntry {
	return &domain.BillingEntry{
		SalesInvoiceNumber:     req.SalesInvoiceNumber,
		BillingStatementNumber: req.BillingStatementNumber,
		QuoteNumber:            req.QuoteNumber,
		Description:            req.Description,
		Address:                req.Address,
		Amount:                 req.Amount,
		Status:                 req.Status,
		Payment:                req.Payment,
		CheckInfo:              req.CheckInfo,
		CheckNumber:            req.CheckNumber,
		PaymentDate:            ParseDate(req.PaymentDate),
		LedgerRef:              req.LedgerRef,
	}
}

// ToProjectTaskDTO converts ProjectTask to ProjectTaskDTO
func ToProjectTaskDTO(task *domain.ProjectTask) domain.ProjectTaskDTO {
	return domain.ProjectTaskDTO{
		ID:          task.ID,
		Description: task.Description,
		Done:        task.Done,
		Position:    task.Position,
	}
}

// ToProjectDTO converts Project to ProjectDTO
func ToProjectDTO(p *domain.Project) domain.ProjectDTO {
	tasks := make([]domain.ProjectTaskDTO, 0, len(p.Tasks))
	for i := range p.Tasks {
		tasks = append(tasks, ToProjectTaskDTO(&p.Tasks[i]))
	}

	return domain.ProjectDTO{
		ID:         p.ID,
		Name:       p.Name,
		ClientName: p.ClientName,
		Location:   p.Location,
		Status:     p.Status,
		Notes:      p.Notes,
		StartDate:  formatDate(p.StartDate),
		EndDate:    formatDate(p.EndDate),
		Tasks:      tasks,
		CreatedAt:  p.CreatedAt.Format(timestampFormat),
		UpdatedAt:  p.UpdatedAt.Format(timestampFormat),
	}
}

// ToProject converts a validated request into the model.
func ToProject(req *domain.CreateProjectRequest) *domain.Project {
	tasks := make([]domain.ProjectTask, 0, len(req.Tasks))
	for _, task := range req.Tasks {
		tasks = append(tasks, domain.ProjectTask{
			Description: task.Description,
			Done:        task.Done,
		})
	}

	return &domain.Project{
		Name:       req.Name,
		ClientName: req.ClientName,
		Location:   req.Location,
		Status:     req.Status,
		Notes:      req.Notes,
		StartDate:  ParseDate(req.StartDate),
		EndDate:    ParseDate(req.EndDate),
		Tasks:      tasks,
	}
}

// ToReminderDTO converts Reminder to ReminderDTO
func ToReminderDTO(r *domain.Reminder) domain.ReminderDTO {
	return domain.ReminderDTO{
		ID:        r.ID,
		Title:     r.Title,
		Notes:     r.Notes,
		DueDate:   formatDate(r.DueDate),
		Done:      r.Done,
		CreatedAt: r.CreatedAt.Format(timestampFormat),
		UpdatedAt: r.UpdatedAt.Format(timestampFormat),
	}
}

// ToReminder converts a validated request into the model.
func ToReminder(req *domain.ReminderRequest) *domain.Reminder {
	return &domain.Reminder{
		Title:   req.Title,
		Notes:   req.Notes,
		DueDate: ParseDate(req.DueDate),
		Done:    req.Done,
	}
}

// ToQuoteRequestDTO converts QuoteRequest to QuoteRequestDTO
func ToQuoteRequestDTO(r *domain.QuoteRequest) domain.QuoteRequestDTO {
	return domain.QuoteRequestDTO{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Details:   r.Details,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Format(timestampFormat),
		UpdatedAt: r.UpdatedAt.Format(timestampFormat),
	}
}

// ToQuoteRequest converts a validated request into the model.
func ToQuoteRequest(req *domain.CreateQuoteRequestRequest) *domain.QuoteRequest {
	return &domain.QuoteRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Details: req.Details,
	}
}
