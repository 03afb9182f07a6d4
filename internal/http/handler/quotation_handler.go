package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/document"
	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/mapper"
	"github.com/fcm-construction/opsdesk-api/internal/service"
)

type QuotationHandler struct {
	quotationService *service.QuotationService
	logger           *zap.Logger
}

func NewQuotationHandler(quotationService *service.QuotationService, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		logger:           logger,
	}
}

// @Summary List quotations
// @Tags Quotations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(draft, sent, approved, billed)
// @Param projectId query string false "Filter by project ID"
// @Success 200 {object} domain.PaginatedResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var status *domain.QuotationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.QuotationStatus(s)
		status = &st
	}

	var projectID *uuid.UUID
	if pid := r.URL.Query().Get("projectId"); pid != "" {
		if id, err := uuid.Parse(pid); err == nil {
			projectID = &id
		}
	}

	quotations, total, err := h.quotationService.List(r.Context(), page, pageSize, status, projectID)
	if err != nil {
		h.logger.Error("failed to list quotations", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list quotations")
		return
	}

	items := make([]domain.QuotationDTO, 0, len(quotations))
	for i := range quotations {
		items = append(items, mapper.ToQuotationDTO(&quotations[i]))
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// @Summary Create quotation
// @Description Creates a quotation. Terms, proposal text and the total due
// @Description are computed server-side from the items and template; a blank
// @Description quote number gets the next suggested number.
// @Tags Quotations
// @Accept json
// @Produce json
// @Param request body domain.CreateQuotationRequest true "Quotation data"
// @Success 201 {object} domain.QuotationDTO
// @Failure 400 {object} domain.ErrorResponse "Validation error"
// @Failure 409 {object} domain.ErrorResponse "Duplicate quote number"
// @Router /quotations [post]
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := mapper.DecodeQuotationRequest(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation := mapper.ToQuotation(req)
	if err := h.quotationService.Create(r.Context(), quotation); err != nil {
		h.logger.Error("failed to create quotation", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToQuotationDTO(quotation))
}

// @Summary Get quotation
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} domain.QuotationDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuotationDTO(quotation))
}

// @Summary Update quotation
// @Tags Quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body domain.UpdateQuotationRequest true "Quotation data"
// @Success 200 {object} domain.QuotationDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Duplicate quote number"
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID")
		return
	}

	req, err := mapper.DecodeQuotationRequest(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.quotationService.Update(r.Context(), id, mapper.ToQuotation(req))
	if err != nil {
		h.logger.Error("failed to update quotation", zap.Error(err), zap.String("id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuotationDTO(quotation))
}

// @Summary Delete quotation
// @Tags Quotations
// @Param id path string true "Quotation ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Search quotations
// @Tags Quotations
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} domain.QuotationDTO
// @Router /quotations/search [get]
func (h *QuotationHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	quotations, err := h.quotationService.Search(r.Context(), query, 25)
	if err != nil {
		h.logger.Error("failed to search quotations", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to search quotations")
		return
	}

	items := make([]domain.QuotationDTO, 0, len(quotations))
	for i := range quotations {
		items = append(items, mapper.ToQuotationDTO(&quotations[i]))
	}
	respondJSON(w, http.StatusOK, items)
}

// @Summary Suggest next quotation number
// @Tags Quotations
// @Produce json
// @Success 200 {object} map[string]string
// @Router /quotations/next-number [get]
func (h *QuotationHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.quotationService.NextQuoteNumber(r.Context())
	if err != nil {
		h.logger.Error("failed to suggest quote number", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to suggest quote number")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"quoteNumber": number})
}

// @Summary Download quotation document
// @Description Renders the final quotation PDF and streams it back.
// @Tags Quotations
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.ErrorResponse
// @Router /quotations/{id}/document [get]
func (h *QuotationHandler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// headers must be set before the body starts streaming
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", document.DownloadName(quotation)))

	if _, err := h.quotationService.GeneratePDF(r.Context(), id, w); err != nil {
		h.logger.Error("failed to generate quotation document",
			zap.Error(err), zap.String("id", id.String()))
		return
	}
}

// @Summary Create billing entry from quotation
// @Description Hands an approved quotation off to billing and marks it billed.
// @Tags Quotations
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} domain.BillingEntryDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /quotations/{id}/billing [post]
func (h *QuotationHandler) CreateBilling(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID")
		return
	}

	entry, err := h.quotationService.CreateBillingEntry(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to bill quotation", zap.Error(err), zap.String("id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToBillingEntryDTO(entry))
}

// parsePagination reads page/pageSize query parameters with defaults.
func parsePagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	return page, pageSize
}
