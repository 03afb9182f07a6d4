package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/mapper"
	"github.com/fcm-construction/opsdesk-api/internal/service"
)

type BillingHandler struct {
	billingService *service.BillingService
	logger         *zap.Logger
}

func NewBillingHandler(billingService *service.BillingService, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         logger,
	}
}

func billingFilter(r *http.Request) (*domain.BillingStatus, string) {
	var status *domain.BillingStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.BillingStatus(s)
		status = &st
	}
	return status, r.URL.Query().Get("q")
}

// @Summary List billing entries
// @Tags Billing
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(paid, not_paid)
// @Param q query string false "Search text"
// @Success 200 {object} domain.PaginatedResponse
// @Router /billing [get]
func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)
	status, search := billingFilter(r)

	entries, total, err := h.billingService.List(r.Context(), page, pageSize, status, search)
	if err != nil {
		h.logger.Error("failed to list billing entries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list billing entries")
		return
	}

	items := make([]domain.BillingEntryDTO, 0, len(entries))
	for i := range entries {
		items = append(items, mapper.ToBillingEntryDTO(&entries[i]))
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// @Summary Billing reconciliation summary
// @Description Recomputes the summary bar figures over everything the
// @Description current filter matches, not just the visible page.
// @Tags Billing
// @Produce json
// @Param status query string false "Filter by status" Enums(paid, not_paid)
// @Param q query string false "Search text"
// @Success 200 {object} domain.BillingSummaryDTO
// @Router /billing/summary [get]
func (h *BillingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	status, search := billingFilter(r)

	summary, err := h.billingService.Summary(r.Context(), status, search)
	if err != nil {
		h.logger.Error("failed to summarize billing entries", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to summarize billing entries")
		return
	}

	respondJSON(w, http.StatusOK, service.SummaryDTO(summary))
}

// @Summary Create billing entry
// @Tags Billing
// @Accept json
// @Produce json
// @Param request body domain.BillingEntryRequest true "Billing entry data"
// @Success 201 {object} domain.BillingEntryDTO
// @Failure 400 {object} domain.ErrorResponse "Validation error"
// @Failure 409 {object} domain.ErrorResponse "Duplicate invoice number"
// @Router /billing [post]
func (h *BillingHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := mapper.DecodeBillingEntryRequest(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry := mapper.ToBillingEntry(req)
	if err := h.billingService.Create(r.Context(), entry); err != nil {
		h.logger.Error("failed to create billing entry", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToBillingEntryDTO(entry))
}

// @Summary Get billing entry
// @Tags Billing
// @Produce json
// @Param id path string true "Billing entry ID"
// @Success 200 {object} domain.BillingEntryDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /billing/{id} [get]
func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing entry ID")
		return
	}

	entry, err := h.billingService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToBillingEntryDTO(entry))
}

// @Summary Update billing entry
// @Tags Billing
// @Accept json
// @Produce json
// @Param id path string true "Billing entry ID"
// @Param request body domain.BillingEntryRequest true "Billing entry data"
// @Success 200 {object} domain.BillingEntryDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Duplicate invoice number"
// @Router /billing/{id} [put]
func (h *BillingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing entry ID")
		return
	}

	req, err := mapper.DecodeBillingEntryRequest(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	entry, err := h.billingService.Update(r.Context(), id, mapper.ToBillingEntry(req))
	if err != nil {
		h.logger.Error("failed to update billing entry", zap.Error(err), zap.String("id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToBillingEntryDTO(entry))
}

// @Summary Delete billing entry
// @Tags Billing
// @Param id path string true "Billing entry ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /billing/{id} [delete]
func (h *BillingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid billing entry ID")
		return
	}

	if err := h.billingService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// @Summary Suggest next sales invoice number
// @Tags Billing
// @Produce json
// @Success 200 {object} map[string]string
// @Router /billing/next-number [get]
func (h *BillingHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.billingService.NextNumber(r.Context())
	if err != nil {
		h.logger.Error("failed to suggest invoice number", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to suggest invoice number")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"salesInvoiceNumber": number})
}

// @Summary Check invoice number for duplicates
// @Description Backs the on-blur duplicate probe; the save re-checks anyway.
// @Tags Billing
// @Produce json
// @Param number query string true "Candidate invoice number"
// @Param excludeId query string false "Entry being edited"
// @Success 200 {object} map[string]bool
// @Router /billing/check-number [get]
func (h *BillingHandler) CheckNumber(w http.ResponseWriter, r *http.Request) {
	candidate := r.URL.Query().Get("number")
	if candidate == "" {
		respondWithError(w, http.StatusBadRequest, "number query parameter is required")
		return
	}

	excludeID := uuid.Nil
	if raw := r.URL.Query().Get("excludeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid excludeId")
			return
		}
		excludeID = id
	}

	duplicate, err := h.billingService.CheckDuplicate(r.Context(), candidate, excludeID)
	if err != nil {
		h.logger.Error("failed to check invoice number", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to check invoice number")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"duplicate": duplicate})
}
