package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fcm-construction/opsdesk-api/internal/domain"
	"github.com/fcm-construction/opsdesk-api/internal/mapper"
	"github.com/fcm-construction/opsdesk-api/internal/service"
)

type QuoteRequestHandler struct {
	quoteRequestService *service.QuoteRequestService
	logger              *zap.Logger
}

func NewQuoteRequestHandler(quoteRequestService *service.QuoteRequestService, logger *zap.Logger) *QuoteRequestHandler {
	return &QuoteRequestHandler{
		quoteRequestService: quoteRequestService,
		logger:              logger,
	}
}

// @Summary List quote requests
// @Tags QuoteRequests
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status" Enums(new, reviewed, converted)
// @Success 200 {object} domain.PaginatedResponse
// @Router /quote-requests [get]
func (h *QuoteRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	var status *domain.QuoteRequestStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.QuoteRequestStatus(s)
		status = &st
	}

	requests, total, err := h.quoteRequestService.List(r.Context(), page, pageSize, status)
	if err != nil {
		h.logger.Error("failed to list quote requests", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list quote requests")
		return
	}

	items := make([]domain.QuoteRequestDTO, 0, len(requests))
	for i := range requests {
		items = append(items, mapper.ToQuoteRequestDTO(&requests[i]))
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// @Summary Submit quote request
// @Tags QuoteRequests
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequestRequest true "Quote request data"
// @Success 201 {object} domain.QuoteRequestDTO
// @Router /quote-requests [post]
func (h *QuoteRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	request := mapper.ToQuoteRequest(&req)
	if err := h.quoteRequestService.Create(r.Context(), request); err != nil {
		h.logger.Error("failed to create quote request", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToQuoteRequestDTO(request))
}

// @Summary Get quote request
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /quote-requests/{id} [get]
func (h *QuoteRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote request ID")
		return
	}

	request, err := h.quoteRequestService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(request))
}

// @Summary Update quote request status
// @Tags QuoteRequests
// @Accept json
// @Produce json
// @Param id path string true "Quote request ID"
// @Param request body domain.UpdateQuoteRequestStatusRequest true "New status"
// @Success 200 {object} domain.QuoteRequestDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /quote-requests/{id}/status [put]
func (h *QuoteRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote request ID")
		return
	}

	var req domain.UpdateQuoteRequestStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	request, err := h.quoteRequestService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToQuoteRequestDTO(request))
}

// @Summary Convert quote request to draft quotation
// @Tags QuoteRequests
// @Produce json
// @Param id path string true "Quote request ID"
// @Success 201 {object} domain.QuotationDTO
// @Failure 404 {object} domain.ErrorResponse
// @Failure 409 {object} domain.ErrorResponse "Already converted"
// @Router /quote-requests/{id}/convert [post]
func (h *QuoteRequestHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote request ID")
		return
	}

	quotation, err := h.quoteRequestService.Convert(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to convert quote request", zap.Error(err), zap.String("id", id.String()))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToQuotationDTO(quotation))
}

// @Summary Delete quote request
// @Tags QuoteRequests
// @Param id path string true "Quote request ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /quote-requests/{id} [delete]
func (h *QuoteRequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote request ID")
		return
	}

	if err := h.quoteRequestService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
