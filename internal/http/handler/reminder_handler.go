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

type ReminderHandler struct {
	reminderService *service.ReminderService
	logger          *zap.Logger
}

func NewReminderHandler(reminderService *service.ReminderService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// @Summary List reminders
// @Tags Reminders
// @Produce json
// @Param includeDone query bool false "Include completed reminders"
// @Success 200 {array} domain.ReminderDTO
// @Router /reminders [get]
func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	includeDone := r.URL.Query().Get("includeDone") == "true"

	reminders, err := h.reminderService.List(r.Context(), includeDone)
	if err != nil {
		h.logger.Error("failed to list reminders", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list reminders")
		return
	}

	items := make([]domain.ReminderDTO, 0, len(reminders))
	for i := range reminders {
		items = append(items, mapper.ToReminderDTO(&reminders[i]))
	}
	respondJSON(w, http.StatusOK, items)
}

// @Summary Create reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param request body domain.ReminderRequest true "Reminder data"
// @Success 201 {object} domain.ReminderDTO
// @Router /reminders [post]
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	reminder := mapper.ToReminder(&req)
	if err := h.reminderService.Create(r.Context(), reminder); err != nil {
		h.logger.Error("failed to create reminder", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.ToReminderDTO(reminder))
}

// @Summary Update reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param request body domain.ReminderRequest true "Reminder data"
// @Success 200 {object} domain.ReminderDTO
// @Failure 404 {object} domain.ErrorResponse
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	var req domain.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	reminder, err := h.reminderService.Update(r.Context(), id, mapper.ToReminder(&req))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.ToReminderDTO(reminder))
}

// @Summary Delete reminder
// @Tags Reminders
// @Param id path string true "Reminder ID"
// @Success 204
// @Failure 404 {object} domain.ErrorResponse
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid reminder ID")
		return
	}

	if err := h.reminderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
