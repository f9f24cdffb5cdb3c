package handlers

import (
	"net/http"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
)

type ReminderHandler struct {
	reminderService *services.ReminderService
	location        *time.Location
}

func NewReminderHandler(reminderService *services.ReminderService, location *time.Location) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService, location: location}
}

type createReminderRequest struct {
	PatientID        string                   `json:"patient_id" validate:"required"`
	Title            string                   `json:"title" validate:"required,max=200"`
	Description      string                   `json:"description" validate:"max=2000"`
	Type             models.ReminderType      `json:"type" validate:"required,oneof=medication appointment task meal"`
	ScheduledTime    time.Time                `json:"scheduled_time" validate:"required"`
	IsRecurring      bool                     `json:"is_recurring"`
	RecurringPattern *models.RecurringPattern `json:"recurring_pattern" validate:"omitempty,oneof=daily weekly monthly"`
}

type createPersonalReminderRequest struct {
	Title            string                   `json:"title" validate:"required,max=200"`
	Description      string                   `json:"description" validate:"max=2000"`
	ScheduledTime    time.Time                `json:"scheduled_time" validate:"required"`
	IsRecurring      bool                     `json:"is_recurring"`
	RecurringPattern *models.RecurringPattern `json:"recurring_pattern" validate:"omitempty,oneof=daily weekly monthly"`
	ShowToCaregiver  bool                     `json:"show_to_caregiver"`
	Mood             *models.Mood             `json:"mood" validate:"omitempty,oneof=very_happy happy neutral sad very_sad"`
}

type completeReminderRequest struct {
	Mood *models.Mood `json:"mood" validate:"omitempty,oneof=very_happy happy neutral sad very_sad"`
}

func (handler *ReminderHandler) Today(w http.ResponseWriter, r *http.Request) {
	location, err := requestLocation(r, handler.location)
	if err != nil {
		writeError(w, err)
		return
	}

	reminders, err := handler.reminderService.GetTodaysReminders(r.Context(), middleware.GetCaller(r.Context()), r.URL.Query().Get("patient_id"), location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (handler *ReminderHandler) Visible(w http.ResponseWriter, r *http.Request) {
	location, err := requestLocation(r, handler.location)
	if err != nil {
		writeError(w, err)
		return
	}

	reminders, err := handler.reminderService.GetVisibleReminders(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (handler *ReminderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 7)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := handler.reminderService.GetReminderStats(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (handler *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createReminderRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	reminder, err := handler.reminderService.CreateReminder(r.Context(), middleware.GetCaller(r.Context()), services.CreateReminderInput{
		PatientID:        request.PatientID,
		Title:            request.Title,
		Description:      request.Description,
		Type:             request.Type,
		ScheduledTime:    request.ScheduledTime,
		IsRecurring:      request.IsRecurring,
		RecurringPattern: request.RecurringPattern,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

func (handler *ReminderHandler) CreatePersonal(w http.ResponseWriter, r *http.Request) {
	var request createPersonalReminderRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	reminder, err := handler.reminderService.CreatePersonalReminder(r.Context(), middleware.GetCaller(r.Context()), services.CreatePersonalReminderInput{
		Title:            request.Title,
		Description:      request.Description,
		ScheduledTime:    request.ScheduledTime,
		IsRecurring:      request.IsRecurring,
		RecurringPattern: request.RecurringPattern,
		ShowToCaregiver:  request.ShowToCaregiver,
		Mood:             request.Mood,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reminder)
}

// Complete accepts an empty body as well as {"mood": ...}.
func (handler *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var request completeReminderRequest
	if !decodeOptionalJSON(w, r, &request) {
		return
	}

	location, err := requestLocation(r, handler.location)
	if err != nil {
		writeError(w, err)
		return
	}

	reminder, err := handler.reminderService.CompleteReminder(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), request.Mood, location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reminder)
}

func (handler *ReminderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	if err := handler.reminderService.ArchiveReminder(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
