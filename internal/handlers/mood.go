package handlers

import (
	"net/http"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
)

type MoodHandler struct {
	moodService *services.MoodService
}

func NewMoodHandler(moodService *services.MoodService) *MoodHandler {
	return &MoodHandler{moodService: moodService}
}

type recordMoodRequest struct {
	Mood            models.Mood `json:"mood" validate:"required,oneof=very_happy happy neutral sad very_sad"`
	Notes           string      `json:"notes" validate:"max=2000"`
	ShowToCaregiver bool        `json:"show_to_caregiver"`
}

func (handler *MoodHandler) Record(w http.ResponseWriter, r *http.Request) {
	var request recordMoodRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	entry, err := handler.moodService.RecordMood(r.Context(), middleware.GetCaller(r.Context()), request.Mood, request.Notes, request.ShowToCaregiver)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (handler *MoodHandler) History(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 7)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := handler.moodService.GetMoodHistory(r.Context(), middleware.GetCaller(r.Context()), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (handler *MoodHandler) PatientHistory(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 7)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := handler.moodService.GetVisibleMoodHistory(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
