package handlers

import (
	"net/http"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	location         *time.Location
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService, location *time.Location) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, location: location}
}

// Progress responds with null when the caller may not view the patient.
func (handler *AnalyticsHandler) Progress(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 7)
	if err != nil {
		writeError(w, err)
		return
	}
	location, err := requestLocation(r, handler.location)
	if err != nil {
		writeError(w, err)
		return
	}

	progress, err := handler.analyticsService.GetPatientProgress(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), days, location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (handler *AnalyticsHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := handler.analyticsService.GetPatientAlerts(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func LearnTips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, services.ListCaregiverTips(middleware.GetCaller(r.Context())))
}
