package handlers

import (
	"net/http"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (handler *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 20)
	if err != nil {
		writeError(w, err)
		return
	}

	notifications, err := handler.notificationService.ListNotifications(r.Context(), middleware.GetCaller(r.Context()), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (handler *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := handler.notificationService.UnreadCount(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (handler *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := handler.notificationService.MarkNotificationRead(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
