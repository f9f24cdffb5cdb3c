package handlers

import (
	"net/http"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
)

type ChatHandler struct {
	chatService *services.ChatService
	location    *time.Location
}

func NewChatHandler(chatService *services.ChatService, location *time.Location) *ChatHandler {
	return &ChatHandler{chatService: chatService, location: location}
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

func (handler *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var request chatRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	location, err := requestLocation(r, handler.location)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := handler.chatService.ProcessMessage(r.Context(), middleware.GetCaller(r.Context()), request.Message, location)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (handler *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 10)
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := handler.chatService.GetChatHistory(r.Context(), middleware.GetCaller(r.Context()), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
