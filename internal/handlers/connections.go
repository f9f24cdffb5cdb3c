package handlers

import (
	"net/http"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
)

type ConnectionHandler struct {
	connectionService *services.ConnectionService
}

func NewConnectionHandler(connectionService *services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

type addPatientRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
}

func (handler *ConnectionHandler) List(w http.ResponseWriter, r *http.Request) {
	connections, err := handler.connectionService.ListMyConnections(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, connections)
}

func (handler *ConnectionHandler) AddPatient(w http.ResponseWriter, r *http.Request) {
	var request addPatientRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	connection, err := handler.connectionService.AddPatient(r.Context(), middleware.GetCaller(r.Context()), request.PatientID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, connection)
}
