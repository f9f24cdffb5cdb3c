package handlers

import (
	"net/http"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
)

type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type createProfileRequest struct {
	Role             models.Role `json:"role" validate:"required,oneof=patient caregiver"`
	Name             string      `json:"name" validate:"required,max=200"`
	DateOfBirth      *string     `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact *string     `json:"emergency_contact" validate:"omitempty,max=200"`
}

type updateProfileRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=200"`
	DateOfBirth      *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=200"`
}

// Get returns the caller's profile, or null before setup.
func (handler *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetCaller(r.Context())
	writeJSON(w, http.StatusOK, handler.profileService.CurrentProfile(caller))
}

func (handler *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var request createProfileRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	profile, err := handler.profileService.CreateProfile(r.Context(), middleware.GetCaller(r.Context()), services.CreateProfileInput{
		Role:             request.Role,
		Name:             request.Name,
		DateOfBirth:      request.DateOfBirth,
		EmergencyContact: request.EmergencyContact,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (handler *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var request updateProfileRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	profile, err := handler.profileService.UpdateProfile(r.Context(), middleware.GetCaller(r.Context()), services.UpdateProfileInput{
		Name:             request.Name,
		DateOfBirth:      request.DateOfBirth,
		EmergencyContact: request.EmergencyContact,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (handler *ProfileHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := handler.profileService.ListAllPatients(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (handler *ProfileHandler) ListMyPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := handler.profileService.ListPatientsForCaregiver(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patients)
}

func (handler *ProfileHandler) GetCaregiver(w http.ResponseWriter, r *http.Request) {
	caregiver, err := handler.profileService.GetCaregiverForPatient(r.Context(), middleware.GetCaller(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, caregiver)
}
