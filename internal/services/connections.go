package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

type ConnectionService struct {
	profileRepo    repository.ProfileRepository
	connectionRepo repository.ConnectionRepository
}

func NewConnectionService(profileRepo repository.ProfileRepository, connectionRepo repository.ConnectionRepository) *ConnectionService {
	return &ConnectionService{
		profileRepo:    profileRepo,
		connectionRepo: connectionRepo,
	}
}

type ConnectedPatient struct {
	models.Profile
	ConnectionStatus models.ConnectionStatus `json:"connection_status"`
}

// AddPatient links the calling caregiver to a patient. Connections are created
// already accepted; adding the same patient twice returns the existing link.
func (service *ConnectionService) AddPatient(ctx context.Context, caller Caller, patientID string) (models.Connection, error) {
	caregiver, err := caller.RequireRole(models.RoleCaregiver, "add patients")
	if err != nil {
		return models.Connection{}, err
	}

	patient, err := service.profileRepo.FindByID(ctx, patientID)
	if err != nil {
		return models.Connection{}, lookupError(err, "patient")
	}
	if patient.Role != models.RolePatient {
		return models.Connection{}, fmt.Errorf("%w: patient", ErrNotFound)
	}

	connection, err := service.connectionRepo.Upsert(ctx, models.Connection{
		CaregiverID: caregiver.ID,
		PatientID:   patient.ID,
		Status:      models.ConnectionAccepted,
	})
	if err != nil {
		return models.Connection{}, err
	}

	slog.Info("connected caregiver to patient", "caregiver_id", caregiver.ID, "patient_id", patient.ID)
	return connection, nil
}

// ListMyConnections returns the caller's patients with their link status.
// Patients have no outgoing connections and always get an empty list.
func (service *ConnectionService) ListMyConnections(ctx context.Context, caller Caller) ([]ConnectedPatient, error) {
	if !caller.HasRole(models.RoleCaregiver) {
		return []ConnectedPatient{}, nil
	}

	connections, err := service.connectionRepo.FindByCaregiver(ctx, caller.Profile.ID, nil)
	if err != nil {
		return nil, err
	}

	patients := []ConnectedPatient{}
	for _, connection := range connections {
		patient, err := service.profileRepo.FindByID(ctx, connection.PatientID)
		if isNoRows(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		patients = append(patients, ConnectedPatient{Profile: patient, ConnectionStatus: connection.Status})
	}
	return patients, nil
}

// ListCaregiversForPatient returns caregivers with an accepted connection.
func (service *ConnectionService) ListCaregiversForPatient(ctx context.Context, patientID string) ([]models.Profile, error) {
	accepted := models.ConnectionAccepted
	connections, err := service.connectionRepo.FindByPatient(ctx, patientID, &accepted)
	if err != nil {
		return nil, err
	}

	var caregivers []models.Profile
	for _, connection := range connections {
		caregiver, err := service.profileRepo.FindByID(ctx, connection.CaregiverID)
		if isNoRows(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		caregivers = append(caregivers, caregiver)
	}
	return caregivers, nil
}
