package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

type ProfileService struct {
	profileRepo    repository.ProfileRepository
	connectionRepo repository.ConnectionRepository
}

func NewProfileService(profileRepo repository.ProfileRepository, connectionRepo repository.ConnectionRepository) *ProfileService {
	return &ProfileService{
		profileRepo:    profileRepo,
		connectionRepo: connectionRepo,
	}
}

type CreateProfileInput struct {
	Role             models.Role
	Name             string
	DateOfBirth      *string
	EmergencyContact *string
}

// UpdateProfileInput leaves nil fields untouched. Role cannot be changed.
type UpdateProfileInput struct {
	Name             *string
	DateOfBirth      *string
	EmergencyContact *string
}

// CurrentProfile returns the caller's profile, or nil when none exists yet.
func (service *ProfileService) CurrentProfile(caller Caller) *models.Profile {
	return caller.Profile
}

func (service *ProfileService) CreateProfile(ctx context.Context, caller Caller, input CreateProfileInput) (models.Profile, error) {
	if !caller.Authenticated() {
		return models.Profile{}, ErrAuthenticationRequired
	}
	if caller.Profile != nil {
		return models.Profile{}, ErrProfileExists
	}
	if !input.Role.Valid() {
		return models.Profile{}, fmt.Errorf("%w: unknown role %q", ErrValidation, input.Role)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Profile{}, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if _, err := service.profileRepo.FindByUserID(ctx, caller.User.ID); err == nil {
		return models.Profile{}, ErrProfileExists
	} else if !isNoRows(err) {
		return models.Profile{}, fmt.Errorf("checking existing profile: %w", err)
	}

	profile, err := service.profileRepo.Create(ctx, models.Profile{
		UserID:           caller.User.ID,
		Role:             input.Role,
		Name:             name,
		DateOfBirth:      input.DateOfBirth,
		EmergencyContact: input.EmergencyContact,
	})
	if err != nil {
		return models.Profile{}, err
	}

	slog.Info("created profile", "profile_id", profile.ID, "user_id", caller.User.ID, "role", profile.Role)
	return profile, nil
}

func (service *ProfileService) UpdateProfile(ctx context.Context, caller Caller, input UpdateProfileInput) (models.Profile, error) {
	if !caller.Authenticated() {
		return models.Profile{}, ErrAuthenticationRequired
	}
	if caller.Profile == nil {
		return models.Profile{}, fmt.Errorf("%w: profile", ErrNotFound)
	}

	profile := *caller.Profile
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return models.Profile{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		profile.Name = name
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = input.DateOfBirth
	}
	if input.EmergencyContact != nil {
		profile.EmergencyContact = input.EmergencyContact
	}

	if err := service.profileRepo.Update(ctx, profile); err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

// ListAllPatients is the caregiver's roster search across every patient.
func (service *ProfileService) ListAllPatients(ctx context.Context, caller Caller) ([]models.Profile, error) {
	if !caller.HasRole(models.RoleCaregiver) {
		return []models.Profile{}, nil
	}
	return service.profileRepo.FindByRole(ctx, models.RolePatient)
}

func (service *ProfileService) ListPatientsForCaregiver(ctx context.Context, caller Caller) ([]models.Profile, error) {
	if !caller.HasRole(models.RoleCaregiver) {
		return []models.Profile{}, nil
	}

	accepted := models.ConnectionAccepted
	connections, err := service.connectionRepo.FindByCaregiver(ctx, caller.Profile.ID, &accepted)
	if err != nil {
		return nil, err
	}

	patients := []models.Profile{}
	for _, connection := range connections {
		patient, err := service.profileRepo.FindByID(ctx, connection.PatientID)
		if isNoRows(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

// GetCaregiverForPatient returns the first accepted caregiver of the calling
// patient, or nil.
func (service *ProfileService) GetCaregiverForPatient(ctx context.Context, caller Caller) (*models.Profile, error) {
	if !caller.HasRole(models.RolePatient) {
		return nil, nil
	}

	accepted := models.ConnectionAccepted
	connections, err := service.connectionRepo.FindByPatient(ctx, caller.Profile.ID, &accepted)
	if err != nil {
		return nil, err
	}
	if len(connections) == 0 {
		return nil, nil
	}

	caregiver, err := service.profileRepo.FindByID(ctx, connections[0].CaregiverID)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &caregiver, nil
}
