package services

import (
	"context"
	"fmt"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

// Caller is the resolved identity behind a request. Profile is nil until the
// user has completed profile setup.
type Caller struct {
	User    models.User
	Profile *models.Profile
}

func (caller Caller) Authenticated() bool {
	return caller.User.ID != ""
}

// HasRole reports whether the caller has a profile with the given role.
// Read paths use it to degrade to empty results.
func (caller Caller) HasRole(role models.Role) bool {
	return caller.Profile != nil && caller.Profile.Role == role
}

// RequireProfile is the write-path gate for operations open to either role.
func (caller Caller) RequireProfile() (models.Profile, error) {
	if !caller.Authenticated() {
		return models.Profile{}, ErrAuthenticationRequired
	}
	if caller.Profile == nil {
		return models.Profile{}, fmt.Errorf("%w: profile not set up", ErrAuthorizationDenied)
	}
	return *caller.Profile, nil
}

// RequireRole is the write-path gate for role-specific operations. action
// completes the sentence "only <role>s can ...".
func (caller Caller) RequireRole(role models.Role, action string) (models.Profile, error) {
	if !caller.Authenticated() {
		return models.Profile{}, ErrAuthenticationRequired
	}
	if !caller.HasRole(role) {
		return models.Profile{}, fmt.Errorf("%w: only %ss can %s", ErrAuthorizationDenied, role, action)
	}
	return *caller.Profile, nil
}

type accessGate struct {
	connectionRepo repository.ConnectionRepository
}

// canViewPatient is true for the patient themself and for caregivers with an
// accepted connection to the patient.
func (gate accessGate) canViewPatient(ctx context.Context, caller Caller, patientID string) (bool, error) {
	if caller.Profile == nil {
		return false, nil
	}
	if caller.Profile.Role == models.RolePatient {
		return caller.Profile.ID == patientID, nil
	}
	return gate.isConnected(ctx, caller.Profile.ID, patientID)
}

func (gate accessGate) isConnected(ctx context.Context, caregiverID string, patientID string) (bool, error) {
	connection, err := gate.connectionRepo.Find(ctx, caregiverID, patientID)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return connection.Status == models.ConnectionAccepted, nil
}

// caregiverView gates caregiver-facing reads: a caregiver profile connected
// to the patient.
func (gate accessGate) caregiverView(ctx context.Context, caller Caller, patientID string) (bool, error) {
	if !caller.HasRole(models.RoleCaregiver) {
		return false, nil
	}
	return gate.isConnected(ctx, caller.Profile.ID, patientID)
}
