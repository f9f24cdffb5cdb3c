package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

type MoodService struct {
	moodRepo repository.MoodEntryRepository
	gate     accessGate
	now      func() time.Time
}

func NewMoodService(moodRepo repository.MoodEntryRepository, connectionRepo repository.ConnectionRepository) *MoodService {
	return &MoodService{
		moodRepo: moodRepo,
		gate:     accessGate{connectionRepo: connectionRepo},
		now:      time.Now,
	}
}

func (service *MoodService) RecordMood(ctx context.Context, caller Caller, mood models.Mood, notes string, showToCaregiver bool) (models.MoodEntry, error) {
	patient, err := caller.RequireRole(models.RolePatient, "record mood")
	if err != nil {
		return models.MoodEntry{}, err
	}
	if !mood.Valid() {
		return models.MoodEntry{}, fmt.Errorf("%w: unknown mood %q", ErrValidation, mood)
	}

	return service.moodRepo.Create(ctx, models.MoodEntry{
		PatientID:       patient.ID,
		Mood:            mood,
		Notes:           strings.TrimSpace(notes),
		Timestamp:       service.now(),
		ShowToCaregiver: showToCaregiver,
	})
}

// GetMoodHistory is the calling patient's own history, shared or not.
func (service *MoodService) GetMoodHistory(ctx context.Context, caller Caller, days int) ([]models.MoodEntry, error) {
	if !caller.HasRole(models.RolePatient) {
		return []models.MoodEntry{}, nil
	}
	return service.history(ctx, caller.Profile.ID, days, false)
}

// GetVisibleMoodHistory is a caregiver's view of a connected patient and
// only includes entries the patient chose to share.
func (service *MoodService) GetVisibleMoodHistory(ctx context.Context, caller Caller, patientID string, days int) ([]models.MoodEntry, error) {
	allowed, err := service.gate.caregiverView(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return []models.MoodEntry{}, nil
	}
	return service.history(ctx, patientID, days, true)
}

func (service *MoodService) history(ctx context.Context, patientID string, days int, visibleOnly bool) ([]models.MoodEntry, error) {
	since := windowStart(service.now(), days)
	entries, err := service.moodRepo.FindByPatient(ctx, patientID, since, visibleOnly)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.MoodEntry{}
	}
	return entries, nil
}
