package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

const alertWindow = 3 * day

type AnalyticsService struct {
	reminderRepo repository.ReminderRepository
	scoreRepo    repository.GameScoreRepository
	moodRepo     repository.MoodEntryRepository
	gate         accessGate
	now          func() time.Time
}

func NewAnalyticsService(
	reminderRepo repository.ReminderRepository,
	scoreRepo repository.GameScoreRepository,
	moodRepo repository.MoodEntryRepository,
	connectionRepo repository.ConnectionRepository,
) *AnalyticsService {
	return &AnalyticsService{
		reminderRepo: reminderRepo,
		scoreRepo:    scoreRepo,
		moodRepo:     moodRepo,
		gate:         accessGate{connectionRepo: connectionRepo},
		now:          time.Now,
	}
}

type TrendPoint struct {
	Day   string `json:"day"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Progress struct {
	ReminderTrend  []TrendPoint `json:"reminder_trend"`
	GameScoreTrend []TrendPoint `json:"game_score_trend"`
}

type dayBucket struct {
	start           time.Time
	remindersTotal  int
	remindersDone   int
	gamePercentages []float64
}

// GetPatientProgress buckets the last days calendar days, ending today in
// location, and reports the reminder completion rate and the average game
// percentage per day. Days without data are present with value 0.
func (service *AnalyticsService) GetPatientProgress(ctx context.Context, caller Caller, patientID string, days int, location *time.Location) (*Progress, error) {
	allowed, err := service.gate.caregiverView(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, nil
	}

	days = windowDays(days)
	now := service.now().In(location)
	first := startOfDay(now).AddDate(0, 0, -(days - 1))

	buckets := make([]*dayBucket, days)
	index := make(map[string]*dayBucket, days)
	for i := range buckets {
		bucket := &dayBucket{start: first.AddDate(0, 0, i)}
		buckets[i] = bucket
		index[bucket.start.Format(time.DateOnly)] = bucket
	}
	bucketFor := func(t time.Time) *dayBucket {
		return index[t.In(location).Format(time.DateOnly)]
	}

	reminders, err := service.reminderRepo.FindAll(ctx, repository.ReminderFilter{
		PatientID:          &patientID,
		ScheduledFrom:      &first,
		ScheduledThrough:   &now,
		ActiveOnly:         true,
		VisibleToCaregiver: true,
	})
	if err != nil {
		return nil, err
	}
	for _, reminder := range reminders {
		if bucket := bucketFor(reminder.ScheduledTime); bucket != nil {
			bucket.remindersTotal++
			if reminder.IsCompleted {
				bucket.remindersDone++
			}
		}
	}

	scores, err := service.scoreRepo.FindByPatient(ctx, patientID, &first, 0)
	if err != nil {
		return nil, err
	}
	for _, score := range scores {
		if score.MaxScore <= 0 {
			continue
		}
		if bucket := bucketFor(score.CompletedAt); bucket != nil {
			bucket.gamePercentages = append(bucket.gamePercentages, float64(score.Score)/float64(score.MaxScore)*100)
		}
	}

	progress := &Progress{
		ReminderTrend:  make([]TrendPoint, 0, days),
		GameScoreTrend: make([]TrendPoint, 0, days),
	}
	for _, bucket := range buckets {
		dayKey, label := bucket.start.Format(time.DateOnly), bucket.start.Format("Jan 2")
		progress.ReminderTrend = append(progress.ReminderTrend, TrendPoint{
			Day: dayKey, Label: label, Value: percent(bucket.remindersDone, bucket.remindersTotal),
		})
		progress.GameScoreTrend = append(progress.GameScoreTrend, TrendPoint{
			Day: dayKey, Label: label, Value: mean(bucket.gamePercentages),
		})
	}
	return progress, nil
}

func mean(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, value := range values {
		total += value
	}
	return int(math.Round(total / float64(len(values))))
}

const (
	AlertMissedReminders = "missed_reminders"
	AlertNoGames         = "no_games"
	AlertMoodConcern     = "mood_concern"
)

// Alert is computed on read for a caregiver dashboard and never stored.
// Persisted notifications come from the periodic rules instead.
type Alert struct {
	Type      string          `json:"type"`
	Priority  models.Priority `json:"priority"`
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
}

// GetPatientAlerts evaluates the three dashboard heuristics over the last
// three days and returns the alerts that fire, highest priority first.
func (service *AnalyticsService) GetPatientAlerts(ctx context.Context, caller Caller, patientID string) ([]Alert, error) {
	allowed, err := service.gate.caregiverView(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return []Alert{}, nil
	}

	now := service.now()
	since := now.Add(-alertWindow)
	alerts := []Alert{}

	incomplete := false
	missed, err := service.reminderRepo.FindAll(ctx, repository.ReminderFilter{
		PatientID:          &patientID,
		ScheduledFrom:      &since,
		ScheduledBefore:    &now,
		Completed:          &incomplete,
		ActiveOnly:         true,
		VisibleToCaregiver: true,
	})
	if err != nil {
		return nil, err
	}
	if len(missed) > 0 {
		alerts = append(alerts, Alert{
			Type:      AlertMissedReminders,
			Priority:  models.PriorityHigh,
			Message:   fmt.Sprintf("%d missed %s in the last 3 days", len(missed), plural(len(missed), "reminder", "reminders")),
			Timestamp: now,
		})
	}

	played, err := service.scoreRepo.CountSince(ctx, patientID, since)
	if err != nil {
		return nil, err
	}
	if played == 0 {
		alerts = append(alerts, Alert{
			Type:      AlertNoGames,
			Priority:  models.PriorityMedium,
			Message:   "No memory games played in the last 3 days",
			Timestamp: now,
		})
	}

	moods, err := service.moodRepo.FindByPatient(ctx, patientID, since, true)
	if err != nil {
		return nil, err
	}
	low := 0
	for _, entry := range moods {
		if entry.Mood.Low() {
			low++
		}
	}
	if len(moods) > 0 && low*2 > len(moods) {
		alerts = append(alerts, Alert{
			Type:      AlertMoodConcern,
			Priority:  models.PriorityHigh,
			Message:   "Recent mood entries show concern, consider additional support",
			Timestamp: now,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.Rank() > alerts[j].Priority.Rank()
	})
	return alerts, nil
}
