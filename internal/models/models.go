package models

import "time"

type Role string

const (
	RolePatient   Role = "patient"
	RoleCaregiver Role = "caregiver"
)

func (role Role) Valid() bool {
	return role == RolePatient || role == RoleCaregiver
}

type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

type ReminderType string

const (
	ReminderMedication  ReminderType = "medication"
	ReminderAppointment ReminderType = "appointment"
	ReminderPersonal    ReminderType = "personal"
	ReminderGeneral     ReminderType = "general"
	ReminderTask        ReminderType = "task"
	ReminderMeal        ReminderType = "meal"
)

type RecurringPattern string

const (
	RecurringDaily   RecurringPattern = "daily"
	RecurringWeekly  RecurringPattern = "weekly"
	RecurringMonthly RecurringPattern = "monthly"
)

type Mood string

const (
	MoodVeryHappy Mood = "very_happy"
	MoodHappy     Mood = "happy"
	MoodNeutral   Mood = "neutral"
	MoodSad       Mood = "sad"
	MoodVerySad   Mood = "very_sad"
)

func (mood Mood) Valid() bool {
	switch mood {
	case MoodVeryHappy, MoodHappy, MoodNeutral, MoodSad, MoodVerySad:
		return true
	}
	return false
}

// Low reports whether the mood counts towards a caregiver mood concern.
func (mood Mood) Low() bool {
	return mood == MoodSad || mood == MoodVerySad
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities so that higher values sort first.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

const (
	NotificationMissedReminder = "missed_reminder"
	NotificationGameInactivity = "game_inactivity"
)

// User is the authenticated identity. Application data hangs off the Profile.
type User struct {
	ID          string    `json:"id"`
	OIDCSubject string    `json:"-"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Profile struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Role             Role      `json:"role"`
	Name             string    `json:"name"`
	DateOfBirth      *string   `json:"date_of_birth,omitempty"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Connection struct {
	ID          string           `json:"id"`
	CaregiverID string           `json:"caregiver_id"`
	PatientID   string           `json:"patient_id"`
	Status      ConnectionStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
}

type Reminder struct {
	ID               string            `json:"id"`
	PatientID        string            `json:"patient_id"`
	CaregiverID      *string           `json:"caregiver_id,omitempty"`
	Title            string            `json:"title"`
	Description      string            `json:"description,omitempty"`
	Type             ReminderType      `json:"type"`
	ScheduledTime    time.Time         `json:"scheduled_time"`
	IsCompleted      bool              `json:"is_completed"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	IsActive         bool              `json:"is_active"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern *RecurringPattern `json:"recurring_pattern,omitempty"`
	IsPersonal       bool              `json:"is_personal"`
	ShowToCaregiver  bool              `json:"show_to_caregiver"`
	Mood             *Mood             `json:"mood,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// VisibleToCaregiver is the caregiver-facing visibility predicate.
func (reminder Reminder) VisibleToCaregiver() bool {
	return !reminder.IsPersonal || reminder.ShowToCaregiver
}

type GameScore struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	GameID      string    `json:"game_id"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"max_score"`
	Percentage  int       `json:"percentage"`
	TimeSpent   int       `json:"time_spent"`
	Difficulty  string    `json:"difficulty"`
	CompletedAt time.Time `json:"completed_at"`
}

type MoodEntry struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	Mood            Mood      `json:"mood"`
	Notes           string    `json:"notes,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	ShowToCaregiver bool      `json:"show_to_caregiver"`
}

type ChatMessage struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Priority    Priority  `json:"priority"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	RelatedID   *string   `json:"related_id,omitempty"`
	DedupKey    string    `json:"-"`
}

type APIToken struct {
	ID              string
	Name            string
	TokenHash       string
	CreatedByUserID string
	ExpiresAt       *time.Time
	CreatedAt       time.Time
}
