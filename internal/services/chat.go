package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/metrics"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

const (
	ChatCategoryReminders = "reminders"
	ChatCategoryGames     = "games"
	ChatCategoryGeneral   = "general"

	defaultChatHistoryLimit = 10
	maxChatHistoryLimit     = 100
)

type ChatService struct {
	chatRepo        repository.ChatMessageRepository
	scoreRepo       repository.GameScoreRepository
	reminderService *ReminderService
	rules           []chatRule
	now             func() time.Time
}

func NewChatService(
	chatRepo repository.ChatMessageRepository,
	scoreRepo repository.GameScoreRepository,
	reminderService *ReminderService,
) *ChatService {
	service := &ChatService{
		chatRepo:        chatRepo,
		scoreRepo:       scoreRepo,
		reminderService: reminderService,
		now:             time.Now,
	}
	service.rules = service.defaultRules()
	return service
}

type ChatReply struct {
	Response string `json:"response"`
	Category string `json:"category"`
	Intent   string `json:"intent"`
}

// chatTurn is what a responder gets to work with.
type chatTurn struct {
	patient  models.Profile
	message  string
	location *time.Location
}

type chatRule struct {
	intent   string
	category string
	matches  func(message string) bool
	respond  func(ctx context.Context, turn chatTurn) (string, error)
}

func containsAny(keywords ...string) func(string) bool {
	return func(message string) bool {
		for _, keyword := range keywords {
			if strings.Contains(message, keyword) {
				return true
			}
		}
		return false
	}
}

// greetingPattern matches "hi" as a whole word only, unlike the substring
// match the other keywords use, so "this" or "high" do not greet.
var greetingPattern = regexp.MustCompile(`\bhi\b`)

func fixed(response string) func(context.Context, chatTurn) (string, error) {
	return func(context.Context, chatTurn) (string, error) {
		return response, nil
	}
}

// defaultRules is evaluated top to bottom and the first match wins, so the
// order is part of the behaviour: "schedule" beats "game" and "memory" is
// claimed by games before the confused rule sees it.
func (service *ChatService) defaultRules() []chatRule {
	return []chatRule{
		{
			intent:   "medication",
			category: ChatCategoryReminders,
			matches:  containsAny("pill", "medication", "medicine"),
			respond:  service.respondMedication,
		},
		{
			intent:   "schedule",
			category: ChatCategoryReminders,
			matches:  containsAny("schedule", "today", "appointment", "what can i do", "what should i do"),
			respond:  service.respondSchedule,
		},
		{
			intent:   "games",
			category: ChatCategoryGames,
			matches:  containsAny("game", "play", "memory", "brain"),
			respond: fixed("I'd love to help you exercise your memory!\n\n" +
				"Available games:\n• Face-Name Matching, great for remembering people\n• Word Recall Challenge, great for vocabulary\n\n" +
				"Start with the easier levels, play when you feel most alert, and take breaks when you are tired. " +
				"Every attempt helps, perfect scores are not the point.\n\nWhich game sounds fun to you today?"),
		},
		{
			intent:   "help",
			category: ChatCategoryGeneral,
			matches:  containsAny("help", "what can you do", "assist"),
			respond: fixed("I'm here to be your companion. I can:\n" +
				"• check your medications (\"Did I take my pills?\")\n" +
				"• go over your schedule (\"What should I do today?\")\n" +
				"• suggest memory games (\"Can we play a game?\")\n" +
				"• offer some encouragement when you need it\n\nWhat would you like to know?"),
		},
		{
			intent:   "thanks",
			category: ChatCategoryGeneral,
			matches:  containsAny("thank", "thanks"),
			respond: fixed("You're so welcome! I'm always here to help you. " +
				"You're doing a fantastic job taking care of yourself, and every small step counts."),
		},
		{
			intent:   "greeting",
			category: ChatCategoryGeneral,
			matches: func(message string) bool {
				return containsAny("how are you", "hello")(message) || greetingPattern.MatchString(message)
			},
			respond: service.respondGreeting,
		},
		{
			intent:   "tired",
			category: ChatCategoryGeneral,
			matches:  containsAny("tired", "exhausted", "sleepy"),
			respond: fixed("It sounds like you're feeling tired. That's completely normal.\n\n" +
				"Take a short rest if you need it, have a glass of water, or step outside for some fresh air. " +
				"Rest is important for memory and health, and you can always try activities later."),
		},
		{
			intent:   "confused",
			category: ChatCategoryGeneral,
			matches:  containsAny("confused", "lost", "forget", "memory"),
			respond: fixed("It's okay to feel confused sometimes. You're not alone in this.\n\n" +
				"Take things one step at a time and ask for help whenever you need it. " +
				"Writing things down, keeping a routine and using reminders can all help.\n\n" +
				"Would you like help with anything specific right now?"),
		},
		{
			intent:   "sad",
			category: ChatCategoryGeneral,
			matches:  containsAny("sad", "down", "upset"),
			respond: fixed("I'm sorry you're feeling sad. Your feelings are valid and this moment will pass.\n\n" +
				"Listening to favourite music, looking at happy photos or calling someone who cares about you can help. " +
				"Tomorrow is a new day.\n\nIs there anything I can help you with right now?"),
		},
	}
}

var defaultChatRule = chatRule{
	intent:   "default",
	category: ChatCategoryGeneral,
	respond: fixed("I want to help you! You can ask me about your medications, your schedule for today, " +
		"memory games, or just have a friendly chat. What would you like to talk about?"),
}

func (service *ChatService) match(message string) chatRule {
	for _, rule := range service.rules {
		if rule.matches(message) {
			return rule
		}
	}
	return defaultChatRule
}

// ProcessMessage answers one chat turn and stores it. No context carries over
// between turns.
func (service *ChatService) ProcessMessage(ctx context.Context, caller Caller, message string, location *time.Location) (ChatReply, error) {
	patient, err := caller.RequireRole(models.RolePatient, "use the chatbot")
	if err != nil {
		return ChatReply{}, err
	}
	if strings.TrimSpace(message) == "" {
		return ChatReply{}, fmt.Errorf("%w: message is required", ErrValidation)
	}

	normalized := strings.ToLower(strings.TrimSpace(message))
	rule := service.match(normalized)

	response, err := rule.respond(ctx, chatTurn{patient: patient, message: normalized, location: location})
	if err != nil {
		return ChatReply{}, fmt.Errorf("answering %s message: %w", rule.intent, err)
	}

	if _, err := service.chatRepo.Create(ctx, models.ChatMessage{
		PatientID: patient.ID,
		Message:   message,
		Response:  response,
		Category:  rule.category,
		Timestamp: service.now(),
	}); err != nil {
		return ChatReply{}, err
	}

	metrics.ChatMessages.WithLabelValues(rule.category).Inc()
	slog.Debug("answered chat message", "patient_id", patient.ID, "intent", rule.intent)
	return ChatReply{Response: response, Category: rule.category, Intent: rule.intent}, nil
}

func (service *ChatService) GetChatHistory(ctx context.Context, caller Caller, limit int) ([]models.ChatMessage, error) {
	if !caller.HasRole(models.RolePatient) {
		return []models.ChatMessage{}, nil
	}
	if limit <= 0 {
		limit = defaultChatHistoryLimit
	}
	limit = min(limit, maxChatHistoryLimit)

	messages, err := service.chatRepo.FindRecent(ctx, caller.Profile.ID, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return messages, nil
}

func (service *ChatService) respondMedication(ctx context.Context, turn chatTurn) (string, error) {
	medication := models.ReminderMedication
	reminders, err := service.reminderService.remindersForDay(ctx, turn.patient.ID, turn.location, false, &medication)
	if err != nil {
		return "", err
	}
	if len(reminders) == 0 {
		return "You don't have any medications scheduled for today.\n\n" +
			"If you feel unwell or have questions about your medications, contact your doctor or caregiver.", nil
	}

	pending := pendingReminders(reminders)
	if len(pending) == 0 {
		return fmt.Sprintf("Wonderful! You've taken all %d of your medications today. Keep up the excellent work!", len(reminders)), nil
	}
	return fmt.Sprintf("You have %d %s left to take today:\n%s\n\n"+
		"Don't worry if you're running a bit behind, just take them when you can.",
		len(pending), plural(len(pending), "medication", "medications"), listReminders(pending, turn.location)), nil
}

func (service *ChatService) respondSchedule(ctx context.Context, turn chatTurn) (string, error) {
	reminders, err := service.reminderService.remindersForDay(ctx, turn.patient.ID, turn.location, false, nil)
	if err != nil {
		return "", err
	}
	gamesToday, err := service.scoreRepo.CountSince(ctx, turn.patient.ID, service.now().Add(-day))
	if err != nil {
		return "", err
	}

	if len(reminders) == 0 && gamesToday == 0 {
		return "You have a free day today! You could play the Face-Name Matching game or the Word Recall Challenge, " +
			"take a gentle walk, call a friend or family member, or look through some old photos.\n\n" +
			"What sounds interesting to you today?", nil
	}

	var builder strings.Builder
	pending := pendingReminders(reminders)
	switch {
	case len(reminders) > 0 && len(pending) == 0:
		builder.WriteString("Amazing! You've completed everything on your schedule for today.\n\n")
	case len(pending) > 0:
		builder.WriteString("Here's what you have coming up today:\n")
		builder.WriteString(listReminders(pending, turn.location))
		builder.WriteString("\n\n")
	}

	if gamesToday == 0 {
		builder.WriteString("You haven't played any memory games today. How about a quick round of " +
			"Face-Name Matching (5 minutes) or Word Recall (3 minutes)? Even a few minutes makes a difference.")
	} else {
		fmt.Fprintf(&builder, "Great job playing %d memory %s today! Your brain is getting a wonderful workout.",
			gamesToday, plural(gamesToday, "game", "games"))
	}
	return builder.String(), nil
}

func (service *ChatService) respondGreeting(_ context.Context, turn chatTurn) (string, error) {
	hour := service.now().In(turn.location).Hour()
	timeOfDay := "evening"
	switch {
	case hour < 12:
		timeOfDay = "morning"
	case hour < 18:
		timeOfDay = "afternoon"
	}
	return fmt.Sprintf("Good %s, %s! I'm so happy to see you today.\n\n"+
		"How are you feeling? I can check your schedule, suggest a memory game, or just have a friendly chat.",
		timeOfDay, turn.patient.Name), nil
}

func pendingReminders(reminders []models.Reminder) []models.Reminder {
	var pending []models.Reminder
	for _, reminder := range reminders {
		if !reminder.IsCompleted {
			pending = append(pending, reminder)
		}
	}
	return pending
}

func listReminders(reminders []models.Reminder, location *time.Location) string {
	lines := make([]string, 0, len(reminders))
	for _, reminder := range reminders {
		lines = append(lines, fmt.Sprintf("• %s at %s", reminder.Title, reminder.ScheduledTime.In(location).Format("3:04 PM")))
	}
	return strings.Join(lines, "\n")
}

func plural(count int, singular string, pluralForm string) string {
	if count == 1 {
		return singular
	}
	return pluralForm
}
