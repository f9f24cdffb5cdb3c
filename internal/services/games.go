package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/metrics"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
)

const (
	recentScoresLimit   = 10
	recentActivityLimit = 5
)

type GameService struct {
	scoreRepo repository.GameScoreRepository
	gate      accessGate
	now       func() time.Time
	pick      func(n int) int
}

func NewGameService(scoreRepo repository.GameScoreRepository, connectionRepo repository.ConnectionRepository) *GameService {
	return &GameService{
		scoreRepo: scoreRepo,
		gate:      accessGate{connectionRepo: connectionRepo},
		now:       time.Now,
		pick:      rand.IntN,
	}
}

type Game struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimated_time"`
	Benefits      []string `json:"benefits"`
}

var gameCatalogue = []Game{
	{
		ID: "face_name_easy", Name: "Face-Name Matching", Difficulty: "easy", EstimatedTime: "5 minutes",
		Description: "Remember faces and match them with names. Great for social memory!",
		Benefits:    []string{"Improves face recognition", "Enhances social memory", "Builds confidence"},
	},
	{
		ID: "face_name_medium", Name: "Face-Name Challenge", Difficulty: "medium", EstimatedTime: "7 minutes",
		Description: "More faces to remember, perfect for building stronger memory skills!",
		Benefits:    []string{"Advanced face recognition", "Stronger memory retention", "Better focus"},
	},
	{
		ID: "face_name_hard", Name: "Face-Name Expert", Difficulty: "hard", EstimatedTime: "10 minutes",
		Description: "The ultimate face-name challenge for memory champions!",
		Benefits:    []string{"Expert-level recognition", "Maximum memory workout", "Peak performance"},
	},
	{
		ID: "word_recall_easy", Name: "Word Recall Starter", Difficulty: "easy", EstimatedTime: "3 minutes",
		Description: "Remember simple words to boost your vocabulary memory!",
		Benefits:    []string{"Vocabulary retention", "Short-term memory", "Language skills"},
	},
	{
		ID: "word_recall_medium", Name: "Word Recall Builder", Difficulty: "medium", EstimatedTime: "5 minutes",
		Description: "Challenge yourself with more complex words and patterns!",
		Benefits:    []string{"Complex word patterns", "Enhanced recall", "Cognitive flexibility"},
	},
	{
		ID: "word_recall_hard", Name: "Word Recall Master", Difficulty: "hard", EstimatedTime: "8 minutes",
		Description: "Master-level word challenges for the sharpest minds!",
		Benefits:    []string{"Advanced vocabulary", "Superior memory", "Mental agility"},
	},
}

// ListAvailableGames returns the catalogue for patients and nothing for anyone else.
func (service *GameService) ListAvailableGames(caller Caller) []Game {
	if !caller.HasRole(models.RolePatient) {
		return []Game{}
	}
	return gameCatalogue
}

type SaveGameScoreInput struct {
	GameID     string
	Score      int
	MaxScore   int
	TimeSpent  int
	Difficulty string
}

// SaveGameScore appends a score. Scores above the maximum are accepted as is.
func (service *GameService) SaveGameScore(ctx context.Context, caller Caller, input SaveGameScoreInput) (models.GameScore, error) {
	patient, err := caller.RequireRole(models.RolePatient, "save game scores")
	if err != nil {
		return models.GameScore{}, err
	}
	if strings.TrimSpace(input.GameID) == "" {
		return models.GameScore{}, fmt.Errorf("%w: game id is required", ErrValidation)
	}
	if input.MaxScore <= 0 {
		return models.GameScore{}, fmt.Errorf("%w: max score must be positive", ErrValidation)
	}
	if input.Score < 0 || input.TimeSpent < 0 {
		return models.GameScore{}, fmt.Errorf("%w: score and time spent cannot be negative", ErrValidation)
	}

	score, err := service.scoreRepo.Create(ctx, models.GameScore{
		PatientID:   patient.ID,
		GameID:      input.GameID,
		Score:       input.Score,
		MaxScore:    input.MaxScore,
		Percentage:  percent(input.Score, input.MaxScore),
		TimeSpent:   input.TimeSpent,
		Difficulty:  input.Difficulty,
		CompletedAt: service.now(),
	})
	if err != nil {
		return models.GameScore{}, err
	}

	metrics.GameScores.WithLabelValues(score.GameID).Inc()
	slog.Info("saved game score", "patient_id", patient.ID, "game_id", score.GameID, "percentage", score.Percentage)
	return score, nil
}

type GameStats struct {
	GamesPlayed    int                `json:"games_played"`
	AverageScore   int                `json:"average_score"`
	RecentScores   []models.GameScore `json:"recent_scores"`
	TotalTimeSpent int                `json:"total_time_spent"`
}

func (service *GameService) GetGameStats(ctx context.Context, caller Caller, patientID string, days int) (GameStats, error) {
	empty := GameStats{RecentScores: []models.GameScore{}}
	allowed, err := service.gate.canViewPatient(ctx, caller, patientID)
	if err != nil {
		return empty, err
	}
	if !allowed {
		return empty, nil
	}

	since := windowStart(service.now(), days)
	scores, err := service.scoreRepo.FindByPatient(ctx, patientID, &since, 0)
	if err != nil {
		return empty, err
	}
	return summarizeScores(scores), nil
}

// summarizeScores expects scores newest first.
func summarizeScores(scores []models.GameScore) GameStats {
	stats := GameStats{GamesPlayed: len(scores), RecentScores: []models.GameScore{}}
	totalPercentage := 0
	for _, score := range scores {
		totalPercentage += score.Percentage
		stats.TotalTimeSpent += score.TimeSpent
	}
	if len(scores) > 0 {
		stats.AverageScore = int(math.Round(float64(totalPercentage) / float64(len(scores))))
	}
	if len(scores) > recentScoresLimit {
		scores = scores[:recentScoresLimit]
	}
	stats.RecentScores = append(stats.RecentScores, scores...)
	return stats
}

// GetRecentActivity returns the latest scores regardless of age.
func (service *GameService) GetRecentActivity(ctx context.Context, caller Caller, patientID string) ([]models.GameScore, error) {
	allowed, err := service.gate.canViewPatient(ctx, caller, patientID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return []models.GameScore{}, nil
	}
	scores, err := service.scoreRepo.FindByPatient(ctx, patientID, nil, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		scores = []models.GameScore{}
	}
	return scores, nil
}

type MotivationalContent struct {
	Message       string `json:"message"`
	Quote         string `json:"quote"`
	Tip           string `json:"tip"`
	Percentage    int    `json:"percentage"`
	Encouragement string `json:"encouragement"`
}

var motivationalMessages = map[string][]string{
	"excellent": {
		"Outstanding work! Your memory is sharp and strong today!",
		"Incredible performance! You're showing amazing mental agility!",
		"Fantastic job! Your dedication to brain health is truly inspiring!",
		"Brilliant! You're proving that consistent practice makes perfect!",
		"Exceptional work! Your cognitive skills are in excellent shape!",
	},
	"good": {
		"Great job! You're making wonderful progress with your memory training!",
		"Well done! Every game you play strengthens your mind!",
		"Nice work! You're building stronger neural pathways with each attempt!",
		"Good effort! Your persistence is paying off beautifully!",
		"Solid performance! You're on the right track to better memory health!",
	},
	"encouraging": {
		"You're doing great! Remember, every attempt helps strengthen your memory!",
		"Keep going! Your brain is getting a wonderful workout today!",
		"Nice try! Each game session is a step forward in your memory journey!",
		"You're making progress! Consistency is more important than perfection!",
		"Well attempted! Your effort and dedication are what truly matter!",
	},
}

var inspirationalQuotes = []string{
	"The mind is everything. What you think you become. - Buddha",
	"Memory is the treasury and guardian of all things. - Cicero",
	"Learning never exhausts the mind. - Leonardo da Vinci",
	"The capacity to learn is a gift; the ability to learn is a skill. - Brian Herbert",
	"Memory is the diary that we all carry about with us. - Oscar Wilde",
	"A good memory is one trained to forget the trivial. - Clifton Fadiman",
	"The true art of memory is the art of attention. - Samuel Johnson",
	"Every expert was once a beginner. Every pro was once an amateur. - Robin Sharma",
}

var memoryTips = map[string][]string{
	"face_name": {
		"Try associating names with distinctive facial features. It creates stronger memory links!",
		"Practice name repetition: say the person's name three times when you meet them.",
		"Create mental stories connecting the person's name to their appearance or personality.",
		"Focus on one facial feature at a time to build detailed memories.",
		"Break complex names into smaller, memorable parts.",
	},
	"word_recall": {
		"Create vivid mental images for each word. The more unusual, the more memorable!",
		"Try the story method: connect words together in a silly or dramatic story.",
		"Create acronyms from the first letters of the words.",
		"Review words at increasing intervals for better retention.",
		"Associate new words with familiar concepts or personal experiences.",
	},
	"general": {
		"Stay hydrated! Your brain needs water to function at its best.",
		"Get quality sleep. It's when your brain consolidates memories.",
		"Regular exercise increases blood flow to the brain and improves memory.",
		"Practice mindfulness to sharpen focus and attention to detail.",
		"Challenge yourself daily with puzzles, reading, or learning new skills.",
	},
}

// GetMotivationalContent picks feedback for a finished game. Tiers are
// excellent at 80% and above and good at 60% and above.
func (service *GameService) GetMotivationalContent(score int, maxScore int, gameType string) (MotivationalContent, error) {
	if maxScore <= 0 {
		return MotivationalContent{}, fmt.Errorf("%w: max score must be positive", ErrValidation)
	}
	percentage := percent(score, maxScore)

	tier, encouragement := "encouraging", "Every attempt makes you stronger, don't give up!"
	switch {
	case percentage >= 80:
		tier, encouragement = "excellent", "Keep up the excellent work!"
	case percentage >= 60:
		tier, encouragement = "good", "You're doing great, keep practicing!"
	}

	tipCategory := gameType
	if _, ok := memoryTips[tipCategory]; !ok {
		tipCategory = "general"
	}

	return MotivationalContent{
		Message:       service.choose(motivationalMessages[tier]),
		Quote:         service.choose(inspirationalQuotes),
		Tip:           service.choose(memoryTips[tipCategory]),
		Percentage:    percentage,
		Encouragement: encouragement,
	}, nil
}

func (service *GameService) choose(options []string) string {
	return options[service.pick(len(options))]
}
