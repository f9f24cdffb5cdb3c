package handlers

import (
	"net/http"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

type saveScoreRequest struct {
	GameID     string `json:"game_id" validate:"required,max=100"`
	Score      int    `json:"score" validate:"gte=0"`
	MaxScore   int    `json:"max_score" validate:"required,gt=0"`
	TimeSpent  int    `json:"time_spent" validate:"gte=0"`
	Difficulty string `json:"difficulty" validate:"omitempty,max=50"`
}

func (handler *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.gameService.ListAvailableGames(middleware.GetCaller(r.Context())))
}

func (handler *GameHandler) SaveScore(w http.ResponseWriter, r *http.Request) {
	var request saveScoreRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	score, err := handler.gameService.SaveGameScore(r.Context(), middleware.GetCaller(r.Context()), services.SaveGameScoreInput{
		GameID:     request.GameID,
		Score:      request.Score,
		MaxScore:   request.MaxScore,
		TimeSpent:  request.TimeSpent,
		Difficulty: request.Difficulty,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

func (handler *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days, err := intQuery(r, "days", 7)
	if err != nil {
		writeError(w, err)
		return
	}

	stats, err := handler.gameService.GetGameStats(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"), days)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (handler *GameHandler) Recent(w http.ResponseWriter, r *http.Request) {
	scores, err := handler.gameService.GetRecentActivity(r.Context(), middleware.GetCaller(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scores)
}

func (handler *GameHandler) Motivation(w http.ResponseWriter, r *http.Request) {
	score, err := intQuery(r, "score", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	maxScore, err := intQuery(r, "max_score", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	content, err := handler.gameService.GetMotivationalContent(score, maxScore, r.URL.Query().Get("game_type"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}
