package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/middleware"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/models"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// APIHandler manages the caller's bearer tokens.
type APIHandler struct {
	tokenRepo repository.APITokenRepository
}

func NewAPIHandler(tokenRepo repository.APITokenRepository) *APIHandler {
	return &APIHandler{tokenRepo: tokenRepo}
}

type createTokenRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ExpiresInDays int    `json:"expires_in_days" validate:"gte=0,lte=365"`
}

type tokenResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (handler *APIHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	tokens, err := handler.tokenRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]tokenResponse, 0, len(tokens))
	for _, token := range tokens {
		response = append(response, tokenResponse{
			ID:        token.ID,
			Name:      token.Name,
			ExpiresAt: token.ExpiresAt,
			CreatedAt: token.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (handler *APIHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request createTokenRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	rawToken, err := generateToken()
	if err != nil {
		writeError(w, err)
		return
	}
	token := models.APIToken{
		Name:            request.Name,
		TokenHash:       repository.HashToken(rawToken),
		CreatedByUserID: user.ID,
	}
	if request.ExpiresInDays > 0 {
		expiresAt := time.Now().AddDate(0, 0, request.ExpiresInDays)
		token.ExpiresAt = &expiresAt
	}

	created, err := handler.tokenRepo.Create(ctx, token)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{
		ID:        created.ID,
		Name:      created.Name,
		Token:     rawToken,
		ExpiresAt: created.ExpiresAt,
		CreatedAt: created.CreatedAt,
	})
}

func (handler *APIHandler) DeleteToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	deleted, err := handler.tokenRepo.DeleteForUser(ctx, chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeError(w, fmt.Errorf("%w: token", services.ErrNotFound))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps service errors onto HTTP statuses. Unexpected errors are
// logged and hidden behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrAuthenticationRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrAuthorizationDenied):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrProfileExists):
		status = http.StatusConflict
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON reads and validates a request body. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	return decodeBody(w, r, target, false)
}

// decodeOptionalJSON is decodeJSON for endpoints where the body may be
// omitted, whatever the transfer encoding. An empty body leaves target as is.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	return decodeBody(w, r, target, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}, allowEmpty bool) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil && !(allowEmpty && errors.Is(err, io.EOF)) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	if err := validate.Struct(target); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		messages = append(messages, fmt.Sprintf("%s failed %s", fieldError.Field(), fieldError.Tag()))
	}
	return "validation failed: " + strings.Join(messages, ", ")
}

// intQuery reads an optional integer query parameter.
func intQuery(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", services.ErrValidation, name)
	}
	return value, nil
}

// requestLocation honours a ?tz= IANA zone and falls back to the server zone.
func requestLocation(r *http.Request, fallback *time.Location) (*time.Location, error) {
	name := r.URL.Query().Get("tz")
	if name == "" {
		return fallback, nil
	}
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown time zone %q", services.ErrValidation, name)
	}
	return location, nil
}
