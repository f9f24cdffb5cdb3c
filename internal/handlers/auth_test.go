package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/config"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/repository"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/services"
	"github.com/Abdul-Hannan-21/Digital-Product-Development/internal/testutil"
)

func TestLoginPage_DevAutoLogin_WhenOIDCNotConfigured(t *testing.T) {
	db := testutil.NewTestDatabase(t)

	authService, err := services.NewAuthService(
		context.Background(),
		config.Config{SessionSecret: "test-secret"},
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
	)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}

	handler := NewAuthHandler(authService)

	request := httptest.NewRequest(http.MethodGet, "/login", nil)
	recorder := httptest.NewRecorder()
	handler.LoginPage(recorder, request)

	if recorder.Code != http.StatusFound {
		t.Errorf("expected 302, got %d\nbody: %s", recorder.Code, recorder.Body.String())
	}

	location := recorder.Header().Get("Location")
	if location != "/api/profile" {
		t.Errorf("expected redirect to /api/profile, got %q", location)
	}

	var sessionCookie string
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "session" {
			sessionCookie = cookie.Value
			break
		}
	}
	if sessionCookie == "" {
		t.Fatal("expected session cookie to be set")
	}

	sessionRequest := httptest.NewRequest(http.MethodGet, "/", nil)
	sessionRequest.AddCookie(&http.Cookie{Name: "session", Value: sessionCookie})
	session, err := authService.GetSession(sessionRequest)
	if err != nil {
		t.Fatalf("session cookie not decodable: %v", err)
	}
	if session.UserID == "" {
		t.Error("expected non-empty UserID in session")
	}
}

func TestCallback_RejectsMismatchedState(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	authService, err := services.NewAuthService(
		context.Background(),
		config.Config{SessionSecret: "test-secret"},
		repository.NewUserRepository(db),
		repository.NewProfileRepository(db),
	)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}

	request := httptest.NewRequest(http.MethodGet, "/auth/callback?state=forged&code=abc", nil)
	request.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	recorder := httptest.NewRecorder()
	NewAuthHandler(authService).Callback(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}
