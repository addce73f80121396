package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"docit/internal/domain"
	"docit/internal/domain/models"
	"docit/internal/httputil"
)

type fakeVerifier struct {
	sessions map[string]*models.Session
}

func (f *fakeVerifier) VerifyToken(_ context.Context, token string) (*models.Session, error) {
	if s, ok := f.sessions[token]; ok {
		return s, nil
	}
	return nil, domain.ErrUnauthorized
}

func (f *fakeVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &fakeVerifier{sessions: map[string]*models.Session{
		"good":       {UserID: "u1", EmailVerified: true},
		"unverified": {UserID: "u2"},
	}}

	var seen *models.Session
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httputil.GetSession(r)
		w.WriteHeader(http.StatusNoContent)
	})

	protected := AuthMiddleware(verifier, testLogger(), "/health")(inner)
	verified := AuthMiddleware(verifier, testLogger(), "/health")(RequireVerifiedEmail(inner))

	tests := []struct {
		name     string
		handler  http.Handler
		method   string
		target   string
		header   string
		wantCode int
		wantUser string
	}{
		{"public path", protected, http.MethodGet, "/health", "", http.StatusNoContent, ""},
		{"preflight", protected, http.MethodOptions, "/api/folders", "", http.StatusNoContent, ""},
		{"no token", protected, http.MethodGet, "/api/folders", "", http.StatusUnauthorized, ""},
		{"wrong scheme", protected, http.MethodGet, "/api/folders", "Basic good", http.StatusUnauthorized, ""},
		{"bad token", protected, http.MethodGet, "/api/folders", "Bearer nope", http.StatusUnauthorized, ""},
		{"good token", protected, http.MethodGet, "/api/folders", "Bearer good", http.StatusNoContent, "u1"},
		{"query token ignored", protected, http.MethodGet, "/api/folders?access_token=good", "", http.StatusUnauthorized, ""},
		{"verify guard passes", verified, http.MethodGet, "/api/folders", "Bearer good", http.StatusNoContent, "u1"},
		{"verify guard blocks", verified, http.MethodGet, "/api/folders", "Bearer unverified", http.StatusForbidden, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			gotUser := ""
			if seen != nil {
				gotUser = seen.UserID
			}
			if gotUser != tt.wantUser {
				t.Errorf("session user = %q, want %q", gotUser, tt.wantUser)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	handler := Recovery(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestRecoveryReraisesAbort(t *testing.T) {
	handler := Recovery(testLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", rec)
		}
	}()
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	t.Error("ServeHTTP returned normally")
}

func TestQueryTokenOnlyForEventsUpgrade(t *testing.T) {
	verifier := &fakeVerifier{sessions: map[string]*models.Session{
		"good": {UserID: "u1", EmailVerified: true},
	}}
	handler := AuthMiddleware(verifier, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		target   string
		upgrade  bool
		wantCode int
	}{
		{"events upgrade", "/api/events?access_token=good", true, http.StatusNoContent},
		{"events without upgrade", "/api/events?access_token=good", false, http.StatusUnauthorized},
		{"other route with upgrade", "/api/folders?access_token=good", true, http.StatusUnauthorized},
		{"other route", "/api/folders?access_token=good", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.upgrade {
				req.Header.Set("Connection", "Upgrade")
				req.Header.Set("Upgrade", "websocket")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
