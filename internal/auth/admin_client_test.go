package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminClientGenerateLink(t *testing.T) {
	var gotType, gotEmail, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/v1/admin/generate_link" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("apikey")

		var body generateLinkRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotType, gotEmail = body.Type, body.Email

		// older shape, link nested under properties
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"properties":{"action_link":"https://auth.example/verify?token=abc"}}`))
	}))
	defer server.Close()

	client := NewAdminClient(server.URL, "service-key")
	link, err := client.PasswordResetLink(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("PasswordResetLink failed: %v", err)
	}
	if link != "https://auth.example/verify?token=abc" {
		t.Errorf("unexpected link %q", link)
	}
	if gotType != "recovery" || gotEmail != "ada@example.com" {
		t.Errorf("unexpected payload type=%q email=%q", gotType, gotEmail)
	}
	if gotKey != "service-key" {
		t.Errorf("expected service key header, got %q", gotKey)
	}
}

func TestAdminClientDeleteUser(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"deleted", http.StatusOK, false},
		{"already gone", http.StatusNotFound, false},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/auth/v1/admin/users/user-1" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := NewAdminClient(server.URL, "k").DeleteUser(context.Background(), "user-1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteUser error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
