package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOptionalStringEditDialog(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
		wantErr     bool
	}{
		{name: "absent keeps", body: `{}`},
		{name: "null clears", body: `{"description": null}`, wantPresent: true},
		{name: "text replaces", body: `{"description": "Day job"}`, wantPresent: true, wantValue: strPtr("Day job")},
		{name: "blank is sent as is", body: `{"description": ""}`, wantPresent: true, wantValue: strPtr("")},
		{name: "number rejected", body: `{"description": 5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req struct {
				Description OptionalString `json:"description"`
			}
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			got := req.Description
			if got.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", got.Present, tt.wantPresent)
			}
			switch {
			case tt.wantValue == nil && got.Value != nil:
				t.Errorf("Value = %q, want nil", *got.Value)
			case tt.wantValue != nil && (got.Value == nil || *got.Value != *tt.wantValue):
				t.Errorf("Value = %v, want %q", got.Value, *tt.wantValue)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantEmpty bool
		wantLarge bool
	}{
		{name: "valid", body: `{"name":"Work"}`},
		{name: "unknown fields ignored", body: `{"name":"Work","color":"red"}`},
		{name: "empty", body: ``, wantErr: true, wantEmpty: true},
		{name: "malformed", body: `{"name":`, wantErr: true},
		{name: "too large", body: `{"name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`, wantErr: true, wantLarge: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(tt.body))
			var dest struct {
				Name string `json:"name"`
			}

			err := ParseJSON(httptest.NewRecorder(), r, &dest)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantEmpty && !errors.Is(err, ErrEmptyBody) {
				t.Errorf("err = %v, want ErrEmptyBody", err)
			}
			var tooLarge *http.MaxBytesError
			if tt.wantLarge != errors.As(err, &tooLarge) {
				t.Errorf("err = %v, want MaxBytesError %v", err, tt.wantLarge)
			}
			if !tt.wantErr && dest.Name != "Work" {
				t.Errorf("name = %q", dest.Name)
			}
		})
	}
}

func TestRespondErrorWithExtras(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithExtras(rec, http.StatusConflict, "a message is already pending", map[string]interface{}{
		"resource_type": "chat",
		"status":        "ignored",
	})

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["resource_type"] != "chat" || body["title"] != "Conflict" {
		t.Errorf("body = %v", body)
	}
	if body["status"] != float64(http.StatusConflict) {
		t.Errorf("status member = %v, want 409", body["status"])
	}
}

func strPtr(s string) *string { return &s }
