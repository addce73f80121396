package llm

import (
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		name         string
		modelStr     string
		wantProvider string
		wantModel    string
		wantErr      bool
	}{
		{
			name:         "claude-haiku with version",
			modelStr:     "claude-haiku-4-5-20251001",
			wantProvider: "anthropic",
			wantModel:    "claude-haiku-4-5-20251001",
		},
		{
			name:         "explicit provider",
			modelStr:     "anthropic/claude-sonnet-4-5-20250929",
			wantProvider: "anthropic",
			wantModel:    "claude-sonnet-4-5-20250929",
		},
		{
			name:         "lorem-fast model",
			modelStr:     "lorem-fast",
			wantProvider: "lorem",
			wantModel:    "lorem-fast",
		},
		{
			name:         "surrounding whitespace",
			modelStr:     "  lorem-plain ",
			wantProvider: "lorem",
			wantModel:    "lorem-plain",
		},
		{
			name:     "empty string",
			modelStr: "",
			wantErr:  true,
		},
		{
			name:     "unknown model prefix",
			modelStr: "gpt-4",
			wantErr:  true,
		},
		{
			name:     "empty provider",
			modelStr: "/claude-haiku-4-5",
			wantErr:  true,
		},
		{
			name:     "empty model",
			modelStr: "anthropic/",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseModel(tt.modelStr)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseModel(%q) expected error, got %+v", tt.modelStr, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModel(%q) unexpected error: %v", tt.modelStr, err)
			}
			if got.Provider != tt.wantProvider {
				t.Errorf("provider = %q, want %q", got.Provider, tt.wantProvider)
			}
			if got.Model != tt.wantModel {
				t.Errorf("model = %q, want %q", got.Model, tt.wantModel)
			}
		})
	}
}
