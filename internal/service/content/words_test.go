package content

import "testing"

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"empty", "", 0},
		{"plain", "ship it today", 3},
		{"emphasis", "**due** _friday_", 2},
		{"heading and list", "# Plan\n\n- draft\n- review\n1. send", 4},
		{"fenced code skipped", "before\n```\nlots of code here\n```\nafter", 2},
		{"rule skipped", "one\n---\ntwo", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountWords(tt.markdown); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.markdown, got, tt.want)
			}
		})
	}
}
