package version

import (
	"strings"
	"testing"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{
			name:     "epoch date",
			date:     "2026-01-15",
			expected: 0,
		},
		{
			name:     "next day after epoch",
			date:     "2026-01-16",
			expected: 1,
		},
		{
			name:     "one year later",
			date:     "2027-01-15",
			expected: 365,
		},
		{
			name:     "date with leap year included",
			date:     "2032-01-15",
			expected: 2191,
		},
		{
			name:      "invalid format",
			date:      "invalid",
			wantError: true,
		},
		{
			name:      "empty date",
			date:      "",
			wantError: true,
		},
		{
			name:      "before epoch",
			date:      "2026-01-14",
			wantError: true,
		},
	}

	old := BuildDate
	defer func() { BuildDate = old }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildDate = tt.date

			got, err := CalculateBuildID()

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil (id=%d)", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.expected {
				t.Errorf("CalculateBuildID() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	oldDate, oldCommit := BuildDate, BuildCommit
	defer func() { BuildDate, BuildCommit = oldDate, oldCommit }()

	BuildDate = "2026-01-20"
	BuildCommit = "abc123"
	got := String()
	if !strings.Contains(got, "build 5 (2026-01-20)") || !strings.Contains(got, "commit[abc123]") {
		t.Errorf("String() = %q", got)
	}

	BuildDate = ""
	if got := String(); !strings.Contains(got, "unknown") {
		t.Errorf("String() without date = %q", got)
	}
}
