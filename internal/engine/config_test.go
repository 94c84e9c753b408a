package engine

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoadConfigFromReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		check   func(t *testing.T, c Config)
	}{
		{
			name:  "empty input keeps defaults",
			input: "",
			check: func(t *testing.T, c Config) {
				if c.TickRate != 20 || c.AttackBonusMax != 2 || c.AutoSpawnInterval != 5 || c.DebugInterval != 0.5 {
					t.Errorf("defaults changed: %+v", c)
				}
			},
		},
		{
			name:  "overrides",
			input: "seed: 42\ntick_rate: 10\ndiagonals: true\nbots: 3\n",
			check: func(t *testing.T, c Config) {
				if c.Seed != 42 || c.TickRate != 10 || !c.Diagonals || c.Bots != 3 {
					t.Errorf("overrides not applied: %+v", c)
				}
				if c.TickInterval() != 100*time.Millisecond {
					t.Errorf("tick interval = %v", c.TickInterval())
				}
			},
		},
		{
			name:    "unknown field",
			input:   "tickrate: 10\n",
			wantErr: "field tickrate not found",
		},
		{
			name:    "invalid values joined",
			input:   "tick_rate: 0\nport: 70000\n",
			wantErr: "tick_rate must be in 1..1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfigFromReader(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestConfigValidateJoinsErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.TickRate = 0
	cfg.Port = 0
	cfg.Bots = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("error is not joined: %v", err)
	}
	if n := len(joined.Unwrap()); n != 3 {
		t.Errorf("joined errors = %d, want 3", n)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(t.TempDir() + "/missing.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}
