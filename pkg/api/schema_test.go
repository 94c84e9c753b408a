package api

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		action  string
	}{
		{"move", `{"action":"MOVE","payload":{"direction":"UP"}}`, false, "MOVE"},
		{"hover", `{"action":"HOVER","payload":{"x":3,"y":4}}`, false, "HOVER"},
		{"connect without payload", `{"action":"CONNECT"}`, false, "CONNECT"},
		{"connect with name", `{"action":"CONNECT","payload":{"name":"Neil","appearance":"ghost_boy"}}`, false, "CONNECT"},
		{"keep alive", `{"action":"KEEP_ALIVE"}`, false, "KEEP_ALIVE"},
		{"spawn", `{"action":"SPAWN","payload":{"enemy":"rat"}}`, false, "SPAWN"},
		{"unknown action", `{"action":"FLY"}`, true, ""},
		{"move without payload", `{"action":"MOVE"}`, true, ""},
		{"click with string coords", `{"action":"CLICK","payload":{"x":"1","y":2}}`, true, ""},
		{"extra field", `{"action":"DISCONNECT","token":"abc"}`, true, ""},
		{"not json", `{action`, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := DecodeCommand([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPayload) {
					t.Fatalf("expected ErrInvalidPayload, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cmd.Action != tt.action {
				t.Errorf("action = %q, want %q", cmd.Action, tt.action)
			}
		})
	}
}

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name    string
		v       Validator
		wantErr bool
	}{
		{"direction ok", DirectionPayload{Direction: "left"}, false},
		{"direction empty", DirectionPayload{}, true},
		{"direction diagonal", DirectionPayload{Direction: "UP_LEFT"}, true},
		{"position ok", PositionPayload{X: 0, Y: 5}, false},
		{"position negative", PositionPayload{X: -1, Y: 5}, true},
		{"name ok", ConnectPayload{Name: "Goblin"}, false},
		{"name too long", ConnectPayload{Name: strings.Repeat("g", MaxNameLength+1)}, true},
		{"spawn ok", SpawnPayload{Enemy: "rat_king"}, false},
		{"spawn unknown", SpawnPayload{Enemy: "dragon"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerMessage_NullContent(t *testing.T) {
	data, err := json.Marshal(NewMessage(TypeTileHover, (*EntityData)(nil)))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"type":"tileHover","content":null}` {
		t.Errorf("got %s", data)
	}
}
