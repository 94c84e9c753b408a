package engine

import (
	"testing"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

func TestOutboxFlush(t *testing.T) {
	o := NewOutbox()
	sink := newRecordingSink()

	o.Broadcast(api.LogMessage("hello"))
	o.SendTo(1, api.NewMessage(api.TypeAddSprite, api.SpriteUpdate{Entity: "5"}))
	o.SendTo(1, api.NewMessage(api.TypePlaySound, domain.SoundPunch))
	o.SendTo(2, api.NewMessage(api.TypeAddSprite, api.SpriteUpdate{Entity: "5"}))
	o.RequestRefresh(1)
	o.RequestRefresh(1)

	snapshots := 0
	o.Flush(sink, func(user domain.UserID) (api.ServerMessage, bool) {
		snapshots++
		return api.NewMessage(api.TypeUpdateFullGameMap, api.FullGameMap{}), true
	})

	if snapshots != 1 {
		t.Errorf("snapshots built = %d, want 1", snapshots)
	}
	if len(sink.broadcasts) != 1 {
		t.Errorf("broadcasts = %d, want 1", len(sink.broadcasts))
	}

	got := sink.targeted[1]
	if len(got) != 2 {
		t.Fatalf("user 1 messages = %+v", got)
	}
	if got[0].Type != api.TypeUpdateFullGameMap {
		t.Errorf("snapshot should go first, got %s", got[0].Type)
	}
	if got[1].Type != api.TypePlaySound {
		t.Errorf("non-sprite message should survive, got %s", got[1].Type)
	}
	if sink.countFor(2, api.TypeAddSprite) != 1 {
		t.Error("user without refresh keeps its incrementals")
	}
	if o.Pending() != 0 {
		t.Errorf("pending after flush = %d", o.Pending())
	}
}

func TestOutboxSkipsMissingSnapshot(t *testing.T) {
	o := NewOutbox()
	sink := newRecordingSink()

	o.SendTo(3, api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: "1"}))
	o.RequestRefresh(3)
	o.Flush(sink, func(domain.UserID) (api.ServerMessage, bool) {
		return api.ServerMessage{}, false
	})

	// Снимка нет, значит инкременты не подавляются
	if sink.countFor(3, api.TypeRemoveSprite) != 1 {
		t.Error("incrementals must be kept when no snapshot was sent")
	}
}
