package agent

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/data"
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/engine"
	"github.com/alexeagleson/goblin-boys/internal/network"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type recordingGame struct {
	commands []domain.Command
}

func (g *recordingGame) Submit(cmd domain.Command) bool {
	g.commands = append(g.commands, cmd)
	return true
}

func newTestBot(game Game) *Bot {
	return NewBot(network.NewBroadcaster(), game, "ghost_boy", []string{"rat", "slime"}, 1, time.Hour)
}

func TestChooseDirectionTowardsEnemy(t *testing.T) {
	tests := []struct {
		name  string
		enemy api.Position
		want  domain.Direction
	}{
		{"east", api.Position{X: 8, Y: 5}, domain.East},
		{"west", api.Position{X: 1, Y: 6}, domain.West},
		{"south", api.Position{X: 5, Y: 9}, domain.South},
		{"north", api.Position{X: 6, Y: 1}, domain.North},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBot(&recordingGame{})
			b.observe(api.NewMessage(api.TypeUpdateFullGameMap, api.FullGameMap{
				Camera: api.Position{X: 5, Y: 5},
				Entities: []api.SpriteUpdate{
					{Entity: "1", Pos: api.Position{X: 5, Y: 5}, Sprite: "ghost_boy"},
					{Entity: "2", Pos: tt.enemy, Sprite: "rat"},
					// не враг, хоть и ближе
					{Entity: "3", Pos: api.Position{X: 5, Y: 4}, Sprite: "grace"},
				},
			}))

			if got := b.chooseDirection(); got != tt.want {
				t.Errorf("chooseDirection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestObserveTracksSprites(t *testing.T) {
	b := newTestBot(&recordingGame{})
	b.observe(api.NewMessage(api.TypeUpdateFullGameMap, api.FullGameMap{Camera: api.Position{X: 2, Y: 2}}))
	b.observe(api.NewMessage(api.TypeAddSprite, api.SpriteUpdate{Entity: "7", Pos: api.Position{X: 4, Y: 2}, Sprite: "slime"}))
	b.observe(api.NewMessage(api.TypeEntityPositionChange, api.SpriteUpdate{Entity: "7", Pos: api.Position{X: 3, Y: 2}, Sprite: "slime"}))
	b.observe(api.NewMessage(api.TypeCentreCamera, api.Position{X: 2, Y: 3}))

	if got := b.view.sprites["7"].Pos; got != (api.Position{X: 3, Y: 2}) {
		t.Errorf("sprite pos = %+v", got)
	}
	if b.view.camera != (api.Position{X: 2, Y: 3}) {
		t.Errorf("camera = %+v", b.view.camera)
	}

	b.observe(api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: "7"}))
	if _, ok := b.nearestEnemy(); ok {
		t.Error("removed sprite still targeted")
	}
}

func TestActWaitsForPlacementAndRejoinsAfterDeath(t *testing.T) {
	game := &recordingGame{}
	b := newTestBot(game)

	b.act()
	if len(game.commands) != 0 {
		t.Fatalf("bot moved before placement: %+v", game.commands)
	}

	b.observe(api.NewMessage(api.TypeUpdateFullGameMap, api.FullGameMap{Camera: api.Position{X: 1, Y: 1}}))
	b.act()
	if len(game.commands) != 1 || game.commands[0].Kind != domain.CommandMove || game.commands[0].Actor != b.User {
		t.Fatalf("commands = %+v", game.commands)
	}

	b.observe(api.NewMessage(api.TypeYouDied, nil))
	b.act()
	last := game.commands[len(game.commands)-1]
	if last.Kind != domain.CommandConnect || last.Name != b.Name || last.Appearance != "ghost_boy" {
		t.Errorf("rejoin command = %+v", last)
	}
	if b.view.dead || b.view.placed {
		t.Error("view not reset after rejoin")
	}
}

func TestBotJoinsRunningGame(t *testing.T) {
	tables, err := data.Load()
	if err != nil {
		t.Fatalf("data.Load: %v", err)
	}
	cfg := engine.NewConfig()
	cfg.Seed = 7
	cfg.AutoSpawnInterval = 1000

	hub := network.NewBroadcaster()
	svc, err := engine.NewService(cfg, tables, engine.WithSink(hub))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() { loopDone <- svc.Run(ctx) }()

	bot := NewBot(hub, svc, "kidzilla", nil, 3, 20*time.Millisecond)
	botDone := make(chan error, 1)
	go func() { botDone <- bot.Run(ctx) }()

	joined := false
	deadline := time.Now().Add(3 * time.Second)
	for !joined && time.Now().Before(deadline) {
		if snap := svc.Snapshot(); snap != nil {
			for _, u := range snap.Users {
				if u.User == bot.User && u.Name == bot.Name {
					joined = true
				}
			}
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	if err := <-botDone; err != nil {
		t.Errorf("bot.Run: %v", err)
	}
	if err := <-loopDone; err != nil {
		t.Errorf("svc.Run: %v", err)
	}
	if !joined {
		t.Fatal("bot never appeared in the world snapshot")
	}
}
