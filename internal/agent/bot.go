package agent

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/network"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"
	"github.com/alexeagleson/goblin-boys/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Game - вход игрового цикла, тот же, что у WebSocket-клиента
type Game interface {
	Submit(cmd domain.Command) bool
}

// Bot - игрок-компьютер внутри процесса (нагрузочный прогон).
//
// Бот подписывается в Broadcaster как обычный клиент и видит мир только
// через сообщения сервера: по ним он держит локальную картину
// (своя позиция из камеры, чужие спрайты). Раз в Interval он шлет MOVE:
// к ближайшему видимому врагу или в случайную сторону.
// После YouDied бот подключается заново.
type Bot struct {
	User       domain.UserID
	Name       string
	Appearance string
	Interval   time.Duration

	game  Game
	hub   *network.Broadcaster
	inbox <-chan api.ServerMessage
	rng   *rand.Rand

	// enemies - текстуры, к которым бот идет драться
	enemies map[string]bool
	view    localView

	received int
}

// localView - то, что бот знает о своей карте
type localView struct {
	camera  api.Position
	placed  bool
	dead    bool
	sprites map[string]api.SpriteUpdate
}

func NewBot(hub *network.Broadcaster, game Game, appearance string, enemyTextures []string, seed int64, interval time.Duration) *Bot {
	user := hub.NextUserID()
	enemies := make(map[string]bool, len(enemyTextures))
	for _, t := range enemyTextures {
		enemies[t] = true
	}
	return &Bot{
		User:       user,
		Name:       fmt.Sprintf("Bot %d", user),
		Appearance: appearance,
		Interval:   interval,
		game:       game,
		hub:        hub,
		inbox:      hub.Register(user),
		rng:        rand.New(rand.NewSource(seed)),
		enemies:    enemies,
		view:       localView{sprites: make(map[string]api.SpriteUpdate)},
	}
}

func (b *Bot) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "bot",
		"user":      b.User,
	})
}

// Run - жизненный цикл бота до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	defer b.hub.Unregister(b.User)

	if !b.connect() {
		return nil
	}
	b.log().WithField("appearance", b.Appearance).Info("Bot joined")

	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			b.game.Submit(domain.Command{Actor: b.User, Kind: domain.CommandDisconnect})
			b.log().WithField("received", b.received).Info("Bot shut down")
			return nil

		case msg, ok := <-b.inbox:
			if !ok {
				return nil
			}
			b.received++
			b.observe(msg)

		case <-ticker.C:
			if !b.act() {
				return nil
			}
		}
	}
}

func (b *Bot) connect() bool {
	b.view = localView{sprites: make(map[string]api.SpriteUpdate)}
	return b.game.Submit(domain.Command{
		Actor:      b.User,
		Kind:       domain.CommandConnect,
		Name:       b.Name,
		Appearance: b.Appearance,
	})
}

// observe обновляет локальную картину по сообщению сервера
func (b *Bot) observe(msg api.ServerMessage) {
	switch msg.Type {
	case api.TypeUpdateFullGameMap:
		full, ok := msg.Content.(api.FullGameMap)
		if !ok {
			return
		}
		b.view.camera = full.Camera
		b.view.placed = true
		b.view.sprites = make(map[string]api.SpriteUpdate, len(full.Entities))
		for _, s := range full.Entities {
			b.view.sprites[s.Entity] = s
		}
	case api.TypeCentreCamera:
		if pos, ok := msg.Content.(api.Position); ok {
			b.view.camera = pos
		}
	case api.TypeAddSprite, api.TypeEntityPositionChange:
		if s, ok := msg.Content.(api.SpriteUpdate); ok {
			b.view.sprites[s.Entity] = s
		}
	case api.TypeRemoveSprite:
		if ref, ok := msg.Content.(api.EntityRef); ok {
			delete(b.view.sprites, ref.Entity)
		}
	case api.TypeYouDied:
		b.view.dead = true
	}
}

// act отправляет следующую команду. false - цикл остановлен.
func (b *Bot) act() bool {
	if b.view.dead {
		b.log().Info("Bot died, rejoining")
		return b.connect()
	}
	if !b.view.placed {
		return true
	}
	return b.game.Submit(domain.Command{
		Actor:     b.User,
		Kind:      domain.CommandMove,
		Direction: b.chooseDirection(),
	})
}

// chooseDirection - шаг к ближайшему врагу, иначе случайный
func (b *Bot) chooseDirection() domain.Direction {
	if target, ok := b.nearestEnemy(); ok {
		dx, dy := target.X-b.view.camera.X, target.Y-b.view.camera.Y
		switch {
		case abs(dx) >= abs(dy) && dx > 0:
			return domain.East
		case abs(dx) >= abs(dy) && dx < 0:
			return domain.West
		case dy > 0:
			return domain.South
		case dy < 0:
			return domain.North
		}
	}
	dir, _ := utils.RandomChoice(b.rng, domain.CardinalDirections)
	return dir
}

func (b *Bot) nearestEnemy() (api.Position, bool) {
	best, found := api.Position{}, false
	bestDist := 0
	for _, s := range b.view.sprites {
		if !b.enemies[s.Sprite] || s.Pos == b.view.camera {
			continue
		}
		d := abs(s.Pos.X-b.view.camera.X) + abs(s.Pos.Y-b.view.camera.Y)
		// при равенстве - верхний левый, порядок обхода map случаен
		if !found || d < bestDist || (d == bestDist && s.Pos.Y*1000+s.Pos.X < best.Y*1000+best.X) {
			best, bestDist, found = s.Pos, d, true
		}
	}
	return best, found
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
