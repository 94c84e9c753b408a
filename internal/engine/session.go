package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/dungeon"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// resolveSessions - вход и выход игроков
func (s *GameService) resolveSessions() {
	for _, cmd := range s.queues.disconnects {
		s.disconnect(cmd.Actor)
	}
	for _, p := range s.queues.connects {
		if err := s.connect(p.cmd); err != nil {
			s.deferPlacement(p, err)
		}
	}
}

// placeOn выбирает свободную клетку карты с учетом занятых в этом тике и занимает ее
func (s *GameService) placeOn(mapID domain.MapID) (domain.MapPosition, error) {
	taken := make(map[domain.Position]bool)
	for mp := range s.claimed {
		if mp.MapID == mapID {
			taken[mp.Pos] = true
		}
	}
	pos, err := systems.RandomUnblockedTile(s.World.Map(mapID), s.rng, taken)
	if err != nil {
		return domain.MapPosition{}, fmt.Errorf("map %d: %w", mapID, err)
	}
	mp := domain.MapPosition{Pos: pos, MapID: mapID}
	s.claimed[mp] = true
	return mp, nil
}

// connect создает игрока на основной карте
func (s *GameService) connect(cmd domain.Command) error {
	if s.World.UserEntity(cmd.Actor) != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"user":      cmd.Actor,
		}).Warn("User already in game, connect ignored")
		return nil
	}

	pos, err := s.placeOn(domain.PrimaryMapID)
	if err != nil {
		return err
	}

	name := cmd.Name
	if name == "" {
		name = fmt.Sprintf("Player %d", cmd.Actor)
	}
	player := dungeon.CreatePlayer(cmd.Actor, name, s.tables.Player(cmd.Appearance), pos)
	s.World.Spawn(player)
	s.World.RefreshEyes(player)
	s.World.Invalidate(pos.MapID)

	s.outbox.SendToMany(s.othersOn(pos.MapID, cmd.Actor), api.NewMessage(api.TypeAddSprite, toSpriteUpdate(player)))
	s.outbox.RequestRefresh(cmd.Actor)

	logger.Log.WithFields(logrus.Fields{
		"component":  "session",
		"user":       cmd.Actor,
		"entity":     player.ID,
		"name":       name,
		"appearance": player.Texture(),
		"map":        pos.MapID,
		"pos":        pos.Pos,
	}).Info("Player joined")
	return nil
}

// disconnect удаляет сущность пользователя, если она еще жива
func (s *GameService) disconnect(user domain.UserID) {
	e := s.World.UserEntity(user)
	if e == nil {
		return
	}
	mapID := e.Pos.MapID
	s.intents.Drop(e.ID)
	s.World.Despawn(e.ID)
	s.World.Invalidate(mapID)
	s.outbox.SendToMany(s.World.UsersOn(mapID), api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: entityRef(e.ID)}))

	logger.Log.WithFields(logrus.Fields{
		"component": "session",
		"user":      user,
		"entity":    e.ID,
		"map":       mapID,
	}).Info("Player left")
}

// othersOn - пользователи карты, кроме self
func (s *GameService) othersOn(mapID domain.MapID, self domain.UserID) []domain.UserID {
	users := s.World.UsersOn(mapID)
	out := users[:0]
	for _, u := range users {
		if u != self {
			out = append(out, u)
		}
	}
	return out
}
