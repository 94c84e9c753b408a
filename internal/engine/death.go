package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

const kingRatKilledLog = "🎉 A KING RAT HAS BEEN KILLED! 🎉"

// resolveDeaths убирает всех, у кого HP <= 0, и оставляет кости
func (s *GameService) resolveDeaths() {
	var dead []*domain.Entity
	s.World.Entities.Each(func(e *domain.Entity) {
		if dying(e) && e.Pos != nil {
			dead = append(dead, e)
		}
	})

	for _, e := range dead {
		s.kill(e)
	}
}

func (s *GameService) kill(e *domain.Entity) {
	mapID := e.Pos.MapID
	bones := systems.CreateBones(e)

	s.intents.Drop(e.ID)
	s.World.Despawn(e.ID)
	s.World.Invalidate(mapID)

	users := s.World.UsersOn(mapID)
	s.outbox.SendToMany(users, api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: entityRef(e.ID)}))
	s.broadcastLog(api.TypeDeath, fmt.Sprintf("%s died!", e.Name))

	if bones != nil {
		s.World.Spawn(bones)
		s.outbox.SendToMany(users, api.NewMessage(api.TypeAddSprite, toSpriteUpdate(bones)))
	}

	if e.Enemy != nil && e.Enemy.Kind == domain.EnemyRatKing {
		s.broadcastLog(api.TypeLog, kingRatKilledLog)
	}

	if e.User != nil {
		// Despawn уже убрал пользователя из CurrentUserMaps
		s.outbox.SendTo(e.User.ID, api.NewMessage(api.TypeYouDied, nil))
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "death",
		"entity":    e.ID,
		"name":      e.Name,
		"map":       mapID,
	}).Info("Entity died")
}
