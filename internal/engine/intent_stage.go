package engine

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// attachPlayerIntents превращает стрелки в намерения.
// Стрелка во время кулдауна отбрасывается.
func (s *GameService) attachPlayerIntents() {
	for _, user := range s.queues.moveOrder {
		e := s.World.UserEntity(user)
		if e == nil || e.Cooldown == nil {
			continue
		}
		if !e.Cooldown.Ready() {
			logger.Log.WithFields(logrus.Fields{
				"component": "intent_stage",
				"user":      user,
				"remaining": e.Cooldown.TimeRemaining,
			}).Debug("Move dropped on cooldown")
			continue
		}
		s.attachStep(e, s.queues.moves[user].Delta())
	}
}

// attachStep - общая логика шага: движение, речь, атака или удар о стену
func (s *GameService) attachStep(e *domain.Entity, d domain.Delta) {
	m := s.World.Map(e.Pos.MapID)
	target := e.Pos.Pos.Add(d)

	var occupants []*domain.Entity
	if m.InBounds(target) && m.Blocked(domain.LayerMovement, target) {
		occupants = s.World.OccupantsAt(m.ID, target)
	}
	res := systems.CalculateMove(e, d, m, occupants)

	switch {
	case res.HasMoved:
		s.intents.Attach(domain.Intent{Kind: domain.IntentMove, Actor: e.ID, Pos: res.Target})
		e.Cooldown.StartMove()

	case res.BlockedBy != nil && res.BlockedBy.Dialogue != nil:
		s.intents.Attach(domain.Intent{Kind: domain.IntentSpeak, Actor: e.ID, Target: res.BlockedBy.ID})

	case res.BlockedBy != nil:
		s.intents.Attach(domain.Intent{Kind: domain.IntentMeleeAttack, Actor: e.ID, Target: res.BlockedBy.ID})
		e.Cooldown.StartAttack()

	case res.IsWall && e.User != nil:
		s.outbox.SendTo(e.User.ID, api.NewMessage(api.TypePlaySound, domain.SoundBump))
	}
}
