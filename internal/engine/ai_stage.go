package engine

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// attachAIIntents - решения ИИ. Каждый моб думает раз в AICooldown секунд.
func (s *GameService) attachAIIntents() {
	s.World.Entities.Each(func(npc *domain.Entity) {
		if npc.AI == nil || npc.Pos == nil || npc.User != nil {
			return
		}
		if npc.AI.Cooldown > 0 {
			return
		}
		if npc.Cooldown != nil && !npc.Cooldown.Ready() {
			return
		}
		if npc.Hp != nil && npc.Hp.Current <= 0 {
			return
		}
		s.decide(npc)
		npc.AI.Cooldown = domain.AICooldown
	})
}

// aiTargets - живые пользователи карты, которых моб видит
func (s *GameService) aiTargets(npc *domain.Entity) []systems.AITarget {
	if npc.Eyes == nil || npc.Eyes.Visible == nil {
		return nil
	}
	var out []systems.AITarget
	for _, user := range s.World.UsersOn(npc.Pos.MapID) {
		e := s.World.UserEntity(user)
		if e == nil || e.Hp == nil || !e.IsAlive() {
			continue
		}
		if !npc.Eyes.Visible.Visible(e.Pos.Pos) {
			continue
		}
		out = append(out, systems.AITarget{ID: e.ID, Pos: e.Pos.Pos, Hp: *e.Hp})
	}
	return out
}

func (s *GameService) decide(npc *domain.Entity) {
	m := s.World.Map(npc.Pos.MapID)
	targets := s.aiTargets(npc)

	var wander *domain.Position
	if npc.AI.Paths {
		if p, ok := systems.PickWanderTarget(npc, m, s.rng); ok {
			wander = &p
		}
	}

	actions := systems.ScoreAIActions(npc, targets, wander)
	if !npc.AI.Paths {
		// Неподвижный моб только бьет соседей
		kept := actions[:0]
		for _, a := range actions {
			if a.Action.Kind == domain.AIActionAttack {
				kept = append(kept, a)
			}
		}
		actions = kept
	}

	action, ok := systems.ChooseFuzzy(actions, systems.AIConfidenceBand, systems.AICertainty, s.rng)
	if !ok {
		npc.AI.Action = domain.AIAction{}
		return
	}
	npc.AI.Action = action

	switch action.Kind {
	case domain.AIActionAttack:
		if s.intents.Attach(domain.Intent{Kind: domain.IntentMeleeAttack, Actor: npc.ID, Target: action.Target}) && npc.Cooldown != nil {
			npc.Cooldown.StartAttack()
		}

	case domain.AIActionChase:
		target := s.World.Entities.Get(action.Target)
		if target == nil || !target.IsOn(m.ID) {
			return
		}
		s.stepToward(npc, m, target.Pos.Pos)

	case domain.AIActionWander:
		s.stepToward(npc, m, action.Pos)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "ai_stage",
		"npc":       npc.ID,
		"name":      npc.Name,
		"action":    action.Kind,
		"target":    action.Target,
	}).Debug("AI decided")
}

// stepToward вешает IntendMove на первый шаг A*.
// В занятую цель не шагаем: путь туда строится, но последний шаг отбрасывается.
func (s *GameService) stepToward(npc *domain.Entity, m *domain.GameMap, goal domain.Position) {
	step, ok := systems.FirstStep(m, npc.Pos.Pos, goal, s.pathOpts)
	if !ok {
		return
	}
	if step == goal && m.Blocked(domain.LayerMovement, goal) {
		return
	}
	if s.intents.Attach(domain.Intent{Kind: domain.IntentMove, Actor: npc.ID, Pos: step}) && npc.Cooldown != nil {
		npc.Cooldown.StartMove()
	}
}
