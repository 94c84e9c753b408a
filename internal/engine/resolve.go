package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/internal/systems"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// resolveMoves применяет IntendMove в порядке прикрепления.
// Занятая клетка (по сетке или уже занятая в этом проходе) - ход отменяется без ошибок.
func (s *GameService) resolveMoves() {
	for _, in := range s.intents.Take(domain.IntentMove) {
		e := s.World.Entities.Get(in.Actor)
		if e == nil || e.Pos == nil {
			continue
		}
		m := s.World.Map(e.Pos.MapID)
		dest := domain.MapPosition{Pos: in.Pos, MapID: m.ID}
		if !m.InBounds(dest.Pos) || m.Blocked(domain.LayerMovement, dest.Pos) || s.claimed[dest] {
			logger.Log.WithFields(logrus.Fields{
				"component": "move_stage",
				"entity":    e.ID,
				"target":    dest.Pos,
			}).Debug("Move blocked at resolution")
			continue
		}

		s.World.SetPosition(e, dest)
		if e.BlocksMovement {
			s.claimed[dest] = true
		}
		if e.BlocksMovement || e.BlocksLight {
			s.World.Invalidate(m.ID)
		}
		if e.Eyes != nil {
			s.sighted = append(s.sighted, e.ID)
		}
		s.movers = append(s.movers, e.ID)

		if e.User != nil {
			s.outbox.SendTo(e.User.ID, api.NewMessage(api.TypeCentreCamera, toPosition(dest.Pos)))
			s.moves.RecordMove(e.User.ID)
		}
		s.outbox.SendToMany(s.World.UsersOn(m.ID), api.NewMessage(api.TypeEntityPositionChange, toSpriteUpdate(e)))
	}
}

// resolveWarps переносит игроков, наступивших на переход, на другую карту
func (s *GameService) resolveWarps() {
	for _, id := range s.movers {
		e := s.World.Entities.Get(id)
		if e == nil || e.User == nil {
			continue
		}
		for _, other := range s.World.OccupantsAt(e.Pos.MapID, e.Pos.Pos) {
			if other.IsWarp() && other.WarpTo != e.Pos.MapID {
				s.warp(e, other.WarpTo)
				break
			}
		}
	}
}

// warpArrival - клетка ответного перехода на целевой карте, иначе случайная свободная
func (s *GameService) warpArrival(from, to domain.MapID) (domain.MapPosition, error) {
	m := s.World.Map(to)
	for _, e := range s.World.Entities.OnMap(to) {
		if e.WarpTo != from {
			continue
		}
		mp := *e.Pos
		if !m.Blocked(domain.LayerMovement, mp.Pos) && !s.claimed[mp] {
			s.claimed[mp] = true
			return mp, nil
		}
	}
	return s.placeOn(to)
}

func (s *GameService) warp(e *domain.Entity, to domain.MapID) {
	from := e.Pos.MapID
	dest, err := s.warpArrival(from, to)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "warp",
			"entity":    e.ID,
			"error":     err,
		}).Warn("Warp target is full, staying")
		return
	}

	user := e.User.ID
	s.outbox.SendToMany(s.othersOn(from, user), api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: entityRef(e.ID)}))

	s.World.SetPosition(e, dest)
	s.World.Invalidate(from)
	s.World.Invalidate(to)
	s.intents.Drop(e.ID)

	s.outbox.SendToMany(s.othersOn(to, user), api.NewMessage(api.TypeAddSprite, toSpriteUpdate(e)))
	s.outbox.RequestRefresh(user)

	logger.Log.WithFields(logrus.Fields{
		"component": "warp",
		"user":      user,
		"from":      from,
		"to":        to,
		"pos":       dest.Pos,
	}).Info("Player changed map")
}

// inReach - актор и цель на одной карте не дальше соседней клетки
func inReach(actor, target *domain.Entity) bool {
	if actor.Pos == nil || target.Pos == nil || actor.Pos.MapID != target.Pos.MapID {
		return false
	}
	return actor.Pos.Pos.ChebyshevTo(target.Pos.Pos) <= 1
}

// dying - здоровье уже ушло в ноль в этом тике, смерть еще не обработана
func dying(e *domain.Entity) bool {
	return e.Hp != nil && e.Hp.Current <= 0
}

// resolveMeleeAttacks применяет урон
func (s *GameService) resolveMeleeAttacks() {
	for _, in := range s.intents.Take(domain.IntentMeleeAttack) {
		attacker := s.World.Entities.Get(in.Actor)
		target := s.World.Entities.Get(in.Target)
		if attacker == nil || target == nil || target.Hp == nil {
			continue
		}
		if dying(attacker) || dying(target) || !inReach(attacker, target) {
			continue
		}

		res := systems.ApplyAttack(attacker, target, s.bonus)
		s.broadcastLog(api.TypeDamage, fmt.Sprintf("%s hits %s for %d damage!", attacker.Name, target.Name, res.Damage))

		for _, u := range s.World.UsersOn(target.Pos.MapID) {
			s.outbox.SendTo(u, api.NewMessage(api.TypeShowDamage, damageView(target, res.Damage, false, u)))
			s.outbox.SendTo(u, api.NewMessage(api.TypePlaySound, domain.SoundPunch))
		}
	}
}

// resolveConsumes - поедание костей
func (s *GameService) resolveConsumes() {
	for _, in := range s.intents.Take(domain.IntentConsume) {
		eater := s.World.Entities.Get(in.Actor)
		bones := s.World.Entities.Get(in.Target)
		if eater == nil || bones == nil || !bones.Bones || dying(eater) || !inReach(eater, bones) {
			continue
		}

		healed := systems.Consume(eater)
		mapID := bones.Pos.MapID
		s.broadcastLog(api.TypeLog, fmt.Sprintf("%s eats the %s and recovers %d HP!", eater.Name, bones.Name, healed))

		for _, u := range s.World.UsersOn(mapID) {
			s.outbox.SendTo(u, api.NewMessage(api.TypeShowDamage, damageView(eater, healed, true, u)))
			s.outbox.SendTo(u, api.NewMessage(api.TypeRemoveSprite, api.EntityRef{Entity: entityRef(bones.ID)}))
			s.outbox.SendTo(u, api.NewMessage(api.TypePlaySound, domain.SoundEatBones))
		}

		s.World.Despawn(bones.ID)
		s.World.Invalidate(mapID)
	}
}

// resolveSpeech показывает говорящему реплики собеседника
func (s *GameService) resolveSpeech() {
	for _, in := range s.intents.Take(domain.IntentSpeak) {
		speaker := s.World.Entities.Get(in.Actor)
		npc := s.World.Entities.Get(in.Target)
		if speaker == nil || npc == nil || npc.Dialogue == nil || speaker.User == nil {
			continue
		}
		if !inReach(speaker, npc) {
			continue
		}
		s.outbox.SendTo(speaker.User.ID, api.NewMessage(api.TypeShowDialogue, api.DialogueView{
			Entity:   entityRef(npc.ID),
			Name:     npc.Name,
			Dialogue: npc.Dialogue.Lines,
		}))
	}
}
