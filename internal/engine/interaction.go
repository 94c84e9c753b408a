package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// resolveInteractions - наведение мыши и клики
func (s *GameService) resolveInteractions() {
	for _, cmd := range s.queues.hovers {
		s.hover(cmd.Actor, cmd.Pos)
	}
	for _, cmd := range s.queues.clicks {
		s.click(cmd.Actor, cmd.Pos)
	}
}

// topEntityAt - верхняя сущность клетки: последняя созданная среди видимых спрайтов
func (s *GameService) topEntityAt(mapID domain.MapID, pos domain.Position) *domain.Entity {
	var top *domain.Entity
	for _, e := range s.World.OccupantsAt(mapID, pos) {
		if visibleSprite(e) {
			top = e
		}
	}
	return top
}

// hover отвечает TileHover с данными сущности или null
func (s *GameService) hover(user domain.UserID, pos domain.Position) {
	self := s.World.UserEntity(user)
	if self == nil {
		return
	}
	m := s.World.Map(self.Pos.MapID)
	if !m.InBounds(pos) {
		s.outbox.SendTo(user, api.NewMessage(api.TypeTileHover, nil))
		return
	}

	target := s.topEntityAt(m.ID, pos)
	if target == nil {
		s.outbox.SendTo(user, api.NewMessage(api.TypeTileHover, nil))
		return
	}

	visible := self.Eyes != nil && self.Eyes.Visible != nil && self.Eyes.Visible.Visible(pos)
	s.outbox.SendTo(user, api.NewMessage(api.TypeTileHover, api.EntityData{
		Name:            target.Name,
		BlocksLight:     target.BlocksLight,
		VisibleToPlayer: visible,
	}))
}

// click - эхо клика всем; клик по костям рядом - намерение съесть
func (s *GameService) click(user domain.UserID, pos domain.Position) {
	self := s.World.UserEntity(user)
	if self == nil {
		return
	}
	s.broadcastLog(api.TypeTileClick, fmt.Sprintf("%s clicked (%d, %d)", self.Name, pos.X, pos.Y))

	m := s.World.Map(self.Pos.MapID)
	if !m.InBounds(pos) || self.Pos.Pos.ChebyshevTo(pos) > 1 {
		return
	}
	if self.Cooldown == nil || !self.Cooldown.Ready() {
		return
	}
	for _, e := range s.World.OccupantsAt(m.ID, pos) {
		if !e.Bones {
			continue
		}
		if s.intents.Attach(domain.Intent{Kind: domain.IntentConsume, Actor: self.ID, Target: e.ID}) {
			self.Cooldown.StartAttack()
		}
		return
	}
}
