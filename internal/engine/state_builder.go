package engine

import (
	"strconv"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// entityRef - ссылка на сущность для клиента (строка, JS теряет точность uint64)
func entityRef(id domain.EntityID) string {
	return strconv.FormatUint(uint64(id), 10)
}

func toPosition(p domain.Position) api.Position {
	return api.Position{X: p.X, Y: p.Y}
}

// toSpriteUpdate конвертирует сущность в DTO спрайта
func toSpriteUpdate(e *domain.Entity) api.SpriteUpdate {
	return api.SpriteUpdate{
		Entity: entityRef(e.ID),
		Pos:    toPosition(e.Pos.Pos),
		Sprite: string(e.Texture()),
	}
}

// visibleSprite - сущность рисуется на клиенте
func visibleSprite(e *domain.Entity) bool {
	return e.Pos != nil && e.Texture() != domain.TextureEmpty
}

// BuildFullMap создает полный снимок карты пользователя.
// false, если пользователя нет в мире (умер или отключился).
func (s *GameService) BuildFullMap(user domain.UserID) (api.ServerMessage, bool) {
	self := s.World.UserEntity(user)
	if self == nil {
		return api.ServerMessage{}, false
	}
	m := s.World.Map(self.Pos.MapID)

	entities := make([]api.SpriteUpdate, 0)
	for _, e := range s.World.Entities.OnMap(m.ID) {
		if visibleSprite(e) {
			entities = append(entities, toSpriteUpdate(e))
		}
	}

	return api.NewMessage(api.TypeUpdateFullGameMap, api.FullGameMap{
		Camera:   toPosition(self.Pos.Pos),
		Width:    m.Width,
		Height:   m.Height,
		Floor:    string(m.Floor),
		Entities: entities,
	}), true
}

// damageView - всплывающая цифра для наблюдателя viewer
func damageView(target *domain.Entity, amount int, healing bool, viewer domain.UserID) api.DamageView {
	view := api.DamageView{
		Entity:       entityRef(target.ID),
		Damage:       amount,
		IsHealing:    healing,
		TargetIsUser: target.User != nil,
		TargetIsMe:   target.User != nil && target.User.ID == viewer,
	}
	if target.Hp != nil {
		view.CurrentHp = max(0, target.Hp.Current)
		view.MaxHp = target.Hp.Max
	}
	return view
}
