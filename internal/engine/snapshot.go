package engine

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// MapInfo - сводка по карте для отладки
type MapInfo struct {
	ID       domain.MapID `json:"id"`
	Name     string       `json:"name"`
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	Floor    string       `json:"floor"`
	Entities int          `json:"entities"`
	Users    int          `json:"users"`
}

// EntityInfo - сущность для отладки
type EntityInfo struct {
	ID      domain.EntityID     `json:"id"`
	Name    string              `json:"name"`
	Pos     domain.Position     `json:"pos"`
	Texture string              `json:"texture"`
	Hp      *domain.HpComponent `json:"hp,omitempty"`
	User    *domain.UserID      `json:"user,omitempty"`
	AI      string              `json:"ai,omitempty"`
}

// UserInfo - строка CurrentUserMaps
type UserInfo struct {
	User  domain.UserID   `json:"user"`
	Name  string          `json:"name"`
	MapID domain.MapID    `json:"mapId"`
	Pos   domain.Position `json:"pos"`
}

// WorldSnapshot - неизменяемый снимок мира на конец тика.
// Читается HTTP-обработчиками без блокировок.
type WorldSnapshot struct {
	Tick     uint64                        `json:"tick"`
	Maps     []MapInfo                     `json:"maps"`
	Entities map[domain.MapID][]EntityInfo `json:"entities"`
	Users    []UserInfo                    `json:"users"`
}

// Snapshot - последний опубликованный снимок
func (s *GameService) Snapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

func (s *GameService) publishSnapshot() {
	snap := &WorldSnapshot{
		Tick:     s.tick,
		Entities: make(map[domain.MapID][]EntityInfo),
	}

	for _, m := range s.World.Maps() {
		entities := s.World.Entities.OnMap(m.ID)
		infos := make([]EntityInfo, 0, len(entities))
		for _, e := range entities {
			infos = append(infos, toEntityInfo(e))
		}
		snap.Entities[m.ID] = infos
		snap.Maps = append(snap.Maps, MapInfo{
			ID:       m.ID,
			Name:     m.Name,
			Width:    m.Width,
			Height:   m.Height,
			Floor:    string(m.Floor),
			Entities: len(entities),
			Users:    len(s.World.UsersOn(m.ID)),
		})
	}

	for _, u := range s.World.Users() {
		pos, _ := s.World.UserMap(u)
		info := UserInfo{User: u, MapID: pos.MapID, Pos: pos.Pos}
		if e := s.World.UserEntity(u); e != nil {
			info.Name = e.Name
		}
		snap.Users = append(snap.Users, info)
	}

	s.snapshot.Store(snap)
}

func toEntityInfo(e *domain.Entity) EntityInfo {
	info := EntityInfo{
		ID:      e.ID,
		Name:    e.Name,
		Pos:     e.Pos.Pos,
		Texture: string(e.Texture()),
	}
	if e.Hp != nil {
		hp := *e.Hp
		info.Hp = &hp
	}
	if e.User != nil {
		u := e.User.ID
		info.User = &u
	}
	if e.AI != nil {
		info.AI = e.AI.Action.Kind.String()
	}
	return info
}

// debugStopwatch раз в DebugInterval рассылает число врагов
func (s *GameService) debugStopwatch(dt float64) {
	s.debugTimer += dt
	if s.debugTimer < s.cfg.DebugInterval {
		return
	}
	s.debugTimer = 0

	s.outbox.Broadcast(api.NewMessage(api.TypeDebug, api.DebugData{NumEnemies: s.countEnemies()}))
}

// countEnemies - сущности со здоровьем и боевыми статами, не пользователи
func (s *GameService) countEnemies() int {
	n := 0
	s.World.Entities.Each(func(e *domain.Entity) {
		if e.User == nil && e.Hp != nil && e.Combat != nil {
			n++
		}
	})
	return n
}
