package engine

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
	"github.com/alexeagleson/goblin-boys/pkg/dungeon"
	"github.com/alexeagleson/goblin-boys/pkg/logger"
	"github.com/alexeagleson/goblin-boys/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Лимиты популяции для автоспавна
const (
	maxAutoRats    = 10
	maxAutoSlimes  = 4
	maxAutoRatKing = 1
)

// resolveSpawns - запросы клиентов и автоспавн по таймеру
func (s *GameService) resolveSpawns(dt float64) {
	for _, p := range s.queues.spawns {
		if err := s.spawnEnemy(p.cmd.Enemy); err != nil {
			s.deferPlacement(p, err)
		}
	}

	s.spawnTimer += dt
	if s.spawnTimer < s.cfg.AutoSpawnInterval {
		return
	}
	s.spawnTimer -= s.cfg.AutoSpawnInterval

	if kind, ok := s.rollAutoSpawn(); ok {
		if err := s.spawnEnemy(kind); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "spawn",
				"enemy":     kind,
				"error":     err,
			}).Warn("Auto spawn skipped")
		}
	}
}

// rollAutoSpawn бросает d20: 1-15 крыса (при живом короле), 16-18 слизь, 19-20 король
func (s *GameService) rollAutoSpawn() (domain.EnemyKind, bool) {
	counts := s.enemyCounts()
	d20 := utils.RollDie(s.rng, 20)
	switch {
	case d20 <= 15:
		if counts[domain.EnemyRat] < maxAutoRats && counts[domain.EnemyRatKing] == maxAutoRatKing {
			return domain.EnemyRat, true
		}
	case d20 <= 18:
		if counts[domain.EnemySlime] < maxAutoSlimes {
			return domain.EnemySlime, true
		}
	default:
		if counts[domain.EnemyRatKing] < maxAutoRatKing {
			return domain.EnemyRatKing, true
		}
	}
	return domain.EnemyUnknown, false
}

func (s *GameService) enemyCounts() map[domain.EnemyKind]int {
	counts := make(map[domain.EnemyKind]int)
	s.World.Entities.Each(func(e *domain.Entity) {
		if e.Enemy != nil {
			counts[e.Enemy.Kind]++
		}
	})
	return counts
}

// spawnEnemy создает врага на карте врагов. ErrNoPlacement - если места нет.
func (s *GameService) spawnEnemy(kind domain.EnemyKind) error {
	cfg, ok := s.tables.Enemy(kind)
	if !ok {
		logger.Log.WithFields(logrus.Fields{
			"component": "spawn",
			"enemy":     kind,
		}).Warn("No config for enemy, spawn ignored")
		return nil
	}

	pos, err := s.placeOn(s.enemyMap)
	if err != nil {
		return fmt.Errorf("spawn %s: %w", kind, err)
	}

	enemy := dungeon.CreateEnemy(kind, cfg, pos)
	s.World.Spawn(enemy)
	s.World.RefreshEyes(enemy)
	s.World.Invalidate(pos.MapID)

	s.outbox.SendToMany(s.World.UsersOn(pos.MapID), api.NewMessage(api.TypeAddSprite, toSpriteUpdate(enemy)))
	s.broadcastLog(api.TypeLog, fmt.Sprintf("%s has spawned!", enemy.Name))
	return nil
}
