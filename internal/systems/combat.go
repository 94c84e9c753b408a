package systems

import (
	"math/rand"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/logger"

	"github.com/sirupsen/logrus"
)

// BonusRoller - источник случайного бонуса к урону
type BonusRoller interface {
	Roll() int
}

// BonusFunc адаптирует функцию к BonusRoller
type BonusFunc func() int

func (f BonusFunc) Roll() int { return f() }

// FixedBonus - детерминированный бонус (тесты, реплеи)
func FixedBonus(n int) BonusRoller {
	return BonusFunc(func() int { return n })
}

// RandomBonus - бонус 0..maxBonus из сидированного генератора движка
func RandomBonus(rng *rand.Rand, maxBonus int) BonusRoller {
	return BonusFunc(func() int {
		if maxBonus <= 0 {
			return 0
		}
		return rng.Intn(maxBonus + 1)
	})
}

// CalculateDamage: max(1, attack - defense + bonus)
func CalculateDamage(attack, defense, bonus int) int {
	return max(1, attack-defense+bonus)
}

// AttackResult - итог одной атаки
type AttackResult struct {
	Damage   int
	HpBefore int
	HpAfter  int
	Died     bool
}

// ApplyAttack наносит урон. У цели должен быть HpComponent.
func ApplyAttack(attacker, target *domain.Entity, bonus BonusRoller) AttackResult {
	attack := 0
	if attacker.Combat != nil {
		attack = attacker.Combat.Attack
	}
	defense := 0
	if target.Combat != nil {
		defense = target.Combat.Defense
	}
	roll := bonus.Roll()

	res := AttackResult{
		Damage:   CalculateDamage(attack, defense, roll),
		HpBefore: target.Hp.Current,
	}
	res.Died = target.Hp.TakeDamage(res.Damage)
	res.HpAfter = target.Hp.Current

	logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
		"attack":        attack,
		"defense":       defense,
		"bonus":         roll,
		"final_damage":  res.Damage,
		"hp_before":     res.HpBefore,
		"hp_after":      res.HpAfter,
		"target_died":   res.Died,
	}).Info("Attack resolved.")

	return res
}

// Consume - поедание костей. Возвращает восстановленное HP.
func Consume(eater *domain.Entity) int {
	if eater.Hp == nil {
		return 0
	}
	return eater.Hp.Heal(domain.BonesHealAmount)
}

// CreateBones создает останки на месте погибшей сущности
func CreateBones(dead *domain.Entity) *domain.Entity {
	if dead.Pos == nil {
		return nil
	}
	pos := *dead.Pos
	return &domain.Entity{
		Name:   "Bones",
		Pos:    &pos,
		Render: &domain.RenderComponent{Texture: domain.TextureBones},
		Bones:  true,
	}
}
