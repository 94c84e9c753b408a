package systems

import (
	"math/rand"
	"sort"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/utils"
)

// Параметры весов ИИ
const (
	AIContinuityOffset = 0.1
	AIWanderWeight     = 0.0001
	AIChaseExponent    = 1.0
	AIChaseFactor      = 0.33

	// Полоса уверенности нечеткого выбора
	AIConfidenceBand = 0.1
	AICertainty      = 0.6
)

// WeightedAction - кандидат с весом
type WeightedAction struct {
	Action domain.AIAction
	Weight float64
}

// AITarget - видимая ИИ цель (пользователь)
type AITarget struct {
	ID  domain.EntityID
	Pos domain.Position
	Hp  domain.HpComponent
}

// --- Кривые ---

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func linear(value, maxValue float64) float64 {
	if maxValue == 0 {
		return 0
	}
	return clamp01(value / maxValue)
}

func invert(v float64) float64 {
	return 1 - v
}

func quadratic(x, slope, shift float64) float64 {
	return clamp01(slope*x*x + shift)
}

// AttackWeight: clamp(linear(hp, max) + offset)
func AttackWeight(hp domain.HpComponent, offset float64) float64 {
	return clamp01(linear(float64(hp.Current), float64(hp.Max)) + offset)
}

// ChaseWeight: quadratic((hpWeight + invert(linear(dist, sight))) / 2 + offset)
func ChaseWeight(hp domain.HpComponent, distance, sight int, offset float64) float64 {
	hpWeight := linear(float64(hp.Current), float64(hp.Max))
	distanceWeight := clamp01(invert(linear(float64(distance), float64(sight))))
	total := clamp01((hpWeight+distanceWeight)/2 + offset)
	return quadratic(total, AIChaseExponent, AIChaseFactor)
}

// ScoreAIActions собирает взвешенных кандидатов для моба.
// wander == nil, если бродить некуда.
func ScoreAIActions(npc *domain.Entity, targets []AITarget, wander *domain.Position) []WeightedAction {
	prev := domain.AIAction{}
	if npc.AI != nil {
		prev = npc.AI.Action
	}
	sight := domain.DefaultVisionRadius
	if npc.Eyes != nil {
		sight = npc.Eyes.Radius
	}

	var out []WeightedAction
	for _, t := range targets {
		dist := npc.Pos.Pos.ManhattanTo(t.Pos)
		if dist <= 1 {
			offset := 0.0
			if prev.Kind == domain.AIActionAttack && prev.Target == t.ID {
				offset = AIContinuityOffset
			}
			out = append(out, WeightedAction{
				Action: domain.AIAction{Kind: domain.AIActionAttack, Target: t.ID},
				Weight: AttackWeight(t.Hp, offset),
			})
			continue
		}
		offset := 0.0
		if prev.Kind == domain.AIActionChase && prev.Target == t.ID {
			offset = AIContinuityOffset
		}
		out = append(out, WeightedAction{
			Action: domain.AIAction{Kind: domain.AIActionChase, Target: t.ID},
			Weight: ChaseWeight(t.Hp, dist, sight, offset),
		})
	}

	if wander != nil {
		out = append(out, WeightedAction{
			Action: domain.AIAction{Kind: domain.AIActionWander, Pos: *wander},
			Weight: AIWanderWeight,
		})
	}
	return out
}

// ChooseFuzzy - нечеткий выбор. Лучший кандидат с весом >= certainty берется сразу,
// иначе случайный по весу среди тех, кто не дальше band от лучшего.
func ChooseFuzzy(actions []WeightedAction, band, certainty float64, rng *rand.Rand) (domain.AIAction, bool) {
	if len(actions) == 0 {
		return domain.AIAction{}, false
	}

	sorted := make([]WeightedAction, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	best := sorted[0]
	if best.Weight >= certainty {
		return best.Action, true
	}

	var pool []WeightedAction
	total := 0.0
	for _, a := range sorted {
		if best.Weight-a.Weight > band {
			break
		}
		pool = append(pool, a)
		total += a.Weight
	}
	if total <= 0 {
		return best.Action, true
	}

	pick := rng.Float64() * total
	for _, a := range pool {
		pick -= a.Weight
		if pick < 0 {
			return a.Action, true
		}
	}
	return pool[len(pool)-1].Action, true
}

// PickWanderTarget продолжает прошлое блуждание или выбирает видимую свободную клетку
func PickWanderTarget(npc *domain.Entity, m *domain.GameMap, rng *rand.Rand) (domain.Position, bool) {
	if npc.AI != nil && npc.AI.Action.Kind == domain.AIActionWander && npc.AI.Action.Pos != npc.Pos.Pos {
		return npc.AI.Action.Pos, true
	}
	if npc.Eyes == nil || npc.Eyes.Visible == nil {
		return domain.Position{}, false
	}

	var floor []domain.Position
	for _, p := range npc.Eyes.Visible.Positions() {
		if p != npc.Pos.Pos && m.InBounds(p) && !m.Blocked(domain.LayerMovement, p) {
			floor = append(floor, p)
		}
	}
	return utils.RandomChoice(rng, floor)
}
