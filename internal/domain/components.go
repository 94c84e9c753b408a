package domain

// --- КОМПОНЕНТЫ ---

// RenderComponent - Визуализация (Клиент)
type RenderComponent struct {
	Texture SpriteTexture `json:"texture"`
}

// HpComponent - Здоровье. Внутреннее значение может уйти в минус,
// это сигнал для стадии смерти.
type HpComponent struct {
	Current int `json:"current" yaml:"current"`
	Max     int `json:"max" yaml:"max"`
}

// CombatStats - атака и защита для формулы урона
type CombatStats struct {
	Attack  int `json:"attack" yaml:"attack"`
	Defense int `json:"defense" yaml:"defense"`
}

// Cooldown ограничивает частоту намерений движения/атаки.
// Время в секундах симуляции.
type Cooldown struct {
	TimeRemaining float64 `json:"timeRemaining"`
	MoveTime      float64 `json:"moveTime"`
	AttackTime    float64 `json:"attackTime"`
}

// EyesComponent - зрение и его последний снимок
type EyesComponent struct {
	Radius  int             `json:"radius"`
	Visible *VisibilityGrid `json:"-"`
}

// AIActionKind - что ИИ решил делать на прошлом шаге
type AIActionKind uint8

const (
	AIActionNone AIActionKind = iota
	AIActionAttack
	AIActionChase
	AIActionWander
)

var aiActionToString = map[AIActionKind]string{
	AIActionNone:   "NONE",
	AIActionAttack: "ATTACK",
	AIActionChase:  "CHASE",
	AIActionWander: "WANDER",
}

func (k AIActionKind) String() string {
	if s, ok := aiActionToString[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// AIAction - выбранное действие. Target для Attack/Chase, Pos для Wander.
type AIAction struct {
	Kind   AIActionKind `json:"kind"`
	Target EntityID     `json:"target,omitempty"`
	Pos    Position     `json:"pos"`
}

// AIComponent - Мозги. Хранит прошлое действие для бонуса непрерывности.
type AIComponent struct {
	Action   AIAction `json:"action"`
	Cooldown float64  `json:"cooldown"`
	// Paths - моб умеет преследовать и бродить
	Paths bool `json:"paths"`
}

// DialogueComponent - реплики NPC
type DialogueComponent struct {
	Lines []string `json:"lines"`
}

// UserComponent - сущность управляется клиентом
type UserComponent struct {
	ID UserID `json:"id"`
}

// EnemyComponent - враждебный моб
type EnemyComponent struct {
	Kind EnemyKind `json:"kind"`
}
