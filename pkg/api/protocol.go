package api

import (
	"encoding/json"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия (MOVE, HOVER, CLICK, CONNECT, DISCONNECT, SPAWN, KEEP_ALIVE).
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Direction string `json:"direction"` // UP, DOWN, LEFT, RIGHT
}

// PositionPayload используется для действий, нацеленных на клетку карты (HOVER, CLICK).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ConnectPayload используется для CONNECT.
type ConnectPayload struct {
	Name       string `json:"name,omitempty"`
	Appearance string `json:"appearance,omitempty"`
}

// SpawnPayload используется для SPAWN.
type SpawnPayload struct {
	Enemy string `json:"enemy"` // slime, rat, rat_king
}

// --- СЕРВЕР -> КЛИЕНТ ---

// MessageType тип сообщения сервера
type MessageType string

// Адресные сообщения (одному клиенту)
const (
	TypeCentreCamera         MessageType = "centreCamera"
	TypeAddSprite            MessageType = "addSprite"
	TypeEntityPositionChange MessageType = "entityPositionChange"
	TypeRemoveSprite         MessageType = "removeSprite"
	TypeTileHover            MessageType = "tileHover"
	TypeShowDialogue         MessageType = "showDialogue"
	TypePlaySound            MessageType = "playSound"
	TypeShowDamage           MessageType = "showDamage"
	TypeUpdateFullGameMap    MessageType = "updateFullGameMap"
	TypeYouDied              MessageType = "youDied"
)

// Широковещательные сообщения (всем клиентам)
const (
	TypeLog       MessageType = "log"
	TypeDamage    MessageType = "damage"
	TypeDeath     MessageType = "death"
	TypeTileClick MessageType = "tileClick"
	TypeMoveCount MessageType = "moveCount"
	TypeDebug     MessageType = "debug"
)

// ServerMessage это корневой объект, который сервер отправляет клиенту.
// Content сериализуется всегда, null - осмысленное значение (например, пустой tileHover).
type ServerMessage struct {
	Type    MessageType `json:"type"`
	Content any         `json:"content"`
}

// Position DTO клетки
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityRef ссылка на сущность
type EntityRef struct {
	Entity string `json:"entity"`
}

// SpriteUpdate добавление или перемещение спрайта
type SpriteUpdate struct {
	Entity string   `json:"entity"`
	Pos    Position `json:"pos"`
	Sprite string   `json:"sprite"`
}

// EntityData ответ на наведение мыши
type EntityData struct {
	Name            string `json:"name"`
	BlocksLight     bool   `json:"blocksLight"`
	VisibleToPlayer bool   `json:"visibleToPlayer"`
}

// DialogueView реплики NPC
type DialogueView struct {
	Entity   string   `json:"entity"`
	Name     string   `json:"name"`
	Dialogue []string `json:"dialogue"`
}

// DamageView всплывающая цифра урона или лечения
type DamageView struct {
	Entity       string `json:"entity"`
	Damage       int    `json:"damage"`
	IsHealing    bool   `json:"isHealing"`
	TargetIsUser bool   `json:"targetIsUser"`
	TargetIsMe   bool   `json:"targetIsMe"`
	CurrentHp    int    `json:"currentHp"`
	MaxHp        int    `json:"maxHp"`
}

// FullGameMap полный снимок карты для клиента
type FullGameMap struct {
	Camera   Position       `json:"camera"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Floor    string         `json:"floor"`
	Entities []SpriteUpdate `json:"entities"`
}

// DebugData служебная статистика
type DebugData struct {
	NumEnemies int `json:"numEnemies"`
}

// --- Конструкторы ---

func NewMessage(t MessageType, content any) ServerMessage {
	return ServerMessage{Type: t, Content: content}
}

func LogMessage(text string) ServerMessage {
	return NewMessage(TypeLog, text)
}
