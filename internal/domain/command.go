package domain

import "strings"

// CommandKind - Внутренний числовой идентификатор команды клиента
type CommandKind uint8

const (
	CommandUnknown CommandKind = iota
	CommandMove
	CommandHover
	CommandClick
	CommandConnect
	CommandDisconnect
	CommandSpawn
	CommandKeepAlive
)

// Маппинг для конвертации JSON -> Domain
var commandStringToKind = map[string]CommandKind{
	"MOVE":       CommandMove,
	"HOVER":      CommandHover,
	"CLICK":      CommandClick,
	"CONNECT":    CommandConnect,
	"DISCONNECT": CommandDisconnect,
	"SPAWN":      CommandSpawn,
	"KEEP_ALIVE": CommandKeepAlive,
}

// Маппинг для логов Domain -> String
var commandKindToString = map[CommandKind]string{
	CommandMove:       "MOVE",
	CommandHover:      "HOVER",
	CommandClick:      "CLICK",
	CommandConnect:    "CONNECT",
	CommandDisconnect: "DISCONNECT",
	CommandSpawn:      "SPAWN",
	CommandKeepAlive:  "KEEP_ALIVE",
}

// ParseCommand конвертирует строку из JSON в CommandKind
func ParseCommand(s string) CommandKind {
	upper := strings.ToUpper(s)
	if val, ok := commandStringToKind[upper]; ok {
		return val
	}
	return CommandUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (k CommandKind) String() string {
	if val, ok := commandKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// ParseDirection конвертирует клавишу клиента (UP/DOWN/LEFT/RIGHT) в направление
func ParseDirection(s string) Direction {
	if d, ok := directionStringToDir[strings.ToUpper(s)]; ok {
		return d
	}
	return DirectionNone
}

// EnemyKind - вид врага для запроса спавна
type EnemyKind uint8

const (
	EnemyUnknown EnemyKind = iota
	EnemySlime
	EnemyRat
	EnemyRatKing
)

var enemyStringToKind = map[string]EnemyKind{
	"slime":    EnemySlime,
	"rat":      EnemyRat,
	"rat_king": EnemyRatKing,
}

var enemyKindToString = map[EnemyKind]string{
	EnemySlime:   "slime",
	EnemyRat:     "rat",
	EnemyRatKing: "rat_king",
}

// ParseEnemyKind конвертирует ключ конфига в EnemyKind
func ParseEnemyKind(s string) EnemyKind {
	if k, ok := enemyStringToKind[strings.ToLower(s)]; ok {
		return k
	}
	return EnemyUnknown
}

func (k EnemyKind) String() string {
	if s, ok := enemyKindToString[k]; ok {
		return s
	}
	return "unknown"
}

// Command - разобранная команда от сетевого слоя: (actor, command).
// Заполнены только поля, относящиеся к Kind.
type Command struct {
	Actor      UserID
	Kind       CommandKind
	Direction  Direction
	Pos        Position
	Name       string
	Appearance string
	Enemy      EnemyKind
}
