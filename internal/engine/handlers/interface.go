package handlers

import (
	"encoding/json"
	"errors"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// ErrUnknownCommand - для действия клиента нет хендлера
var ErrUnknownCommand = errors.New("unknown command")

// Context - кто прислал команду.
// Хендлер только разбирает данные, состояние мира меняет конвейер движка.
type Context struct {
	Actor domain.UserID
	Kind  domain.CommandKind
}

// HandlerFunc - контракт для любой команды (MOVE, HOVER, etc).
// Возвращает готовую доменную команду для очереди движка.
type HandlerFunc func(ctx Context, payload json.RawMessage) (domain.Command, error)

// baseCommand - команда без данных, только актор и вид
func baseCommand(ctx Context) domain.Command {
	return domain.Command{Actor: ctx.Actor, Kind: ctx.Kind}
}
