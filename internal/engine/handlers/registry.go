package handlers

import (
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// Registry - таблица хендлеров по виду команды
type Registry struct {
	handlers map[domain.CommandKind]HandlerFunc
}

// NewRegistry регистрирует хендлеры всех команд клиента
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[domain.CommandKind]HandlerFunc)}
	r.handlers[domain.CommandMove] = WithPayload(HandleMove)
	r.handlers[domain.CommandHover] = WithPayload(HandleHover)
	r.handlers[domain.CommandClick] = WithPayload(HandleClick)
	r.handlers[domain.CommandConnect] = WithPayload(HandleConnect)
	r.handlers[domain.CommandSpawn] = WithPayload(HandleSpawn)
	r.handlers[domain.CommandDisconnect] = WithEmptyPayload(HandleBare)
	r.handlers[domain.CommandKeepAlive] = WithEmptyPayload(HandleBare)
	return r
}

// Decode превращает сообщение клиента в доменную команду
func (r *Registry) Decode(actor domain.UserID, cmd api.ClientCommand) (domain.Command, error) {
	kind := domain.ParseCommand(cmd.Action)
	handler, ok := r.handlers[kind]
	if !ok {
		return domain.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Action)
	}
	cmdOut, err := handler(Context{Actor: actor, Kind: kind}, cmd.Payload)
	if err != nil {
		return domain.Command{}, fmt.Errorf("%s: %w", kind, err)
	}
	return cmdOut, nil
}
