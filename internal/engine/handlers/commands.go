package handlers

import (
	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// HandleMove - нажатие стрелки
func HandleMove(ctx Context, p api.DirectionPayload) (domain.Command, error) {
	cmd := baseCommand(ctx)
	cmd.Direction = domain.ParseDirection(p.Direction)
	return cmd, nil
}

// HandleHover - мышь над клеткой
func HandleHover(ctx Context, p api.PositionPayload) (domain.Command, error) {
	cmd := baseCommand(ctx)
	cmd.Pos = domain.Position{X: p.X, Y: p.Y}
	return cmd, nil
}

// HandleClick - клик по клетке
func HandleClick(ctx Context, p api.PositionPayload) (domain.Command, error) {
	cmd := baseCommand(ctx)
	cmd.Pos = domain.Position{X: p.X, Y: p.Y}
	return cmd, nil
}

// HandleConnect - вход в игру. Имя и облик необязательны.
func HandleConnect(ctx Context, p api.ConnectPayload) (domain.Command, error) {
	cmd := baseCommand(ctx)
	cmd.Name = p.Name
	cmd.Appearance = p.Appearance
	return cmd, nil
}

// HandleSpawn - запрос на появление врага
func HandleSpawn(ctx Context, p api.SpawnPayload) (domain.Command, error) {
	cmd := baseCommand(ctx)
	cmd.Enemy = domain.ParseEnemyKind(p.Enemy)
	return cmd, nil
}

// HandleBare - команды без данных
func HandleBare(ctx Context) (domain.Command, error) {
	return baseCommand(ctx), nil
}
