package api

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxNameLength ограничение на отображаемое имя
const MaxNameLength = 24

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	switch strings.ToUpper(p.Direction) {
	case "UP", "DOWN", "LEFT", "RIGHT":
		return nil
	case "":
		return errors.New("direction is required")
	}
	return errors.New("direction must be one of UP, DOWN, LEFT, RIGHT")
}

func (p PositionPayload) Validate() error {
	if p.X < 0 || p.Y < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

func (p ConnectPayload) Validate() error {
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return errors.New("name is too long")
	}
	return nil
}

func (p SpawnPayload) Validate() error {
	switch p.Enemy {
	case "slime", "rat", "rat_king":
		return nil
	}
	return errors.New("enemy must be one of slime, rat, rat_king")
}
