package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/alexeagleson/goblin-boys/internal/domain"
	"github.com/alexeagleson/goblin-boys/pkg/api"
)

// TypedHandlerFunc - это "чистый" хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (domain.Command, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (DISCONNECT, KEEP_ALIVE)
type EmptyHandlerFunc func(ctx Context) (domain.Command, error)

// WithPayload берет "чистый" хендлер и превращает его в стандартный HandlerFunc.
// Она берет на себя Unmarshal и Validate.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (domain.Command, error) {
		var payload T

		// 1. Распаковка JSON. Пустой payload допустим для необязательных полей.
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				return domain.Command{}, fmt.Errorf("invalid payload format: %w", err)
			}
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return domain.Command{}, fmt.Errorf("validation failed: %w", err)
			}
		}

		// 3. Вызов чистой логики
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (domain.Command, error) {
		return handler(ctx)
	}
}
