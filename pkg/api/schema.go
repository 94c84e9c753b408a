package api

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed command.schema.json
var commandSchemaSource []byte

const commandSchemaURL = "https://goblin-boys.local/schemas/command.schema.json"

// ErrInvalidPayload - сообщение клиента не прошло проверку схемы
var ErrInvalidPayload = errors.New("invalid client command")

var (
	commandSchemaOnce sync.Once
	commandSchema     *jsonschema.Schema
	commandSchemaErr  error
)

// CommandSchema компилирует встроенную схему один раз
func CommandSchema() (*jsonschema.Schema, error) {
	commandSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(commandSchemaURL, bytes.NewReader(commandSchemaSource)); err != nil {
			commandSchemaErr = fmt.Errorf("add command schema: %w", err)
			return
		}
		commandSchema, commandSchemaErr = c.Compile(commandSchemaURL)
	})
	return commandSchema, commandSchemaErr
}

// DecodeCommand проверяет сырой JSON по схеме и разбирает его в ClientCommand
func DecodeCommand(raw []byte) (ClientCommand, error) {
	schema, err := CommandSchema()
	if err != nil {
		return ClientCommand{}, err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ClientCommand{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := schema.Validate(doc); err != nil {
		return ClientCommand{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var cmd ClientCommand
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return ClientCommand{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return cmd, nil
}
