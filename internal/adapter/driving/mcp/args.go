package mcp

import (
	"fmt"

	"github.com/ericfisherdev/repoadmin-mcp/internal/domain/operr"
)

// Argument extraction is strict: a field of the wrong JSON type is an
// INPUT_INVALID validation error, never coerced. A numeric org is rejected,
// not stringified.

func requireString(args map[string]any, key, action string) (string, *operr.Error) {
	value, ok := args[key]
	if !ok {
		return "", operr.NewValidation(key+" is required", operr.Context{Action: action})
	}
	s, ok := value.(string)
	if !ok {
		return "", operr.NewValidation(fmt.Sprintf("%s must be a string", key), operr.Context{Action: action})
	}
	return s, nil
}

func optionalString(args map[string]any, key, action string) (string, *operr.Error) {
	value, ok := args[key]
	if !ok || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", operr.NewValidation(fmt.Sprintf("%s must be a string", key), operr.Context{Action: action})
	}
	return s, nil
}

func optionalBool(args map[string]any, key, action string) (bool, *operr.Error) {
	value, ok := args[key]
	if !ok || value == nil {
		return false, nil
	}
	b, ok := value.(bool)
	if !ok {
		return false, operr.NewValidation(fmt.Sprintf("%s must be a boolean", key), operr.Context{Action: action})
	}
	return b, nil
}

func objectArg(args map[string]any, key, action string) (map[string]any, *operr.Error) {
	value, ok := args[key]
	if !ok {
		return nil, operr.NewValidation(key+" is required", operr.Context{Action: action})
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, operr.NewValidation(fmt.Sprintf("%s must be an object", key), operr.Context{Action: action})
	}
	return m, nil
}
