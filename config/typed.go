package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/tidwall/gjson"
)

var (
	ErrMissingType   = errors.New("missing Type")
	ErrUnknownType   = errors.New("unknown Type")
	ErrMissingConfig = errors.New("missing Config stanza")
)

// decodeTyped reads a {"Type": ..., "Config": {...}} document, decoding Config into the
// value constructed for Type. An unknown type is rejected before Config is looked at.
func decodeTyped(kind string, data []byte, constructors map[string]func() any) (string, any, error) {
	if !gjson.ValidBytes(data) {
		return "", nil, fmt.Errorf("%s configuration is not valid json", kind)
	}

	typeResult := gjson.GetBytes(data, "Type")
	if !typeResult.Exists() {
		return "", nil, fmt.Errorf("%s configuration: %w", kind, ErrMissingType)
	}

	t := typeResult.String()

	construct, found := constructors[t]
	if !found {
		return t, nil, fmt.Errorf("%s configuration %q: %w", kind, t, ErrUnknownType)
	}

	configResult := gjson.GetBytes(data, "Config")
	if !configResult.Exists() {
		return t, nil, fmt.Errorf("%s configuration %q: %w", kind, t, ErrMissingConfig)
	}

	cfg := construct()
	if err := json.Unmarshal([]byte(configResult.Raw), cfg); err != nil {
		return t, nil, fmt.Errorf("%s configuration %q: %w", kind, t, err)
	}

	return t, cfg, nil
}
