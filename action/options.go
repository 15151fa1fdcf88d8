package action

import (
	"encoding/json"
	"fmt"
	"github.com/switchyard/controller/picker"
	"math"
	"strconv"
	"strings"
)

// Options are the raw option values supplied by the host, keyed by option id.
type Options map[string]any

func (o Options) has(key string) bool {
	v, found := o[key]
	return found && v != nil
}

// Int parses an option as a base-10 integer. Strings are trimmed before parsing; numbers
// must be integral.
func (o Options) Int(key string) (int, error) {
	v, found := o[key]
	if !found || v == nil {
		return 0, fmt.Errorf("%w: %s: missing", ErrOptionParse, key)
	}

	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		return integral(key, n)
	case json.Number:
		if i, err := strconv.Atoi(n.String()); err == nil {
			return i, nil
		}

		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not a number", ErrOptionParse, key, n.String())
		}
		return integral(key, f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrOptionParse, key, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("%w: %s: unsupported type %T", ErrOptionParse, key, v)
	}
}

// integral accepts floats holding a whole number that fits in an int.
func integral(key string, f float64) (int, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s: %v is not an integer", ErrOptionParse, key, f)
	}

	if f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%w: %s: %v is out of range", ErrOptionParse, key, f)
	}

	return int(f), nil
}

// Bool coerces an option to a boolean. Missing options are false, numbers are true when
// non-zero and strings must be a recognised boolean.
func (o Options) Bool(key string) (bool, error) {
	v, found := o[key]
	if !found || v == nil {
		return false, nil
	}

	switch b := v.(type) {
	case bool:
		return b, nil
	case int:
		return b != 0, nil
	case float64:
		return b != 0, nil
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return false, fmt.Errorf("%w: %s: %v", ErrOptionParse, key, err)
		}
		return f != 0, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("%w: %s: %q is not a boolean", ErrOptionParse, key, b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("%w: %s: unsupported type %T", ErrOptionParse, key, v)
	}
}

// String returns a string option, formatting booleans and numbers as the host would.
func (o Options) String(key string) (string, error) {
	v, found := o[key]
	if !found || v == nil {
		return "", fmt.Errorf("%w: %s: missing", ErrOptionParse, key)
	}

	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", fmt.Errorf("%w: %s: unsupported type %T", ErrOptionParse, key, v)
	}
}

type onAirMode int

const (
	onAirOn onAirMode = iota
	onAirOff
	onAirToggle
)

// onAir reads the on-air mode. Anything other than on, off or toggle is rejected.
func (o Options) onAir() (onAirMode, error) {
	s, err := o.String(picker.OptOnAir)
	if err != nil {
		return 0, err
	}

	switch s {
	case picker.OnAirTrue:
		return onAirOn, nil
	case picker.OnAirFalse:
		return onAirOff, nil
	case picker.OnAirToggle:
		return onAirToggle, nil
	default:
		return 0, fmt.Errorf("%w: %s: %q is not one of true, false or toggle", ErrOptionParse, picker.OptOnAir, s)
	}
}

func (m onAirMode) resolve(current bool) bool {
	switch m {
	case onAirToggle:
		return !current
	case onAirOff:
		return false
	default:
		return true
	}
}
