package action

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

func TestOptions_Int(t *testing.T) {
	t.Run("accepts integers, integral floats and numeric strings", func(t *testing.T) {
		opts := Options{"a": 4, "b": float64(5), "c": " 6 ", "d": json.Number("7"), "e": int64(8)}

		for key, expected := range map[string]int{"a": 4, "b": 5, "c": 6, "d": 7, "e": 8} {
			v, err := opts.Int(key)
			assert.NoError(t, err)
			assert.Equal(t, expected, v)
		}
	})

	t.Run("treats numbers alike whichever way the transport decoded them", func(t *testing.T) {
		for _, opts := range []Options{{"n": 1.0}, {"n": json.Number("1.0")}, {"n": json.Number("1e0")}} {
			v, err := opts.Int("n")
			assert.NoError(t, err)
			assert.Equal(t, 1, v)
		}

		for _, opts := range []Options{{"n": 1.5}, {"n": json.Number("1.5")}} {
			_, err := opts.Int("n")
			assert.ErrorIs(t, err, ErrOptionParse)
		}
	})

	t.Run("rejects numbers outside the integer range", func(t *testing.T) {
		opts := Options{"a": 1e300, "b": -1e300, "c": json.Number("1e300"), "d": float64(math.MaxInt), "e": math.NaN()}

		for _, key := range []string{"a", "b", "c", "d", "e"} {
			_, err := opts.Int(key)
			assert.ErrorIs(t, err, ErrOptionParse, key)
		}
	})

	t.Run("rejects missing, fractional and non-numeric values", func(t *testing.T) {
		opts := Options{"b": 1.5, "c": "four", "d": true, "e": nil}

		for _, key := range []string{"a", "b", "c", "d", "e"} {
			_, err := opts.Int(key)
			assert.ErrorIs(t, err, ErrOptionParse, key)
		}
	})
}

func TestOptions_Bool(t *testing.T) {
	t.Run("coerces booleans, numbers and boolean strings", func(t *testing.T) {
		opts := Options{"a": true, "b": 1, "c": float64(0), "d": "true", "e": "0"}

		for key, expected := range map[string]bool{"a": true, "b": true, "c": false, "d": true, "e": false, "missing": false} {
			v, err := opts.Bool(key)
			assert.NoError(t, err)
			assert.Equal(t, expected, v, key)
		}
	})

	t.Run("rejects strings that are not booleans", func(t *testing.T) {
		_, err := Options{"a": "yes please"}.Bool("a")

		assert.ErrorIs(t, err, ErrOptionParse)
	})
}

func TestParseID(t *testing.T) {
	t.Run("round trips every identifier through its name", func(t *testing.T) {
		for _, id := range IDs() {
			parsed, err := ParseID(id.String())
			assert.NoError(t, err)
			assert.Equal(t, id, parsed)
		}
	})

	t.Run("unknown names are an internal consistency failure", func(t *testing.T) {
		_, err := ParseID("fadeToBlack")

		assert.ErrorIs(t, err, ErrInternalConsistency)
	})
}
