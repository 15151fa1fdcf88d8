package config

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestLoggingConfig_UnmarshalJSON(t *testing.T) {
	t.Run("stdout sinks carry only filtering", func(t *testing.T) {
		var lc LoggingConfig
		require.NoError(t, json.Unmarshal([]byte(`{"Type":"stdout","Config":{"Level":"debug","Subsystems":["session"],"NegateSubsystems":true}}`), &lc))

		assert.Equal(t, &StdoutLogging{BaseLogging: BaseLogging{
			Level:            "debug",
			NegateSubsystems: true,
			Subsystems:       []string{"session"},
		}}, lc.Config)
	})

	t.Run("file sinks carry rotation limits", func(t *testing.T) {
		var lc LoggingConfig
		require.NoError(t, json.Unmarshal([]byte(`{
  "Type": "file",
  "Config": {
    "Filename": "controller.log",
    "Size": 1024,
    "Count": 5,
    "MaxAge": 14,
    "Compress": true,
    "Level": "warn",
    "Subsystems": ["http", "mqtt"]
  }
}`), &lc))

		assert.Equal(t, &FileLogging{
			BaseLogging: BaseLogging{Level: "warn", Subsystems: []string{"http", "mqtt"}},
			Filename:    "controller.log",
			Size:        1024,
			Count:       5,
			MaxAge:      14,
			Compress:    true,
		}, lc.Config)
	})
}
