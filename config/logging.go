package config

type LoggingConfig struct {
	Name   string `json:"-"`
	Type   string
	Config any
}

var loggingConstructors = map[string]func() any{
	"stdout": func() any { return &StdoutLogging{} },
	"file":   func() any { return &FileLogging{} },
}

func (c *LoggingConfig) UnmarshalJSON(data []byte) error {
	var err error
	c.Type, c.Config, err = decodeTyped("logging", data, loggingConstructors)
	return err
}

// BaseLogging filters what a sink receives. Subsystems match the source a logger was
// nested with, such as "http", "mqtt" or "session".
type BaseLogging struct {
	Level string

	NegateSubsystems bool
	Subsystems       []string
}

type StdoutLogging struct {
	BaseLogging
}

// FileLogging writes to a rotated file in the log directory. Size is in megabytes and
// MaxAge in days; zero leaves the limit to the rotation defaults.
type FileLogging struct {
	BaseLogging

	Filename string
	Size     int
	Count    int
	MaxAge   int
	Compress bool
}
