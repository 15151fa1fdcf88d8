package config

type InterfaceConfig struct {
	Name   string `json:"-"`
	Type   string
	Config any
}

var interfaceConstructors = map[string]func() any{
	"http": func() any { return &HTTPInterfaceConfig{} },
	"mqtt": func() any { return &MQTTInterfaceConfig{} },
}

func (c *InterfaceConfig) UnmarshalJSON(data []byte) error {
	var err error
	c.Type, c.Config, err = decodeTyped("interface", data, interfaceConstructors)
	return err
}

type HTTPInterfaceConfig struct {
	Port           int
	EnabledAPIs    []string
	Authentication HTTPAuthentication
}

// HTTPAuthentication selects the authentication provider of an HTTP interface. Type is
// "null" (the default), "external" or "jwt".
type HTTPAuthentication struct {
	Type string

	UserHeader string

	SystemIdentifier string
	KeyIdentifier    string
	PrivateKeyFile   string
	TTL              string
}

type MQTTInterfaceConfig struct {
	MQTTConnection

	Retained bool

	PublishCatalogOnConnect  bool
	PublishIndividualActions bool
}
