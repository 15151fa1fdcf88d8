package config

type GatewayConfig struct {
	Name   string `json:"-"`
	Type   string
	Config any
}

var gatewayConstructors = map[string]func() any{
	"mqtt":    func() any { return &MQTTGatewayConfig{} },
	"offline": func() any { return &OfflineGatewayConfig{} },
}

func (c *GatewayConfig) UnmarshalJSON(data []byte) error {
	var err error
	c.Type, c.Config, err = decodeTyped("gateway", data, gatewayConstructors)
	return err
}

// DeviceSelection picks the capability model of a gateway's device. A ModelID of zero
// means the model is taken from the identification the device reports.
type DeviceSelection struct {
	ModelID    int
	LabelStyle string
}

type MQTTGatewayConfig struct {
	MQTTConnection
	DeviceSelection
}

type OfflineGatewayConfig struct {
	DeviceSelection
}
