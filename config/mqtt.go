package config

// MQTTConnection holds the broker settings shared by MQTT gateways and interfaces. Topics
// used by either side live beneath TopicPrefix when it is set.
type MQTTConnection struct {
	Server      string
	TopicPrefix string
	QOS         byte

	// KeepAlive is a duration string such as "30s"; empty keeps the client default.
	KeepAlive string

	Credentials *MQTTCredentials
	TLS         *MQTTTLS
}

type MQTTCredentials struct {
	Username string
	Password string
}

// MQTTTLS paths are read as given. Key and Cert form an optional client certificate.
type MQTTTLS struct {
	CACert                       string
	Cert                         string
	Key                          string
	IgnoreSystemRootCertificates bool
	SkipCertificateVerification  bool
}
