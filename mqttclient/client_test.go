package mqttclient

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchyard/controller/config"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTopics(t *testing.T) {
	t.Run("prefixes topics when a prefix is configured", func(t *testing.T) {
		assert.Equal(t, "mixer/state/input", Topics("mixer").Prefix("state/input"))
		assert.Equal(t, "state/input", Topics("").Prefix("state/input"))
	})

	t.Run("strips only its own prefix", func(t *testing.T) {
		assert.Equal(t, "state/input", Topics("mixer").Strip("mixer/state/input"))
		assert.Equal(t, "other/state/input", Topics("mixer").Strip("other/state/input"))
		assert.Equal(t, "mixerstate/input", Topics("mixer").Strip("mixerstate/input"))
		assert.Equal(t, "state/input", Topics("").Strip("state/input"))
	})
}

func TestClientID(t *testing.T) {
	t.Run("generates distinct identifiers within the MQTT 3.1 limit", func(t *testing.T) {
		a, b := ClientID(), ClientID()

		assert.Len(t, a, 16)
		assert.NotEqual(t, a, b)
	})
}

func TestOptions(t *testing.T) {
	l := logwrap.New(discard.Discard())

	t.Run("configures server and credentials", func(t *testing.T) {
		cfg := config.MQTTConnection{Server: "tcp://broker:1883", Credentials: &config.MQTTCredentials{Username: "user", Password: "pass"}}

		opts, err := Options(cfg, "abc", l)
		require.NoError(t, err)

		assert.Equal(t, "abc", opts.ClientID)
		assert.Equal(t, "broker:1883", opts.Servers[0].Host)
		assert.Equal(t, "user", opts.Username)
		assert.Nil(t, opts.TLSConfig)
	})

	t.Run("rejects an unparsable server", func(t *testing.T) {
		_, err := Options(config.MQTTConnection{Server: "tcp://broker:port"}, "abc", l)
		assert.Error(t, err)
	})

	t.Run("parses the keep alive interval", func(t *testing.T) {
		opts, err := Options(config.MQTTConnection{Server: "tcp://broker:1883", KeepAlive: "45s"}, "abc", l)
		require.NoError(t, err)
		assert.Equal(t, int64(45), opts.KeepAlive)

		_, err = Options(config.MQTTConnection{Server: "tcp://broker:1883", KeepAlive: "often"}, "abc", l)
		assert.Error(t, err)
	})

	t.Run("fails when certificate files are missing", func(t *testing.T) {
		cfg := config.MQTTConnection{Server: "ssl://broker:8883", TLS: &config.MQTTTLS{IgnoreSystemRootCertificates: true, Cert: "missing.pem", Key: "missing.key"}}

		_, err := Options(cfg, "abc", l)
		assert.Error(t, err)
	})

	t.Run("rejects a CA file without certificates", func(t *testing.T) {
		caFile := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(caFile, []byte("not a certificate"), 0600))

		cfg := config.MQTTConnection{Server: "ssl://broker:8883", TLS: &config.MQTTTLS{IgnoreSystemRootCertificates: true, CACert: caFile}}

		_, err := Options(cfg, "abc", l)
		assert.ErrorIs(t, err, ErrNoCACertificates)
	})

	t.Run("honours skipping verification", func(t *testing.T) {
		cfg := config.MQTTConnection{Server: "ssl://broker:8883", TLS: &config.MQTTTLS{IgnoreSystemRootCertificates: true, SkipCertificateVerification: true}}

		opts, err := Options(cfg, "abc", l)
		require.NoError(t, err)

		assert.True(t, opts.TLSConfig.InsecureSkipVerify)
		assert.NotNil(t, opts.TLSConfig.RootCAs)
	})
}

func TestClient_Stop(t *testing.T) {
	t.Run("is safe before the client has started", func(t *testing.T) {
		c := &Client{Logger: logwrap.New(discard.Discard())}
		assert.NotPanics(t, c.Stop)
	})
}

func TestAwaitToken(t *testing.T) {
	t.Run("gives up when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.ErrorIs(t, AwaitToken(ctx, pendingToken{}), context.Canceled)
	})
}

type pendingToken struct{}

func (pendingToken) Wait() bool                     { return false }
func (pendingToken) WaitTimeout(time.Duration) bool { return false }
func (pendingToken) Done() <-chan struct{}          { return nil }
func (pendingToken) Error() error                   { return nil }
