package mqttclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/config"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	DefaultEventDuration = 1 * time.Second
	ConnectRetryInterval = 1 * time.Second
	DisconnectQuiesce    = 1500
)

// Topics maps between the topics the controller reasons about and those on the broker,
// which live beneath an optional prefix.
type Topics string

func (p Topics) Prefix(topic string) string {
	if len(p) == 0 {
		return topic
	}

	return string(p) + "/" + topic
}

func (p Topics) Strip(topic string) string {
	if len(p) == 0 {
		return topic
	}

	return strings.TrimPrefix(topic, string(p)+"/")
}

// ClientID returns a fresh identifier short enough for brokers enforcing the 23 character
// limit of MQTT 3.1.
func ClientID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// Client owns a single broker connection. It subscribes to Subscription every time the
// connection is established, then hands OnConnect a function publishing beneath the
// topic prefix. If OnlineTopic is set a retained "true" is published there on connect,
// with "false" registered as the will.
type Client struct {
	Connection   config.MQTTConnection
	Subscription string
	OnlineTopic  string
	Retained     bool
	Logger       logwrap.Logger

	OnConnect    func(ctx context.Context, publish func(ctx context.Context, topic string, payload []byte) error)
	OnMessage    func(ctx context.Context, topic string, payload []byte) error
	OnDisconnect func()

	clientID string
	client   pahomqtt.Client
	cancel   context.CancelFunc
}

func (c *Client) topics() Topics {
	return Topics(c.Connection.TopicPrefix)
}

func (c *Client) Start(ctx context.Context) error {
	c.clientID = ClientID()
	ctx = c.Logger.AddOptionsToContext(ctx, logwrap.Datum("clientId", c.clientID))
	ctx = c.Logger.AddOptionsToContext(ctx, logwrap.Datum("server", c.Connection.Server))

	opts, err := Options(c.Connection, c.clientID, c.Logger)
	if err != nil {
		return err
	}

	opts.OnConnect = func(client pahomqtt.Client) {
		c.connected(ctx, client)
	}

	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.Logger.LogInfo(ctx, "MQTT client disconnected.", logwrap.Err(err))

		if c.OnDisconnect != nil {
			c.OnDisconnect()
		}
	})

	if len(c.OnlineTopic) > 0 {
		opts.SetWill(c.topics().Prefix(c.OnlineTopic), "false", c.Connection.QOS, true)
	}

	c.Logger.LogInfo(ctx, "Constructing new MQTT client.")
	c.client = pahomqtt.NewClient(opts)

	connectCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go connect(c.Logger.AddOptionsToContext(connectCtx, logwrap.Datum("clientId", c.clientID)), c.client, c.Logger)

	return nil
}

func (c *Client) connected(ctx context.Context, client pahomqtt.Client) {
	ctx, cancel := context.WithTimeout(ctx, DefaultEventDuration)
	defer cancel()

	c.Logger.LogInfo(ctx, "MQTT client successfully connected.")

	if len(c.Subscription) > 0 && c.OnMessage != nil {
		topic := c.topics().Prefix(c.Subscription)

		token := client.Subscribe(topic, c.Connection.QOS, func(_ pahomqtt.Client, message pahomqtt.Message) {
			msgCtx, cancel := context.WithTimeout(context.Background(), DefaultEventDuration)
			defer cancel()

			if err := c.OnMessage(msgCtx, c.topics().Strip(message.Topic()), message.Payload()); err != nil {
				c.Logger.LogWarn(msgCtx, "Failed to handle incoming message.", logwrap.Datum("topic", message.Topic()), logwrap.Err(err))
			}
		})

		if err := AwaitToken(ctx, token); err != nil {
			c.Logger.LogError(ctx, "Failed to subscribe to topic in MQTT.", logwrap.Datum("topic", topic), logwrap.Err(err))
		}
	}

	if len(c.OnlineTopic) > 0 {
		client.Publish(c.topics().Prefix(c.OnlineTopic), c.Connection.QOS, true, "true")
	}

	if c.OnConnect != nil {
		c.OnConnect(ctx, c.publisher(client))
	}
}

func (c *Client) publisher(client pahomqtt.Client) func(ctx context.Context, topic string, payload []byte) error {
	return func(ctx context.Context, topic string, payload []byte) error {
		prefixed := c.topics().Prefix(topic)

		if err := AwaitToken(ctx, client.Publish(prefixed, c.Connection.QOS, c.Retained, payload)); err != nil {
			c.Logger.LogError(ctx, "Failed to publish message to MQTT.", logwrap.Datum("topic", prefixed), logwrap.Err(err))
			return err
		}

		return nil
	}
}

func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}

	if c.client != nil {
		c.client.Disconnect(DisconnectQuiesce)
	}
}

// connect makes the initial connection, retrying until it succeeds or ctx is cancelled.
// Paho reconnects on its own after that.
func connect(ctx context.Context, client pahomqtt.Client, l logwrap.Logger) {
	retry := time.NewTicker(ConnectRetryInterval)
	defer retry.Stop()

	for {
		select {
		case <-retry.C:
			if token := client.Connect(); token.Wait() && token.Error() != nil {
				l.LogError(ctx, "Failed initial connection to MQTT server.", logwrap.Err(token.Error()))
				continue
			}

			l.LogInfo(ctx, "Initial MQTT connection call completed.")
			return
		case <-ctx.Done():
			return
		}
	}
}

// Options builds paho client options for a broker connection, including credentials and
// TLS material.
func Options(cfg config.MQTTConnection, clientID string, l logwrap.Logger) (*pahomqtt.ClientOptions, error) {
	server, err := url.Parse(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("invalid mqtt server %q: %w", cfg.Server, err)
	}

	opts := pahomqtt.NewClientOptions()
	opts.ClientID = clientID
	opts.Servers = []*url.URL{server}

	if len(cfg.KeepAlive) > 0 {
		keepAlive, err := time.ParseDuration(cfg.KeepAlive)
		if err != nil {
			return nil, fmt.Errorf("invalid mqtt keep alive %q: %w", cfg.KeepAlive, err)
		}

		opts.SetKeepAlive(keepAlive)
	}

	if creds := cfg.Credentials; creds != nil {
		opts.SetUsername(creds.Username)
		opts.SetPassword(creds.Password)
	}

	if cfg.TLS != nil {
		tc, err := tlsConfig(*cfg.TLS, l)
		if err != nil {
			return nil, err
		}

		opts.SetTLSConfig(tc)
	}

	return opts, nil
}

func tlsConfig(cfg config.MQTTTLS, l logwrap.Logger) (*tls.Config, error) {
	ctx := context.Background()

	if cfg.SkipCertificateVerification {
		l.LogWarn(ctx, "Set to ignore remote TLS certificate, this is considered insecure.")
	}

	roots, err := rootCAs(cfg, l)
	if err != nil {
		return nil, err
	}

	tc := &tls.Config{InsecureSkipVerify: cfg.SkipCertificateVerification, RootCAs: roots}

	if len(cfg.Cert) > 0 {
		cert, err := tls.LoadX509KeyPair(cfg.Cert, cfg.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to load mqtt client certificate: %w", err)
		}

		tc.Certificates = []tls.Certificate{cert}
	}

	return tc, nil
}

var ErrNoCACertificates = errors.New("no certificates found in CA file")

func rootCAs(cfg config.MQTTTLS, l logwrap.Logger) (*x509.CertPool, error) {
	var pool *x509.CertPool

	if cfg.IgnoreSystemRootCertificates {
		l.LogInfo(context.Background(), "Configured to ignore system root certificates, ensure you are providing your own.")
		pool = x509.NewCertPool()
	} else if system, err := x509.SystemCertPool(); err == nil {
		pool = system
	} else if runtime.GOOS == "windows" {
		l.LogWarn(context.Background(), "Failed to load system certificate pool, the CA certificate of the broker must be provided.", logwrap.Err(err))
		pool = x509.NewCertPool()
	} else {
		return nil, fmt.Errorf("failed to load system certificate pool, set IgnoreSystemRootCertificates and provide CACert: %w", err)
	}

	if len(cfg.CACert) == 0 {
		return pool, nil
	}

	pem, err := os.ReadFile(filepath.Clean(cfg.CACert))
	if err != nil {
		return nil, fmt.Errorf("failed to load mqtt CA certificate: %w", err)
	}

	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%s: %w", cfg.CACert, ErrNoCACertificates)
	}

	return pool, nil
}

func AwaitToken(ctx context.Context, token pahomqtt.Token) error {
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}
