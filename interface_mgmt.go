package main

import (
	"context"
	"fmt"
	"github.com/golang-jwt/jwt"
	gorillamux "github.com/gorilla/mux"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/nest"
	"github.com/switchyard/controller/config"
	"github.com/switchyard/controller/interface/http/auth"
	"github.com/switchyard/controller/interface/http/auth/external"
	authjwt "github.com/switchyard/controller/interface/http/auth/jwt"
	"github.com/switchyard/controller/interface/http/auth/null"
	"github.com/switchyard/controller/interface/http/pprof"
	"github.com/switchyard/controller/interface/http/v1"
	"github.com/switchyard/controller/interface/mqtt"
	"github.com/switchyard/controller/mqttclient"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"
)

type StartedInterface struct {
	Name     string
	Shutdown func() error
}

const DefaultTokenTTL = 24 * time.Hour

func loadInterfaceConfigurations(dir string) ([]config.InterfaceConfig, error) {
	return loadConfigurations(dir, "interface", func(name string) *config.InterfaceConfig {
		return &config.InterfaceConfig{Name: name}
	})
}

func startInterfaces(cfgs []config.InterfaceConfig, sessions session.Mapper, catalogBus state.EventSubscriber, directories Directories, l logwrap.Logger) ([]StartedInterface, error) {
	var started []StartedInterface

	for _, cfg := range cfgs {
		shutdown, err := startInterface(cfg, sessions, catalogBus, directories.Config, l)
		if err != nil {
			return started, fmt.Errorf("failed to start interface '%s': %w", cfg.Name, err)
		}

		started = append(started, StartedInterface{
			Name:     cfg.Name,
			Shutdown: shutdown,
		})
	}

	return started, nil
}

func startInterface(cfg config.InterfaceConfig, sessions session.Mapper, catalogBus state.EventSubscriber, cfgDir string, l logwrap.Logger) (func() error, error) {
	wl := logwrap.New(nest.Wrap(l))
	wl.AddOptionsToLogger(logwrap.Datum("interface", cfg.Name))

	switch intCfg := cfg.Config.(type) {
	case *config.HTTPInterfaceConfig:
		wl.AddOptionsToLogger(logwrap.Source("http"))
		return startHTTPInterface(*intCfg, sessions, catalogBus, cfgDir, wl)
	case *config.MQTTInterfaceConfig:
		wl.AddOptionsToLogger(logwrap.Source("mqtt"))
		return startMQTTInterface(*intCfg, sessions, catalogBus, wl)
	default:
		return nil, fmt.Errorf("unknown interface type loaded: %s", cfg.Type)
	}
}

// authenticationProvider builds the configured provider. Key files are resolved relative
// to the configuration directory.
func authenticationProvider(cfg config.HTTPAuthentication, cfgDir string) (auth.AuthenticationProvider, error) {
	switch cfg.Type {
	case "", "null":
		return null.Authenticator{}, nil
	case "external":
		return external.Authenticator{UserHeader: cfg.UserHeader}, nil
	case "jwt":
		return jwtAuthenticator(cfg, cfgDir)
	default:
		return nil, fmt.Errorf("unknown authentication type: %s", cfg.Type)
	}
}

func jwtAuthenticator(cfg config.HTTPAuthentication, cfgDir string) (authjwt.Authenticator, error) {
	keyFile := cfg.PrivateKeyFile
	if !filepath.IsAbs(keyFile) {
		keyFile = filepath.Join(cfgDir, keyFile)
	}

	pemData, err := os.ReadFile(filepath.Clean(keyFile))
	if err != nil {
		return authjwt.Authenticator{}, fmt.Errorf("failed to read jwt private key: %w", err)
	}

	key, err := jwt.ParseECPrivateKeyFromPEM(pemData)
	if err != nil {
		return authjwt.Authenticator{}, fmt.Errorf("failed to parse jwt private key: %w", err)
	}

	ttl := DefaultTokenTTL
	if len(cfg.TTL) > 0 {
		if ttl, err = time.ParseDuration(cfg.TTL); err != nil {
			return authjwt.Authenticator{}, fmt.Errorf("failed to parse jwt ttl: %w", err)
		}
	}

	return authjwt.Authenticator{
		SystemIdentifier: cfg.SystemIdentifier,
		TTL:              ttl,
		KeyIdentifier:    cfg.KeyIdentifier,
		PrivateKey:       key,
	}, nil
}

func startHTTPInterface(cfg config.HTTPInterfaceConfig, sessions session.Mapper, catalogBus state.EventSubscriber, cfgDir string, l logwrap.Logger) (func() error, error) {
	ap, err := authenticationProvider(cfg.Authentication, cfgDir)
	if err != nil {
		return nil, err
	}

	r := gorillamux.NewRouter()

	if slices.Contains(cfg.EnabledAPIs, "v1") {
		l.LogInfo(context.Background(), "Mounting v1 API endpoint on /api/v1.")

		v1Router := v1.ConstructRouter(sessions, l, ap, catalogBus)
		r.PathPrefix("/api/v1").Handler(http.StripPrefix("/api/v1", v1Router))
	}

	if slices.Contains(cfg.EnabledAPIs, "pprof") {
		l.LogWarn(context.Background(), "Mounting profiling endpoint on /debug/pprof.")
		r.PathPrefix("/debug/pprof").Handler(http.StripPrefix("/debug/pprof", pprof.ConstructRouter(ap)))
	}

	bindAddress := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: bindAddress, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.LogError(context.Background(), "Failed to start http server.", logwrap.Err(err))
		}
	}()

	return func() error {
		return srv.Shutdown(context.Background())
	}, nil
}

const (
	onlineTopic        = "controller/online"
	invokeSubscription = "sessions/+/actions/+/invoke"
)

func startMQTTInterface(cfg config.MQTTInterfaceConfig, sessions session.Mapper, catalogBus state.EventSubscriber, l logwrap.Logger) (func() error, error) {
	i := &mqtt.Interface{
		Sessions:                 sessions,
		EventSubscriber:          catalogBus,
		Logger:                   l,
		PublishCatalogOnConnect:  cfg.PublishCatalogOnConnect,
		PublishIndividualActions: cfg.PublishIndividualActions,
	}

	client := &mqttclient.Client{
		Connection:   cfg.MQTTConnection,
		Subscription: invokeSubscription,
		OnlineTopic:  onlineTopic,
		Retained:     cfg.Retained,
		Logger:       l,
		OnConnect: func(ctx context.Context, publish func(context.Context, string, []byte) error) {
			if err := i.Connected(ctx, publish); err != nil {
				l.LogError(ctx, "Failed to execute connection handler in MQTT interface.", logwrap.Err(err))
			}
		},
		OnMessage:    i.IncomingMessage,
		OnDisconnect: i.Disconnected,
	}

	i.Start()

	if err := client.Start(context.Background()); err != nil {
		i.Stop()
		return nil, err
	}

	return func() error {
		client.Stop()
		i.Stop()
		return nil
	}, nil
}
