package main

import (
	"context"
	"fmt"
	lw "github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/golog"
	"github.com/switchyard/controller/config"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

func main() {
	ctx := context.Background()
	l := lw.New(golog.Wrap(log.New(os.Stderr, "", log.LstdFlags)))

	if err := run(ctx, os.Args[1:], l); err != nil {
		l.LogFatal(ctx, "Controller failed.", lw.Err(err))
	}
}

func run(ctx context.Context, argv []string, l lw.Logger) error {
	l.LogInfo(ctx, "Switchyard: Controller - Starting...")

	args, err := parseArguments(argv)
	if err != nil {
		return err
	}

	dirs := args.Directories
	l.LogInfo(ctx, "Directory enumeration complete.", lw.Datum("directories", dirs))

	if l, err = configureLogging(filepath.Join(dirs.Config, "logging"), dirs.Log, l); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	interfaceCfgs, err := loadInterfaceConfigurations(filepath.Join(dirs.Config, "interfaces"))
	if err != nil {
		return fmt.Errorf("failed to load interface configurations: %w", err)
	}

	if len(args.IssueToken) > 0 {
		return issueTokens(args.IssueToken, interfaceCfgs, dirs.Config)
	}

	gatewayCfgs, err := loadGatewayConfigurations(filepath.Join(dirs.Config, "gateways"))
	if err != nil {
		return fmt.Errorf("failed to load gateway configurations: %w", err)
	}

	l.LogInfo(ctx, "Loaded gateway configurations.", lw.Datum("configCount", len(gatewayCfgs)))

	catalogBus := state.NewEventBus()
	sessions := session.NewMux()
	defer sessions.Stop()

	startedGateways, err := startGateways(ctx, gatewayCfgs, sessions, catalogBus, l)
	defer stopGateways(ctx, startedGateways, l)
	if err != nil {
		return fmt.Errorf("failed to start gateways: %w", err)
	}

	startedInterfaces, err := startInterfaces(interfaceCfgs, sessions, catalogBus, dirs, l)
	defer stopInterfaces(ctx, startedInterfaces, l)
	if err != nil {
		return fmt.Errorf("failed to start interfaces: %w", err)
	}

	l.LogInfo(ctx, "Controller ready.", lw.Datum("sessions", sessions.Names()))

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	l.LogInfo(ctx, "Signal received, shutting down.")

	return nil
}

func stopInterfaces(ctx context.Context, started []StartedInterface, l lw.Logger) {
	for _, intf := range started {
		l.LogInfo(ctx, "Shutting down interface.", lw.Datum("interface", intf.Name))

		if err := intf.Shutdown(); err != nil {
			l.LogError(ctx, "Failed to shutdown interface.", lw.Err(err), lw.Datum("interface", intf.Name))
		}
	}
}

func stopGateways(ctx context.Context, started []StartedGateway, l lw.Logger) {
	for _, gw := range started {
		l.LogInfo(ctx, "Shutting down gateway.", lw.Datum("gateway", gw.Name))

		if err := gw.Gateway.Stop(ctx); err != nil {
			l.LogError(ctx, "Failed to shutdown gateway.", lw.Err(err), lw.Datum("gateway", gw.Name))
		}
	}
}

// issueTokens prints a bearer token for the operator from every HTTP interface using jwt
// authentication.
func issueTokens(operator string, cfgs []config.InterfaceConfig, cfgDir string) error {
	issued := 0

	for _, cfg := range cfgs {
		httpCfg, ok := cfg.Config.(*config.HTTPInterfaceConfig)
		if !ok || httpCfg.Authentication.Type != "jwt" {
			continue
		}

		a, err := jwtAuthenticator(httpCfg.Authentication, cfgDir)
		if err != nil {
			return fmt.Errorf("interface '%s': %w", cfg.Name, err)
		}

		token, err := a.Sign(operator)
		if err != nil {
			return fmt.Errorf("interface '%s': failed to sign token: %w", cfg.Name, err)
		}

		fmt.Printf("%s: %s\n", cfg.Name, token)
		issued++
	}

	if issued == 0 {
		return fmt.Errorf("no http interface uses jwt authentication")
	}

	return nil
}
