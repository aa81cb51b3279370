// Profiling:
// go build ./profile/stress
// ASHLEY_PROFILE_MODE=mem ./stress
// go tool pprof -http=":8000" -nodefraction=0.001 ./stress mem.pprof

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dresswithpockets/ashley.ecs"
	"github.com/dresswithpockets/ashley.ecs/internal/config"
	"github.com/dresswithpockets/ashley.ecs/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("ASHLEY_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tp, shutdown, err := telemetry.Setup(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()
	ashley.Config.SetTracerProvider(tp)

	s, err := newScenario(cfg.Stress, log)
	if err != nil {
		return err
	}

	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	log.Info("stress run starting",
		zap.Int("entities", cfg.Stress.Entities),
		zap.Int("ticks", cfg.Stress.Ticks),
		zap.Duration("tick_rate", cfg.Stress.TickRate),
		zap.String("profile", cfg.Profile.Mode),
	)
	return s.run(ctx, cfg.Stress.Ticks, cfg.Stress.TickRate)
}

func startProfile(cfg config.ProfileConfig) interface{ Stop() } {
	switch cfg.Mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(cfg.Path), profile.NoShutdownHook)
	default:
		return nil
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
