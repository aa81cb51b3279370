package main

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dresswithpockets/ashley.ecs/internal/config"
)

func TestScenario(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.StressConfig
		ticks        int
		wantEntities int
		wantRemoved  int
	}{
		{
			name:         "Churn with respawn keeps the population",
			cfg:          config.StressConfig{Entities: 20, RemoveEvery: 2, Respawn: true},
			ticks:        3,
			wantEntities: 20,
			wantRemoved:  30,
		},
		{
			name:         "Churn without respawn halves each tick",
			cfg:          config.StressConfig{Entities: 16, RemoveEvery: 2},
			ticks:        2,
			wantEntities: 4,
			wantRemoved:  12,
		},
		{
			name:         "No removal",
			cfg:          config.StressConfig{Entities: 5},
			ticks:        4,
			wantEntities: 5,
			wantRemoved:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			s, err := newScenario(tt.cfg, zap.New(core))
			if err != nil {
				t.Fatalf("newScenario: %v", err)
			}
			if err := s.run(context.Background(), tt.ticks, time.Second/60); err != nil {
				t.Fatalf("run: %v", err)
			}

			if got := s.engine.Entities().Len(); got != tt.wantEntities {
				t.Errorf("got %d entities, expected %d", got, tt.wantEntities)
			}
			if s.stats.removed != tt.wantRemoved {
				t.Errorf("got %d removals, expected %d", s.stats.removed, tt.wantRemoved)
			}
			if s.stats.added-s.stats.removed != tt.wantEntities {
				t.Errorf("added %d - removed %d does not match %d live entities",
					s.stats.added, s.stats.removed, tt.wantEntities)
			}
			if logs.FilterMessage("stress run finished").Len() != 1 {
				t.Errorf("summary was not logged")
			}
		})
	}
}

func TestScenarioNoRemovalCounts(t *testing.T) {
	s, err := newScenario(config.StressConfig{Entities: 3}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.run(context.Background(), 5, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if got := s.counterTotal(); got != 15 {
		t.Errorf("got counter total %d, expected 15", got)
	}
}

func TestScenarioCancelled(t *testing.T) {
	s, err := newScenario(config.StressConfig{Entities: 3}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.run(ctx, 5, time.Millisecond); err == nil {
		t.Errorf("expected an error from a cancelled context")
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
		want zapcore.Level
	}{
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, zapcore.DebugLevel},
		{"JSON warn", config.LoggingConfig{Level: "warn", Format: "json"}, zapcore.WarnLevel},
		{"Bad level falls back to info", config.LoggingConfig{Level: "loud", Format: "console"}, zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := newLogger(tt.cfg)
			if err != nil {
				t.Fatalf("newLogger: %v", err)
			}
			if !log.Core().Enabled(tt.want) {
				t.Errorf("level %v not enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
				t.Errorf("level %v enabled below %v", tt.want-1, tt.want)
			}
		})
	}
}
