package config_test

import (
	"bytes"
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/config"
	"github.com/plus3/tenten/spawn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8, cfg.Board.Width)
	assert.Equal(t, 8, cfg.Board.Height)
	assert.Equal(t, "auto", cfg.Spawn.Mode)
	assert.Equal(t, spawn.DefaultCandidateCap, cfg.Spawn.CandidateCap)
	assert.Equal(t, spawn.DefaultTrialBudget, cfg.Spawn.TrialBudget)
	assert.Equal(t, 0.8, cfg.Spawn.FillThreshold)
	assert.Equal(t, time.Second, cfg.Game.LoseDelay)
	assert.Len(t, cfg.Colors(), len(config.DefaultPalette()))
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join("testdata", "tenten.yaml")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, config.BoardConfig{Width: 10, Height: 10}, cfg.Board)
	assert.Equal(t, config.SpawnConfig{
		Mode:          "advanced",
		Seed:          42,
		CandidateCap:  150,
		TrialBudget:   2000,
		FillThreshold: 0.7,
	}, cfg.Spawn)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.LoseDelay)
	assert.Equal(t, config.LogConfig{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, filepath.Join("testdata", "pack.yaml"), cfg.ShapesFile)

	assert.Equal(t, []board.Color{0, 1, 2}, cfg.Colors())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, cfg.RGBA(0))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, cfg.RGBA(1))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, cfg.RGBA(2))
	assert.Equal(t, color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}, cfg.RGBA(9))

	shapes, err := cfg.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 3)

	opts := cfg.SpawnOptions(shapes, nil)
	assert.Equal(t, spawn.ModeAdvanced, opts.Mode)
	assert.Equal(t, uint64(42), opts.Seed)
	assert.Equal(t, 150, opts.CandidateCap)
	assert.Equal(t, 2000, opts.TrialBudget)
	assert.Equal(t, 0.7, opts.Heuristic.FillThreshold)
	assert.Equal(t, []board.Color{0, 1, 2}, opts.Palette)
	assert.NoError(t, spawn.New(opts).Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TENTEN_SPAWN_MODE", "random")
	t.Setenv("TENTEN_BOARD_WIDTH", "12")
	t.Setenv("TENTEN_GAME_LOSE_DELAY", "250ms")

	cfg, err := config.Load(filepath.Join("testdata", "tenten.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "random", cfg.Spawn.Mode)
	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 10, cfg.Board.Height)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.LoseDelay)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(filepath.Join("testdata", "bad-palette.yaml"))
	assert.ErrorIs(t, err, config.ErrInvalid)

	t.Setenv("TENTEN_SPAWN_MODE", "greedy")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, spawn.ErrUnknownMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero width", func(c *config.Config) { c.Board.Width = 0 }},
		{"negative height", func(c *config.Config) { c.Board.Height = -3 }},
		{"unknown mode", func(c *config.Config) { c.Spawn.Mode = "chaos" }},
		{"negative budget", func(c *config.Config) { c.Spawn.TrialBudget = -1 }},
		{"threshold above one", func(c *config.Config) { c.Spawn.FillThreshold = 1.5 }},
		{"empty palette", func(c *config.Config) { c.Palette = nil }},
		{"bad color", func(c *config.Config) { c.Palette[0].RGB = "#zzzzzz" }},
		{"negative delay", func(c *config.Config) { c.Game.LoseDelay = -time.Second }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *config.Config) { c.Log.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	cfg := config.Default()
	cfg.Palette = nil
	assert.ErrorIs(t, cfg.Validate(), spawn.ErrEmptyPalette)
}

func TestParseRGB(t *testing.T) {
	c, err := config.ParseRGB("#4dd5b0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x4d, G: 0xd5, B: 0xb0, A: 0xff}, c)

	for _, bad := range []string{"", "#fff", "#12345g", "red", "#1234567"} {
		_, err := config.ParseRGB(bad)
		assert.Error(t, err, bad)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := config.LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "cells", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 3, line["cells"])

	buf.Reset()
	logger, err = config.LogConfig{}.Logger(&buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("text line")
	assert.Contains(t, buf.String(), "msg=\"text line\"")
	assert.NotContains(t, buf.String(), "hidden")

	_, err = config.LogConfig{Level: "shouting"}.Logger(&buf)
	assert.Error(t, err)
}

func TestSessionConfig(t *testing.T) {
	cfg := config.Default()
	engine := spawn.New(cfg.SpawnOptions(config.DefaultShapes(), nil))

	sc := cfg.SessionConfig(engine, nil)
	assert.Equal(t, 8, sc.Width)
	assert.Equal(t, time.Second, sc.LoseDelay)
	assert.Same(t, engine, sc.Engine)

	cfg.Game.LoseDelay = 0
	assert.Negative(t, cfg.SessionConfig(engine, nil).LoseDelay, "zero means no delay, not the session default")
}

func TestLoadRelativeShapesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenten.yaml"), []byte("shapes_file: shapes/mine.yaml\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "shapes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes", "mine.yaml"), []byte("shapes:\n  - name: one\n    cells: [[0, 0]]\n"), 0o644))

	cfg, err := config.Load(filepath.Join(dir, "tenten.yaml"))
	require.NoError(t, err)

	shapes, err := cfg.Shapes()
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "one", shapes[0].Name())
}
