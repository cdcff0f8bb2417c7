// Package config loads tenten settings from YAML files and TENTEN_*
// environment variables, and reads shape packs.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/plus3/tenten/board"
	"github.com/plus3/tenten/game"
	"github.com/plus3/tenten/spawn"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TENTEN_SPAWN_MODE.
const EnvPrefix = "TENTEN"

// ErrInvalid wraps every validation failure reported by Load and Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the full tenten configuration as read from YAML and TENTEN_*
// environment overrides.
type Config struct {
	Board      BoardConfig    `mapstructure:"board"`
	Spawn      SpawnConfig    `mapstructure:"spawn"`
	Palette    []PaletteColor `mapstructure:"palette"`
	ShapesFile string         `mapstructure:"shapes_file"`
	Game       GameConfig     `mapstructure:"game"`
	Log        LogConfig      `mapstructure:"log"`
}

// BoardConfig sizes the grid in cells.
type BoardConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// SpawnConfig selects and tunes the spawn strategy.
type SpawnConfig struct {
	Mode          string  `mapstructure:"mode"`
	Seed          uint64  `mapstructure:"seed"`
	CandidateCap  int     `mapstructure:"candidate_cap"`
	TrialBudget   int     `mapstructure:"trial_budget"`
	FillThreshold float64 `mapstructure:"fill_threshold"`
}

// GameConfig holds session timing.
type GameConfig struct {
	LoseDelay time.Duration `mapstructure:"lose_delay"`
}

// LogConfig selects the slog level and handler format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PaletteColor names a piece color. RGB is a hex triplet such as "#5ab4f0".
type PaletteColor struct {
	Name string `mapstructure:"name"`
	RGB  string `mapstructure:"rgb"`
}

// DefaultPalette is the classic set of piece colors.
func DefaultPalette() []PaletteColor {
	return []PaletteColor{
		{Name: "teal", RGB: "#4dd5b0"},
		{Name: "blue", RGB: "#5ab4f0"},
		{Name: "indigo", RGB: "#7985c8"},
		{Name: "green", RGB: "#98dc55"},
		{Name: "yellow", RGB: "#fec63d"},
		{Name: "orange", RGB: "#fc9845"},
		{Name: "red", RGB: "#ea6a5c"},
		{Name: "pink", RGB: "#e56b90"},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board.width", board.DefaultWidth)
	v.SetDefault("board.height", board.DefaultHeight)
	v.SetDefault("spawn.mode", spawn.ModeAuto.String())
	v.SetDefault("spawn.seed", 0)
	v.SetDefault("spawn.candidate_cap", spawn.DefaultCandidateCap)
	v.SetDefault("spawn.trial_budget", spawn.DefaultTrialBudget)
	v.SetDefault("spawn.fill_threshold", spawn.DefaultFillThreshold)
	v.SetDefault("shapes_file", "")
	v.SetDefault("game.lose_delay", game.DefaultLoseDelay)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Board: BoardConfig{Width: board.DefaultWidth, Height: board.DefaultHeight},
		Spawn: SpawnConfig{
			Mode:          spawn.ModeAuto.String(),
			CandidateCap:  spawn.DefaultCandidateCap,
			TrialBudget:   spawn.DefaultTrialBudget,
			FillThreshold: spawn.DefaultFillThreshold,
		},
		Palette: DefaultPalette(),
		Game:    GameConfig{LoseDelay: game.DefaultLoseDelay},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result. An empty path loads defaults and environment only.
// A relative shapes_file is resolved against the config file's directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if len(cfg.Palette) == 0 {
		cfg.Palette = DefaultPalette()
	}
	if path != "" && cfg.ShapesFile != "" && !filepath.IsAbs(cfg.ShapesFile) {
		cfg.ShapesFile = filepath.Join(filepath.Dir(path), cfg.ShapesFile)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if _, err := spawn.ParseMode(c.Spawn.Mode); err != nil {
		return fmt.Errorf("%w: spawn.mode: %w", ErrInvalid, err)
	}
	if c.Spawn.CandidateCap < 0 || c.Spawn.TrialBudget < 0 {
		return fmt.Errorf("%w: spawn budgets must not be negative", ErrInvalid)
	}
	if c.Spawn.FillThreshold < 0 || c.Spawn.FillThreshold > 1 {
		return fmt.Errorf("%w: spawn.fill_threshold %v outside [0,1]", ErrInvalid, c.Spawn.FillThreshold)
	}
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, spawn.ErrEmptyPalette)
	}
	if len(c.Palette) > board.MaxColors {
		return fmt.Errorf("%w: palette has %d colors, at most %d allowed", ErrInvalid, len(c.Palette), board.MaxColors)
	}
	for i, p := range c.Palette {
		if _, err := ParseRGB(p.RGB); err != nil {
			return fmt.Errorf("%w: palette[%d] %q: %w", ErrInvalid, i, p.Name, err)
		}
	}
	if c.Game.LoseDelay < 0 {
		return fmt.Errorf("%w: game.lose_delay must not be negative", ErrInvalid)
	}
	if _, err := c.Log.level(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// Colors returns the palette as color tags 0..n-1.
func (c *Config) Colors() []board.Color {
	colors := make([]board.Color, len(c.Palette))
	for i := range colors {
		colors[i] = board.Color(i)
	}
	return colors
}

var unknownColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}

// RGBA returns the display color of a tag. Unknown tags render grey.
func (c *Config) RGBA(tag board.Color) color.RGBA {
	if int(tag) >= len(c.Palette) {
		return unknownColor
	}
	rgba, err := ParseRGB(c.Palette[tag].RGB)
	if err != nil {
		return unknownColor
	}
	return rgba
}

// Shapes loads the configured shape pack, or the built-in one.
func (c *Config) Shapes() ([]*board.Shape, error) {
	return LoadShapes(c.ShapesFile)
}

// SpawnOptions builds engine options for the given pool.
func (c *Config) SpawnOptions(shapes []*board.Shape, logger *slog.Logger) spawn.Options {
	mode, _ := spawn.ParseMode(c.Spawn.Mode)
	return spawn.Options{
		Shapes:       shapes,
		Palette:      c.Colors(),
		Mode:         mode,
		Heuristic:    spawn.Heuristic{FillThreshold: c.Spawn.FillThreshold},
		Seed:         c.Spawn.Seed,
		CandidateCap: c.Spawn.CandidateCap,
		TrialBudget:  c.Spawn.TrialBudget,
		Logger:       logger,
	}
}

// SessionConfig builds a session configuration around engine.
func (c *Config) SessionConfig(engine *spawn.Engine, logger *slog.Logger) game.Config {
	delay := c.Game.LoseDelay
	if delay == 0 {
		delay = -1
	}
	return game.Config{
		Width:     c.Board.Width,
		Height:    c.Board.Height,
		Engine:    engine,
		LoseDelay: delay,
		Logger:    logger,
	}
}

func (l LogConfig) level() (slog.Level, error) {
	var level slog.Level
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(l.Level))
	return level, err
}

// Logger builds a logger writing to w in the configured format.
func (l LogConfig) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, fmt.Errorf("config: log.level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(l.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// ParseRGB parses "#rrggbb" or "rrggbb".
func ParseRGB(s string) (color.RGBA, error) {
	rgb, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || len(rgb) != 3 {
		return color.RGBA{}, fmt.Errorf("config: color %q is not #rrggbb", s)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}, nil
}
