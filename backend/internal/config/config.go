// Package config loads the playground settings from defaults, an optional
// config file, XRPLAY_* environment variables and command line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/xrplayground/backend/internal/gamepad"
)

const envPrefix = "XRPLAY"

// Input sources.
const (
	InputVirtual = "virtual"
	InputSDL     = "sdl"
)

var (
	ErrInvalidHand  = errors.New("invalid hand assignment")
	ErrInvalidInput = errors.New("invalid input source")
)

type Config struct {
	Addr     string `mapstructure:"addr"`
	FPS      int    `mapstructure:"fps"`
	Input    string `mapstructure:"input"`
	AimHand  string `mapstructure:"aim-hand"`
	TurnHand string `mapstructure:"turn-hand"`
	Tray     bool   `mapstructure:"tray"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:     ":8080",
		FPS:      72,
		Input:    InputVirtual,
		AimHand:  string(gamepad.HandLeft),
		TurnHand: string(gamepad.HandRight),
		Tray:     runtime.GOOS == "windows",
	}
}

func newFlagSet(name string, def Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.String("addr", def.Addr, "debug server listen address")
	fs.Int("fps", def.FPS, "frame loop rate")
	fs.String("input", def.Input, "input source: virtual or sdl")
	fs.String("aim-hand", def.AimHand, "controller that aims teleports")
	fs.String("turn-hand", def.TurnHand, "controller that snap turns")
	fs.Bool("tray", def.Tray, "show the system tray icon")
	fs.Bool("verbose", def.Verbose, "log every controller event")
	return fs
}

// Load parses args (without the program name) and merges every source.
func Load(name string, args []string) (Config, error) {
	def := Default()
	fs := newFlagSet(name, def)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("fps", def.FPS)
	v.SetDefault("input", def.Input)
	v.SetDefault("aim-hand", def.AimHand)
	v.SetDefault("turn-hand", def.TurnHand)
	v.SetDefault("tray", def.Tray)
	v.SetDefault("verbose", def.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted silently.
func (c Config) Validate() error {
	aim, err := gamepad.ParseHand(c.AimHand)
	if err != nil {
		return fmt.Errorf("%w: aim-hand: %v", ErrInvalidHand, err)
	}
	turn, err := gamepad.ParseHand(c.TurnHand)
	if err != nil {
		return fmt.Errorf("%w: turn-hand: %v", ErrInvalidHand, err)
	}
	if aim == turn {
		return fmt.Errorf("%w: aim-hand and turn-hand are both %s", ErrInvalidHand, aim)
	}
	switch c.Input {
	case InputVirtual, InputSDL:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidInput, c.Input)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

// Hands returns the validated aim and turn hands.
func (c Config) Hands() (aim, turn gamepad.Hand) {
	return gamepad.Hand(c.AimHand), gamepad.Hand(c.TurnHand)
}
