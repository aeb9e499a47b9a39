package engine

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/apex/log"

	"chess-rules/rules"
)

// Config controls how sessions are created.
type Config struct {
	// StrictCastling forbids castling out of check or across an attacked square.
	StrictCastling bool `toml:"strict_castling"`
	// StrictKingSafety rejects king moves that would be attacked once the king
	// stands on the destination, and counts both pawn diagonals as attacked.
	StrictKingSafety bool `toml:"strict_king_safety"`
	// LogLevel is one of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// StartFEN replaces the standard starting position when set.
	StartFEN string `toml:"start_fen"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

// LoadConfig reads a TOML config file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the log level and the start position.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.StartFEN != "" {
		if _, err := rules.ParseFEN(c.StartFEN); err != nil {
			return fmt.Errorf("%w: start_fen: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func (c Config) gameOptions() []rules.Option {
	var opts []rules.Option
	if c.StrictCastling {
		opts = append(opts, rules.WithStrictCastling())
	}
	if c.StrictKingSafety {
		opts = append(opts, rules.WithStrictKingSafety())
	}
	return opts
}

// newGame builds the game a session starts from.
func (c Config) newGame() (*rules.Game, error) {
	if c.StartFEN == "" {
		return rules.NewGame(c.gameOptions()...), nil
	}
	return rules.ParseFEN(c.StartFEN, c.gameOptions()...)
}
