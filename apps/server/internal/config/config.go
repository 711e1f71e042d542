package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Game    GameConfig    `mapstructure:"game"`
	Pacing  PacingConfig  `mapstructure:"pacing"`
	History HistoryConfig `mapstructure:"history"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release
}

type GameConfig struct {
	MaxSeats int   `mapstructure:"maxSeats"`
	HandSize int   `mapstructure:"handSize"`
	Seed     int64 `mapstructure:"seed"` // 0 = time-based
}

// PacingConfig overrides the staged delays; zero fields keep the
// defaults. Mostly useful for load tests and local debugging.
type PacingConfig struct {
	ShotSuspenseMs   int     `mapstructure:"shotSuspenseMs"`
	DeathRestartMs   int     `mapstructure:"deathRestartMs"`
	SurviveRestartMs int     `mapstructure:"surviveRestartMs"`
	LobbyReturnMs    int     `mapstructure:"lobbyReturnMs"`
	ThinkScale       float64 `mapstructure:"thinkScale"`
}

// HistoryConfig selects the game-history backend. An empty driver
// defers to the HISTORY_* environment variables.
type HistoryConfig struct {
	Driver string `mapstructure:"driver"` // "", none, sqlite, postgres
	DSN    string `mapstructure:"dsn"`
}

// Load reads the YAML config at path, layered under LR_* environment
// overrides. A missing file is fine; defaults cover everything.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("game.maxSeats", 7)
	v.SetDefault("game.handSize", 5)
	v.SetDefault("history.driver", "")
	v.SetDefault("pacing.thinkScale", 1.0)

	v.SetEnvPrefix("LR")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Run on defaults when no config file is present; a file that
		// exists but does not parse is still fatal.
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (p PacingConfig) Durations() (shot, death, survive, lobby time.Duration, scale float64) {
	shot = time.Duration(p.ShotSuspenseMs) * time.Millisecond
	death = time.Duration(p.DeathRestartMs) * time.Millisecond
	survive = time.Duration(p.SurviveRestartMs) * time.Millisecond
	lobby = time.Duration(p.LobbyReturnMs) * time.Millisecond
	scale = p.ThinkScale
	return
}
