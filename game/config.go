package game

import "fmt"

type Config struct {
	// Seats
	MaxSeats int
	MinSeats int

	// Cards dealt to each alive player at round start. Dealing truncates
	// silently if the deck runs out before every hand is full.
	HandSize int

	// RNG seed (0 => time-based)
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		MaxSeats: 7,
		MinSeats: 2,
		HandSize: 5,
	}
}

func (c Config) validate() error {
	if c.MaxSeats <= 0 {
		return fmt.Errorf("MaxSeats must be > 0")
	}
	if c.MinSeats < 2 {
		return fmt.Errorf("MinSeats must be >= 2")
	}
	if c.MinSeats > c.MaxSeats {
		return fmt.Errorf("MinSeats must be <= MaxSeats")
	}
	if c.HandSize <= 0 {
		return fmt.Errorf("HandSize must be > 0")
	}
	return nil
}
