package game

import "fmt"

// GameConfig is fixed at room creation and never changes afterwards.
// GreenCount/AssassinCount are per key map; the neutral count is derived so
// the three always sum to GridSize².
type GameConfig struct {
	GridSize      int `json:"grid_size"`
	TimerSeconds  int `json:"timer_seconds"`
	MaxErrors     int `json:"max_errors"`
	MaxTurns      int `json:"max_turns"`
	WordPoolSize  int `json:"word_pool_size"`
	GreenCount    int `json:"green_count"`
	AssassinCount int `json:"assassin_count"`
}

// DefaultConfig mirrors the classic 5x5 setup: 30s per phase, 3 errors,
// 9 turns, 9 green and 3 assassin cards per key map.
func DefaultConfig() GameConfig {
	return GameConfig{
		GridSize:      5,
		TimerSeconds:  30,
		MaxErrors:     3,
		MaxTurns:      9,
		WordPoolSize:  100,
		GreenCount:    9,
		AssassinCount: 3,
	}
}

// BoardSize returns the number of cells on the board.
func (c GameConfig) BoardSize() int {
	return c.GridSize * c.GridSize
}

// Counts returns the per-key-map card distribution. Zero-valued green and
// assassin counts are scaled from the 5x5 defaults so non-default grids
// still produce a playable board.
func (c GameConfig) Counts() (green, neutral, assassin int) {
	size := c.BoardSize()
	green = c.GreenCount
	if green == 0 {
		green = size * 9 / 25
	}
	assassin = c.AssassinCount
	if assassin == 0 {
		assassin = size * 3 / 25
		if assassin == 0 {
			assassin = 1
		}
	}
	neutral = size - green - assassin
	return green, neutral, assassin
}

// Validate rejects configs that cannot produce a legal game.
func (c GameConfig) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid size %d: %w", c.GridSize, ErrInvalidGridSize)
	}
	if c.TimerSeconds < 1 || c.MaxErrors < 1 || c.MaxTurns < 1 {
		return fmt.Errorf("timer/errors/turns must be positive: %w", ErrInvalidGridSize)
	}
	green, neutral, assassin := c.Counts()
	if green < 1 || assassin < 1 || neutral < 0 {
		return fmt.Errorf("card counts %d/%d/%d do not fit a %dx%d board: %w",
			green, neutral, assassin, c.GridSize, c.GridSize, ErrInvalidGridSize)
	}
	if c.WordPoolSize < c.BoardSize() {
		return fmt.Errorf("word pool %d smaller than board %d: %w",
			c.WordPoolSize, c.BoardSize(), ErrInsufficientWords)
	}
	return nil
}
