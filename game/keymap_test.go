package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ExClawYay/CodeNames/words"
)

func sampleBoard(t *testing.T, n int, seed int64) []string {
	t.Helper()
	pool := NewWordPool(words.Default(), rand.New(rand.NewSource(seed)))
	board, err := pool.Sample(n)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	return board
}

func TestKeyMapGenerator_ExactCounts(t *testing.T) {
	cfg := DefaultConfig()
	board := sampleBoard(t, cfg.BoardSize(), 1)
	gen := NewKeyMapGenerator(rand.New(rand.NewSource(1)))

	keyMaps, err := gen.Generate(board, []string{"p1", "p2"}, cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(keyMaps) != 2 {
		t.Fatalf("Expected 2 key maps, got %d", len(keyMaps))
	}

	green, neutral, assassin := cfg.Counts()
	for id, km := range keyMaps {
		if got := km.CountGreen(); got != green {
			t.Errorf("%s: %d green cards, want %d", id, got, green)
		}
		if got := km.CountNeutral(); got != neutral {
			t.Errorf("%s: %d neutral cards, want %d", id, got, neutral)
		}
		if got := km.CountAssassin(); got != assassin {
			t.Errorf("%s: %d assassin cards, want %d", id, got, assassin)
		}
		if len(km.Cards) != cfg.BoardSize() {
			t.Errorf("%s: %d cards, want %d", id, len(km.Cards), cfg.BoardSize())
		}
	}
}

func TestKeyMapGenerator_SharedBoardPrivateTypes(t *testing.T) {
	cfg := DefaultConfig()
	board := sampleBoard(t, cfg.BoardSize(), 2)
	gen := NewKeyMapGenerator(rand.New(rand.NewSource(2)))

	keyMaps, err := gen.Generate(board, []string{"p1", "p2"}, cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// The word at each position is identical across maps; every position is
	// covered exactly once, unrevealed.
	for pos := range board {
		a := keyMaps["p1"].Cards[pos]
		b := keyMaps["p2"].Cards[pos]
		if a.Word != board[pos] || b.Word != board[pos] {
			t.Fatalf("Position %d word mismatch: %q / %q / board %q", pos, a.Word, b.Word, board[pos])
		}
		if a.Position != pos || b.Position != pos {
			t.Fatalf("Position field wrong at %d", pos)
		}
		if a.Revealed || b.Revealed {
			t.Fatalf("Cards must start unrevealed at %d", pos)
		}
	}
}

func TestKeyMapGenerator_RejectsWrongBoardSize(t *testing.T) {
	cfg := DefaultConfig()
	board := sampleBoard(t, 24, 3) // one short of 5x5
	gen := NewKeyMapGenerator(rand.New(rand.NewSource(3)))

	_, err := gen.Generate(board, []string{"p1", "p2"}, cfg)
	if !errors.Is(err, ErrInvalidGridSize) {
		t.Fatalf("Expected ErrInvalidGridSize, got %v", err)
	}
}

func TestKeyMapGenerator_RejectsBadCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GreenCount = 20
	cfg.AssassinCount = 10 // 30 > 25 cells
	board := sampleBoard(t, cfg.BoardSize(), 4)
	gen := NewKeyMapGenerator(rand.New(rand.NewSource(4)))

	_, err := gen.Generate(board, []string{"p1", "p2"}, cfg)
	if !errors.Is(err, ErrInvalidGridSize) {
		t.Fatalf("Expected ErrInvalidGridSize, got %v", err)
	}
}

func TestGameConfig_CountsSumToBoard(t *testing.T) {
	for _, grid := range []int{4, 5, 6} {
		cfg := DefaultConfig()
		cfg.GridSize = grid
		cfg.GreenCount = 0
		cfg.AssassinCount = 0

		green, neutral, assassin := cfg.Counts()
		if green+neutral+assassin != cfg.BoardSize() {
			t.Errorf("Grid %d: counts %d+%d+%d != %d", grid, green, neutral, assassin, cfg.BoardSize())
		}
		if green < 1 || assassin < 1 || neutral < 0 {
			t.Errorf("Grid %d: degenerate counts %d/%d/%d", grid, green, neutral, assassin)
		}
	}
}
