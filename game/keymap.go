package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// KeyMapGenerator 为每个玩家生成一份独立的密钥图。
//
// Each map is an independent random permutation of the fixed multiset
// {GREEN×g, NEUTRAL×n, ASSASSIN×a} over the board positions, so every map
// satisfies the count invariant exactly while the classifications of the two
// players stay uncorrelated. Danger is relative to whichever map is
// authoritative for the active turn.
type KeyMapGenerator struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewKeyMapGenerator returns a generator. Pass a seeded rng for
// deterministic maps in tests; nil uses a time seed.
func NewKeyMapGenerator(rng *rand.Rand) *KeyMapGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &KeyMapGenerator{rng: rng}
}

// Generate produces one key map per player over the given board words.
// Classifications are immutable after this point; only Revealed mutates.
func (g *KeyMapGenerator) Generate(boardWords []string, playerIDs []string, cfg GameConfig) (map[string]*KeyMap, error) {
	size := len(boardWords)
	if size != cfg.BoardSize() {
		return nil, fmt.Errorf("board has %d words, config wants %dx%d: %w",
			size, cfg.GridSize, cfg.GridSize, ErrInvalidGridSize)
	}
	green, neutral, assassin := cfg.Counts()
	if green+neutral+assassin != size || neutral < 0 {
		return nil, fmt.Errorf("counts %d+%d+%d do not sum to %d: %w",
			green, neutral, assassin, size, ErrInvalidGridSize)
	}

	// Fixed multiset of classifications, shuffled per player.
	base := make([]CardType, 0, size)
	for i := 0; i < green; i++ {
		base = append(base, Green)
	}
	for i := 0; i < neutral; i++ {
		base = append(base, Neutral)
	}
	for i := 0; i < assassin; i++ {
		base = append(base, Assassin)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	keyMaps := make(map[string]*KeyMap, len(playerIDs))
	for _, playerID := range playerIDs {
		types := append([]CardType(nil), base...)
		g.rng.Shuffle(len(types), func(i, j int) {
			types[i], types[j] = types[j], types[i]
		})

		cards := make([]Card, size)
		for pos, word := range boardWords {
			cards[pos] = Card{
				Word:     word,
				Type:     types[pos],
				Revealed: false,
				Position: pos,
			}
		}
		keyMaps[playerID] = &KeyMap{PlayerID: playerID, Cards: cards}
	}
	return keyMaps, nil
}
