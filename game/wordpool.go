package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// WordPool holds the candidate word corpus and hands out random distinct
// samples for new boards. The corpus itself is never mutated.
type WordPool struct {
	corpus []string
	rng    *rand.Rand
	mu     sync.Mutex
}

// NewWordPool builds a pool over a copy of corpus, deduplicated. Pass a
// seeded rng for deterministic sampling in tests; nil uses a time seed.
func NewWordPool(corpus []string, rng *rand.Rand) *WordPool {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	seen := make(map[string]struct{}, len(corpus))
	words := make([]string, 0, len(corpus))
	for _, w := range corpus {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return &WordPool{corpus: words, rng: rng}
}

// Size returns the number of distinct words in the corpus.
func (p *WordPool) Size() int {
	return len(p.corpus)
}

// Sample returns n distinct words drawn uniformly at random.
func (p *WordPool) Sample(n int) ([]string, error) {
	if n < 0 || n > len(p.corpus) {
		return nil, fmt.Errorf("sample %d from corpus of %d: %w", n, len(p.corpus), ErrInsufficientWords)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	shuffled := append([]string(nil), p.corpus...)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n], nil
}
