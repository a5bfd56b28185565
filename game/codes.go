package game

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// codeMaxAttempts bounds the collision retry loop so a pathological
	// existing set can never spin the allocator forever.
	codeMaxAttempts = 1000
)

// CodeAllocator hands out short room codes that are unique against the set
// of codes currently in use.
type CodeAllocator struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewCodeAllocator returns an allocator. Pass a seeded rng for deterministic
// codes in tests; nil uses a time seed.
func NewCodeAllocator(rng *rand.Rand) *CodeAllocator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CodeAllocator{rng: rng}
}

// Allocate returns a fresh code not present in existing. It fails with
// ErrCodesExhausted when the code space cannot hold another room, or after
// codeMaxAttempts straight collisions.
func (a *CodeAllocator) Allocate(existing map[string]struct{}) (string, error) {
	capacity := int64(math.Pow(float64(len(codeAlphabet)), float64(codeLength)))
	if int64(len(existing)) >= capacity {
		return "", fmt.Errorf("%d codes in use of %d: %w", len(existing), capacity, ErrCodesExhausted)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	buf := make([]byte, codeLength)
	for attempt := 0; attempt < codeMaxAttempts; attempt++ {
		for i := range buf {
			buf[i] = codeAlphabet[a.rng.Intn(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := existing[code]; !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("no free code after %d attempts: %w", codeMaxAttempts, ErrCodesExhausted)
}
