package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/ExClawYay/CodeNames/words"
)

func TestWordPool_SampleDistinct(t *testing.T) {
	pool := NewWordPool(words.Default(), rand.New(rand.NewSource(1)))

	sample, err := pool.Sample(25)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if len(sample) != 25 {
		t.Fatalf("Expected 25 words, got %d", len(sample))
	}

	seen := make(map[string]struct{}, len(sample))
	for _, w := range sample {
		if _, dup := seen[w]; dup {
			t.Fatalf("Duplicate word %q in sample", w)
		}
		seen[w] = struct{}{}
	}
}

func TestWordPool_InsufficientWords(t *testing.T) {
	pool := NewWordPool([]string{"ONE", "TWO"}, rand.New(rand.NewSource(2)))

	_, err := pool.Sample(3)
	if !errors.Is(err, ErrInsufficientWords) {
		t.Fatalf("Expected ErrInsufficientWords, got %v", err)
	}
}

func TestWordPool_CorpusNotMutated(t *testing.T) {
	corpus := []string{"ALPHA", "BETA", "GAMMA", "DELTA", "EPSILON"}
	pool := NewWordPool(corpus, rand.New(rand.NewSource(3)))

	for i := 0; i < 10; i++ {
		if _, err := pool.Sample(5); err != nil {
			t.Fatalf("Sample failed: %v", err)
		}
	}

	want := []string{"ALPHA", "BETA", "GAMMA", "DELTA", "EPSILON"}
	for i, w := range want {
		if corpus[i] != w {
			t.Fatalf("Corpus mutated at %d: %q", i, corpus[i])
		}
	}
}

func TestWordPool_Deduplicates(t *testing.T) {
	pool := NewWordPool([]string{"ECHO", "ECHO", "FOXTROT"}, rand.New(rand.NewSource(4)))
	if pool.Size() != 2 {
		t.Fatalf("Expected 2 distinct words, got %d", pool.Size())
	}
}

func TestWordPool_DeterministicWithSeed(t *testing.T) {
	a := NewWordPool(words.Default(), rand.New(rand.NewSource(42)))
	b := NewWordPool(words.Default(), rand.New(rand.NewSource(42)))

	sampleA, _ := a.Sample(25)
	sampleB, _ := b.Sample(25)
	for i := range sampleA {
		if sampleA[i] != sampleB[i] {
			t.Fatalf("Same seed diverged at %d: %q vs %q", i, sampleA[i], sampleB[i])
		}
	}
}
