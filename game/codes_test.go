package game

import (
	"math/rand"
	"strings"
	"testing"
)

func TestCodeAllocator_Format(t *testing.T) {
	alloc := NewCodeAllocator(rand.New(rand.NewSource(1)))

	code, err := alloc.Allocate(nil)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if len(code) != codeLength {
		t.Fatalf("Expected a %d-char code, got %q", codeLength, code)
	}
	for _, r := range code {
		if !strings.ContainsRune(codeAlphabet, r) {
			t.Fatalf("Code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestCodeAllocator_AvoidsCollisions(t *testing.T) {
	alloc := NewCodeAllocator(rand.New(rand.NewSource(2)))

	existing := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		code, err := alloc.Allocate(existing)
		if err != nil {
			t.Fatalf("Allocate #%d failed: %v", i, err)
		}
		if _, taken := existing[code]; taken {
			t.Fatalf("Allocate returned in-use code %q", code)
		}
		existing[code] = struct{}{}
	}
}

func TestCodeAllocator_Deterministic(t *testing.T) {
	a := NewCodeAllocator(rand.New(rand.NewSource(7)))
	b := NewCodeAllocator(rand.New(rand.NewSource(7)))

	codeA, _ := a.Allocate(nil)
	codeB, _ := b.Allocate(nil)
	if codeA != codeB {
		t.Fatalf("Same seed produced %q and %q", codeA, codeB)
	}
}
