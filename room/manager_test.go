package room

import (
	"math/rand"
	"testing"
	"time"

	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/words"
)

func newTestManager(seed int64) *Manager {
	rng := rand.New(rand.NewSource(seed))
	engine := game.NewEngine(
		game.NewWordPool(words.Default(), rng),
		game.NewKeyMapGenerator(rng),
		game.NewCodeAllocator(rng),
	)
	return NewManager(engine)
}

func TestManager_CreateAndGetRoom(t *testing.T) {
	manager := newTestManager(1)

	room, err := manager.CreateRoom("host", nil)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	retrieved, exists := manager.GetRoom(room.RoomCode)
	if !exists {
		t.Fatal("GetRoom should find the created room")
	}
	if retrieved != room {
		t.Error("GetRoom should return the same room instance")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 live room, got %d", manager.Count())
	}
}

func TestManager_CodesUniqueAcrossLiveRooms(t *testing.T) {
	manager := newTestManager(2)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		room, err := manager.CreateRoom("host", nil)
		if err != nil {
			t.Fatalf("CreateRoom #%d failed: %v", i, err)
		}
		if _, dup := seen[room.RoomCode]; dup {
			t.Fatalf("Duplicate room code %q", room.RoomCode)
		}
		seen[room.RoomCode] = struct{}{}
	}
}

func TestManager_RemoveRoom(t *testing.T) {
	manager := newTestManager(3)

	room, _ := manager.CreateRoom("host", nil)
	manager.RemoveRoom(room.RoomCode)

	if _, exists := manager.GetRoom(room.RoomCode); exists {
		t.Error("GetRoom should not find a removed room")
	}
}

func TestManager_SweepRemovesIdleRooms(t *testing.T) {
	manager := newTestManager(4)

	stale, _ := manager.CreateRoom("host", nil)
	time.Sleep(30 * time.Millisecond)
	fresh, _ := manager.CreateRoom("host", nil)

	removed := manager.Sweep(10 * time.Millisecond)

	found := false
	for _, code := range removed {
		if code == stale.RoomCode {
			found = true
		}
		if code == fresh.RoomCode {
			t.Errorf("Fresh room %s should survive the sweep", fresh.RoomCode)
		}
	}
	if !found {
		t.Errorf("Expected stale room %s to be swept, removed: %v", stale.RoomCode, removed)
	}
	if _, exists := manager.GetRoom(stale.RoomCode); exists {
		t.Error("Swept room should be gone from the registry")
	}
}
