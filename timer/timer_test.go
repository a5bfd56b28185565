package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_FiresAfterDelay(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var fired atomic.Int32
	manager.AddTimer(50*time.Millisecond, 0, func() {
		fired.Add(1)
	})

	time.Sleep(300 * time.Millisecond)
	if fired.Load() != 1 {
		t.Fatalf("Expected exactly one fire, got %d", fired.Load())
	}
}

func TestManager_RemoveCancelsPendingTask(t *testing.T) {
	manager := NewManager()
	defer manager.Stop()

	var fired atomic.Int32
	id := manager.AddTimer(150*time.Millisecond, 0, func() {
		fired.Add(1)
	})
	manager.RemoveTimer(id)

	time.Sleep(400 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatalf("Cancelled timer fired %d times", fired.Load())
	}
}
