// room/manager.go
package room

import (
	"sync"
	"time"

	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/logger"
)

// Manager 管理所有活跃房间，按房间码索引。
// Engine operations stay serialized per room; the manager only guards its own
// registry, so calls against different rooms never block each other.
type Manager struct {
	engine *game.Engine
	rooms  map[string]*game.GameRoom
	mutex  sync.RWMutex

	sweepTicker *time.Ticker
	closeChan   chan bool
}

// NewManager creates an empty registry over the given engine.
func NewManager(engine *game.Engine) *Manager {
	return &Manager{
		engine:    engine,
		rooms:     make(map[string]*game.GameRoom),
		closeChan: make(chan bool),
	}
}

// Engine exposes the engine shared by all rooms.
func (m *Manager) Engine() *game.Engine {
	return m.engine
}

// CreateRoom allocates a room whose code is unique among live rooms and
// registers it.
func (m *Manager) CreateRoom(hostID string, cfg *game.GameConfig) (*game.GameRoom, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing := make(map[string]struct{}, len(m.rooms))
	for code := range m.rooms {
		existing[code] = struct{}{}
	}

	room, err := m.engine.CreateRoom(hostID, cfg, existing)
	if err != nil {
		return nil, err
	}
	m.rooms[room.RoomCode] = room
	return room, nil
}

// GetRoom looks a room up by code.
func (m *Manager) GetRoom(code string) (*game.GameRoom, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[code]
	return room, exists
}

// RemoveRoom drops a room from the registry.
func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, code)
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// Sweep removes rooms idle for longer than maxAge and returns their codes.
func (m *Manager) Sweep(maxAge time.Duration) []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	var removed []string
	for code, r := range m.rooms {
		if r.LastActivityTime().Before(cutoff) {
			delete(m.rooms, code)
			removed = append(removed, code)
		}
	}
	return removed
}

// StartSweeper runs Sweep on a fixed interval until Close is called.
func (m *Manager) StartSweeper(interval, maxAge time.Duration) {
	m.sweepTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-m.sweepTicker.C:
				if removed := m.Sweep(maxAge); len(removed) > 0 {
					logger.Log.Infof("Swept %d stale rooms: %v", len(removed), removed)
				}
			case <-m.closeChan:
				m.sweepTicker.Stop()
				return
			}
		}
	}()
}

// Close stops the sweeper loop.
func (m *Manager) Close() {
	close(m.closeChan)
}
