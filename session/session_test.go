package session

import (
	"net"
	"testing"
	"time"

	"github.com/ExClawYay/CodeNames/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sess := NewSession("session_1", &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count 1, got %d", manager.Count())
	}

	retrieved, exists := manager.Get("session_1")
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrieved != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove("session_1")
	if _, exists := manager.Get("session_1"); exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session_1", &MockConnection{})
	sess1.Bind("p1", "Alice", "ROOM01")

	sess2 := NewSession("session_2", &MockConnection{})
	sess2.Bind("p2", "Bob", "ROOM01")

	sess3 := NewSession("session_3", &MockConnection{})
	sess3.Bind("p3", "Carol", "ROOM02")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	if got := manager.GetByRoom("ROOM01"); len(got) != 2 {
		t.Errorf("Expected 2 sessions in ROOM01, got %d", len(got))
	}
	if got := manager.GetByRoom("ROOM02"); len(got) != 1 {
		t.Errorf("Expected 1 session in ROOM02, got %d", len(got))
	}
	if got := manager.GetByRoom("ROOM03"); len(got) != 0 {
		t.Errorf("Expected 0 sessions in ROOM03, got %d", len(got))
	}
}

func TestSession_Bind_Identity(t *testing.T) {
	sess := NewSession("session_1", &MockConnection{})

	playerID, roomCode := sess.Identity()
	if playerID != "" || roomCode != "" {
		t.Fatal("A fresh session should be anonymous")
	}

	sess.Bind("p1", "Alice", "ROOM01")
	playerID, roomCode = sess.Identity()
	if playerID != "p1" || roomCode != "ROOM01" {
		t.Errorf("Identity returned %q/%q", playerID, roomCode)
	}
}

func TestManager_GetByPlayerID(t *testing.T) {
	manager := NewManager()

	sess := NewSession("session_1", &MockConnection{})
	sess.Bind("p1", "Alice", "ROOM01")
	manager.Add(sess)

	if got := manager.GetByPlayerID("p1"); len(got) != 1 {
		t.Errorf("Expected 1 session for p1, got %d", len(got))
	}
	if got := manager.GetByPlayerID("nobody"); len(got) != 0 {
		t.Errorf("Expected 0 sessions for unknown player, got %d", len(got))
	}
}
