package broadcast

import (
	"net"
	"testing"
	"time"

	"github.com/ExClawYay/CodeNames/network"
	"github.com/ExClawYay/CodeNames/session"
)

// recordingConnection is a test double that remembers what was sent to it.
type recordingConnection struct {
	msgIDs []uint16
}

func (c *recordingConnection) Send(msgID uint16, data []byte) error {
	c.msgIDs = append(c.msgIDs, msgID)
	return nil
}
func (c *recordingConnection) Close() error                         { return nil }
func (c *recordingConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (c *recordingConnection) SetHeartbeat(interval time.Duration)  {}
func (c *recordingConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestBroadcastToRoom(t *testing.T) {
	manager := session.NewManager()

	conn1 := &recordingConnection{}
	sess1 := session.NewSession("session_1", conn1)
	sess1.Bind("p1", "Alice", "ROOM01")
	manager.Add(sess1)

	conn2 := &recordingConnection{}
	sess2 := session.NewSession("session_2", conn2)
	sess2.Bind("p2", "Bob", "ROOM01")
	manager.Add(sess2)

	conn3 := &recordingConnection{}
	sess3 := session.NewSession("session_3", conn3)
	sess3.Bind("p3", "Carol", "ROOM02")
	manager.Add(sess3)

	b := NewRoomBroadcaster(manager)
	if err := b.BroadcastToRoom("ROOM01", network.MsgTypeRoomState, []byte("{}")); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if len(conn1.msgIDs) != 1 || conn1.msgIDs[0] != network.MsgTypeRoomState {
		t.Errorf("p1 should receive exactly one ROOM_STATE, got %v", conn1.msgIDs)
	}
	if len(conn2.msgIDs) != 1 {
		t.Errorf("p2 should receive the broadcast, got %v", conn2.msgIDs)
	}
	if len(conn3.msgIDs) != 0 {
		t.Errorf("p3 is in another room, should receive nothing, got %v", conn3.msgIDs)
	}
}

func TestBroadcastToRoom_Empty(t *testing.T) {
	b := NewRoomBroadcaster(session.NewManager())
	if err := b.BroadcastToRoom("NOSUCH", network.MsgTypeRoomState, nil); err != ErrNoSessions {
		t.Fatalf("Expected ErrNoSessions, got %v", err)
	}
}

func TestSendToPlayer(t *testing.T) {
	manager := session.NewManager()

	conn := &recordingConnection{}
	sess := session.NewSession("session_1", conn)
	sess.Bind("p1", "Alice", "ROOM01")
	manager.Add(sess)

	b := NewRoomBroadcaster(manager)
	if err := b.SendToPlayer("p1", network.MsgTypeGameResult, []byte("{}")); err != nil {
		t.Fatalf("SendToPlayer failed: %v", err)
	}
	if len(conn.msgIDs) != 1 || conn.msgIDs[0] != network.MsgTypeGameResult {
		t.Errorf("p1 should receive the message, got %v", conn.msgIDs)
	}

	if err := b.SendToPlayer("ghost", network.MsgTypeGameResult, nil); err != ErrNoSessions {
		t.Fatalf("Expected ErrNoSessions for unknown player, got %v", err)
	}
}
