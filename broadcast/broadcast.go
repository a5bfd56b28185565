// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/ExClawYay/CodeNames/session"
)

var (
	ErrNoSessions = errors.New("no sessions in room")
)

// 广播接口
type Broadcaster interface {
	BroadcastToRoom(roomCode string, msgID uint16, data []byte) error
	SendToPlayer(playerID string, msgID uint16, data []byte) error
}

// RoomBroadcaster pushes messages to the sessions bound to a room code.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{sessionManager: sessionManager}
}

// BroadcastToRoom sends the same payload to everyone in the room. Send
// failures on individual sessions are skipped; the connection reader will
// notice the broken session and clean it up.
func (b *RoomBroadcaster) BroadcastToRoom(roomCode string, msgID uint16, data []byte) error {
	sessions := b.sessionManager.GetByRoom(roomCode)
	if len(sessions) == 0 {
		return ErrNoSessions
	}

	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

// SendToPlayer sends a payload to every session of one player.
func (b *RoomBroadcaster) SendToPlayer(playerID string, msgID uint16, data []byte) error {
	sessions := b.sessionManager.GetByPlayerID(playerID)
	if len(sessions) == 0 {
		return ErrNoSessions
	}

	for _, s := range sessions {
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}
