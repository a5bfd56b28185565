package network

import (
	"bytes"
	"io"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte(`{"room_code":"ABC123"}`)
	framed := Encode(MsgTypeJoinRoom, payload)

	packet, err := Decode(framed)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if packet.MsgID != MsgTypeJoinRoom {
		t.Errorf("Expected msg ID %d, got %d", MsgTypeJoinRoom, packet.MsgID)
	}
	if !bytes.Equal(packet.Data, payload) {
		t.Errorf("Payload mismatch: %q", packet.Data)
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, err := Decode([]byte{0, 1}); err != io.ErrShortBuffer {
		t.Errorf("Expected ErrShortBuffer for a short header, got %v", err)
	}

	// Header claims more payload than is present.
	framed := Encode(MsgTypeHeartbeat, []byte("abcdef"))
	if _, err := Decode(framed[:6]); err != io.ErrShortBuffer {
		t.Errorf("Expected ErrShortBuffer for a truncated payload, got %v", err)
	}
}
