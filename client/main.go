package main

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	MsgTypeHeartbeat   = 1
	MsgTypeCreateRoom  = 101
	MsgTypeJoinRoom    = 102
	MsgTypeStartGame   = 103
	MsgTypeLeaveRoom   = 104
	MsgTypeSubmitClue  = 201
	MsgTypeSubmitGuess = 202
)

// send formats and sends a message to the WebSocket server.
func send(c *websocket.Conn, msgID uint16, data []byte) error {
	packet := make([]byte, 4+len(data))
	binary.BigEndian.PutUint16(packet[0:2], msgID)
	binary.BigEndian.PutUint16(packet[2:4], uint16(len(data)))
	copy(packet[4:], data)

	return c.WriteMessage(websocket.BinaryMessage, packet)
}

func sendJSON(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return send(c, msgID, data)
}

func usage() {
	fmt.Println(`Commands:
  create <nickname>            create a room
  join <code> <nickname>       join an existing room
  start                        start the game (host only)
  clue <word> <number>         submit a clue
  guess <position>             guess the card at position
  leave                        leave the room
  quit                         close the client`)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	player := flag.String("player", "", "player id (defaults to server-assigned)")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			if len(message) < 4 {
				log.Printf("Received invalid packet of size %d", len(message))
				continue
			}
			msgID := binary.BigEndian.Uint16(message[0:2])
			data := message[4:]
			log.Printf("<- RECV (ID: %d): %s", msgID, string(data))
		}
	}()

	// Heartbeat loop
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				send(c, MsgTypeHeartbeat, nil)
			}
		}
	}()

	usage()

	lines := make(chan string)
	go func() {
		reader := bufio.NewReader(os.Stdin)
		for {
			text, err := reader.ReadString('\n')
			if err != nil {
				close(lines)
				return
			}
			lines <- strings.TrimSpace(text)
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		case text, ok := <-lines:
			if !ok {
				return
			}
			fields := strings.Fields(text)
			if len(fields) == 0 {
				continue
			}

			var err error
			switch fields[0] {
			case "create":
				nickname := *player
				if len(fields) > 1 {
					nickname = fields[1]
				}
				err = sendJSON(c, MsgTypeCreateRoom, map[string]string{
					"player_id": *player, "nickname": nickname,
				})
			case "join":
				if len(fields) < 2 {
					usage()
					continue
				}
				nickname := *player
				if len(fields) > 2 {
					nickname = fields[2]
				}
				err = sendJSON(c, MsgTypeJoinRoom, map[string]string{
					"room_code": strings.ToUpper(fields[1]),
					"player_id": *player, "nickname": nickname,
				})
			case "start":
				err = send(c, MsgTypeStartGame, nil)
			case "clue":
				if len(fields) < 3 {
					usage()
					continue
				}
				number, convErr := strconv.Atoi(fields[2])
				if convErr != nil {
					log.Println("Bad clue number:", convErr)
					continue
				}
				err = sendJSON(c, MsgTypeSubmitClue, map[string]interface{}{
					"word": fields[1], "number": number,
				})
			case "guess":
				if len(fields) < 2 {
					usage()
					continue
				}
				position, convErr := strconv.Atoi(fields[1])
				if convErr != nil {
					log.Println("Bad position:", convErr)
					continue
				}
				err = sendJSON(c, MsgTypeSubmitGuess, map[string]int{"position": position})
			case "leave":
				err = send(c, MsgTypeLeaveRoom, nil)
			case "quit":
				return
			default:
				usage()
				continue
			}
			if err != nil {
				log.Println("Write error:", err)
				return
			}
			log.Printf("-> SENT: %s", fields[0])
		}
	}
}
