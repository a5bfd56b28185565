package game

import "time"

// Role is what a player does during the current turn. Roles swap every turn.
type Role int

const (
	// RoleNone means roles have not been assigned yet (room still waiting).
	RoleNone Role = iota
	// RoleClueGiver gives a one-word hint plus a count.
	RoleClueGiver
	// RoleGuesser picks board positions based on the clue.
	RoleGuesser
)

func (r Role) String() string {
	switch r {
	case RoleClueGiver:
		return "CLUE_GIVER"
	case RoleGuesser:
		return "GUESSER"
	default:
		return "NONE"
	}
}

// Player 房间内的玩家状态
type Player struct {
	PlayerID       string    `json:"player_id"`
	Nickname       string    `json:"nickname"`
	Role           Role      `json:"role"`
	CorrectGuesses int       `json:"correct_guesses"`
	Connected      bool      `json:"connected"`
	LastHeartbeat  time.Time `json:"last_heartbeat"`
}
