package game

import (
	"sync"
	"time"
)

// Status 表示房间所处的生命周期阶段
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "ACTIVE"
	case StatusFinished:
		return "FINISHED"
	default:
		return "WAITING"
	}
}

// Phase alternates within a turn: the clue giver speaks, then the guesser acts.
type Phase int

const (
	PhaseClue Phase = iota
	PhaseGuess
)

func (p Phase) String() string {
	if p == PhaseGuess {
		return "GUESS"
	}
	return "CLUE"
}

// Clue is the hint recorded for the current turn, cleared on turn advance.
type Clue struct {
	Word      string    `json:"word"`
	Number    int       `json:"number"`
	GivenBy   string    `json:"given_by"`
	Timestamp time.Time `json:"timestamp"`
}

// GameRoom 是游戏房间的聚合根。所有字段只允许通过 Engine 的操作修改，
// mu 串行化同一房间上的全部状态转换。
type GameRoom struct {
	RoomCode     string
	HostID       string
	Status       Status
	CreatedAt    time.Time
	LastActivity time.Time

	// Players and the explicit order they joined in. Role assignment uses
	// JoinOrder, never map iteration.
	Players   map[string]*Player
	JoinOrder []string

	// Board state. Words is shared across players; KeyMaps are private.
	Words         []string
	KeyMaps       map[string]*KeyMap
	RevealedCards []int

	// Turn state.
	CurrentTurn     int
	CurrentPhase    Phase
	ActivePlayerID  string
	TurnsRemaining  int
	ErrorsRemaining int
	GuessesThisTurn int
	GuessLimit      int
	Clue            *Clue

	Config GameConfig
	Result *GameResult

	mu sync.Mutex
}

// lock/unlock are used by the Engine so that every operation is one atomic
// transition. Accessors below take the lock themselves and are safe for
// collaborators (manager sweep, snapshots).
func (r *GameRoom) lock()   { r.mu.Lock() }
func (r *GameRoom) unlock() { r.mu.Unlock() }

// GetStatus returns the room's lifecycle status.
func (r *GameRoom) GetStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status
}

// LastActivityTime returns when the room last committed a transition.
func (r *GameRoom) LastActivityTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.LastActivity
}

// PlayerCount returns the number of players in the room.
func (r *GameRoom) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players)
}

// playerByRole returns the player currently holding the given role.
// Caller must hold the room lock.
func (r *GameRoom) playerByRole(role Role) *Player {
	for _, id := range r.JoinOrder {
		if p := r.Players[id]; p != nil && p.Role == role {
			return p
		}
	}
	return nil
}

// winTarget is the per-player GREEN count every player must reach.
// Caller must hold the room lock.
func (r *GameRoom) winTarget() int {
	green, _, _ := r.Config.Counts()
	return green
}
