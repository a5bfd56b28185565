package game

import "time"

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeWin              Outcome = "WIN"
	OutcomeLossAssassin     Outcome = "LOSS_ASSASSIN"
	OutcomeLossTimeout      Outcome = "LOSS_TIMEOUT"
	OutcomeLossDisconnected Outcome = "LOSS_DISCONNECTED"
)

// Result reasons recorded on the terminal snapshot.
const (
	ReasonAllWordsFound    = "ALL_WORDS_FOUND"
	ReasonAssassinFound    = "ASSASSIN_FOUND"
	ReasonTooManyErrors    = "TOO_MANY_ERRORS"
	ReasonTurnsExhausted   = "TURNS_EXHAUSTED"
	ReasonAllDisconnected  = "ALL_PLAYERS_DISCONNECTED"
)

// GameResult is the terminal snapshot written exactly once when a room
// transitions to FINISHED. Immutable afterwards.
type GameResult struct {
	Outcome Outcome `json:"outcome"`
	// 合作制没有单独的胜者；获胜时记录房间码，失败时为空
	WinnerPlayerID   string         `json:"winner_player_id,omitempty"`
	TotalTurnsPlayed int            `json:"total_turns_played"`
	TotalErrors      int            `json:"total_errors"`
	CorrectGuesses   map[string]int `json:"correct_guesses"`
	EndedAt          time.Time      `json:"ended_at"`
	Reason           string         `json:"reason"`
}
