package game

import "time"

// PlayerView is the public slice of a player's state.
type PlayerView struct {
	PlayerID       string `json:"player_id"`
	Nickname       string `json:"nickname"`
	Role           string `json:"role"`
	CorrectGuesses int    `json:"correct_guesses"`
	Connected      bool   `json:"connected"`
}

// RoomView is a redacted snapshot of a room for one viewer: it carries the
// shared board plus only the viewer's own key map. The other player's
// classifications never leave the server.
type RoomView struct {
	RoomCode        string       `json:"room_code"`
	HostID          string       `json:"host_id"`
	Status          string       `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	Players         []PlayerView `json:"players"`
	Words           []string     `json:"words"`
	RevealedCards   []int        `json:"revealed_cards"`
	CurrentTurn     int          `json:"current_turn"`
	CurrentPhase    string       `json:"current_phase"`
	ActivePlayerID  string       `json:"active_player_id"`
	TurnsRemaining  int          `json:"turns_remaining"`
	ErrorsRemaining int          `json:"errors_remaining"`
	GuessesThisTurn int          `json:"guesses_this_turn"`
	GuessLimit      int          `json:"guess_limit"`
	Clue            *Clue        `json:"clue,omitempty"`
	YourKeyMap      *KeyMap      `json:"your_key_map,omitempty"`
	Config          GameConfig   `json:"config"`
	Result          *GameResult  `json:"result,omitempty"`
}

// Snapshot renders the room as seen by viewerID. Everything in the returned
// view is a copy; mutating it cannot touch room state.
func (r *GameRoom) Snapshot(viewerID string) *RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := &RoomView{
		RoomCode:        r.RoomCode,
		HostID:          r.HostID,
		Status:          r.Status.String(),
		CreatedAt:       r.CreatedAt,
		Words:           append([]string(nil), r.Words...),
		RevealedCards:   append([]int(nil), r.RevealedCards...),
		CurrentTurn:     r.CurrentTurn,
		CurrentPhase:    r.CurrentPhase.String(),
		ActivePlayerID:  r.ActivePlayerID,
		TurnsRemaining:  r.TurnsRemaining,
		ErrorsRemaining: r.ErrorsRemaining,
		GuessesThisTurn: r.GuessesThisTurn,
		GuessLimit:      r.GuessLimit,
		Config:          r.Config,
	}

	for _, id := range r.JoinOrder {
		p := r.Players[id]
		view.Players = append(view.Players, PlayerView{
			PlayerID:       p.PlayerID,
			Nickname:       p.Nickname,
			Role:           p.Role.String(),
			CorrectGuesses: p.CorrectGuesses,
			Connected:      p.Connected,
		})
	}

	if r.Clue != nil {
		clue := *r.Clue
		view.Clue = &clue
	}
	if km, ok := r.KeyMaps[viewerID]; ok {
		copied := &KeyMap{
			PlayerID: km.PlayerID,
			Cards:    append([]Card(nil), km.Cards...),
		}
		view.YourKeyMap = copied
	}
	if r.Result != nil {
		result := *r.Result
		result.CorrectGuesses = make(map[string]int, len(r.Result.CorrectGuesses))
		for id, n := range r.Result.CorrectGuesses {
			result.CorrectGuesses[id] = n
		}
		view.Result = &result
	}
	return view
}
