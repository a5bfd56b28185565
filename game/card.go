package game

// CardType is the classification of a board position inside one player's
// key map. The same position can carry a different type in each map.
type CardType int

const (
	// Neutral costs an error and ends the turn when guessed.
	Neutral CardType = iota
	// Green is a safe word the guesser is supposed to find.
	Green
	// Assassin ends the game immediately with a loss.
	Assassin
)

func (t CardType) String() string {
	switch t {
	case Green:
		return "GREEN"
	case Assassin:
		return "ASSASSIN"
	default:
		return "NEUTRAL"
	}
}

// Card is one entry of a key map. Word and Position are shared board state,
// Type is private to the owning key map. Revealed mutates once, on guess.
type Card struct {
	Word     string   `json:"word"`
	Type     CardType `json:"type"`
	Revealed bool     `json:"revealed"`
	Position int      `json:"position"`
}

// KeyMap is one player's private classification of every board position.
type KeyMap struct {
	PlayerID string `json:"player_id"`
	Cards    []Card `json:"cards"`
}

func (k *KeyMap) countType(t CardType) int {
	n := 0
	for _, c := range k.Cards {
		if c.Type == t {
			n++
		}
	}
	return n
}

// CountGreen returns the number of GREEN cards in the map.
func (k *KeyMap) CountGreen() int { return k.countType(Green) }

// CountNeutral returns the number of NEUTRAL cards in the map.
func (k *KeyMap) CountNeutral() int { return k.countType(Neutral) }

// CountAssassin returns the number of ASSASSIN cards in the map.
func (k *KeyMap) CountAssassin() int { return k.countType(Assassin) }
