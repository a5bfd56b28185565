package game

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GuessOutcome is the signal SubmitGuess returns alongside the mutated room.
type GuessOutcome int

const (
	// GuessContinue ：绿卡且还有剩余猜测次数，同一玩家可继续猜
	GuessContinue GuessOutcome = iota
	// GuessTurnEnd ：回合结束，角色互换并进入下一回合
	GuessTurnEnd
	// GuessGameWon ：双方都找齐了各自的绿卡
	GuessGameWon
	// GuessGameLost ：踩雷或错误次数耗尽
	GuessGameLost
)

func (o GuessOutcome) String() string {
	switch o {
	case GuessTurnEnd:
		return "TURN_END"
	case GuessGameWon:
		return "GAME_WON"
	case GuessGameLost:
		return "GAME_LOST"
	default:
		return "CONTINUE"
	}
}

// GuessResult reports what a committed guess did.
type GuessResult struct {
	Outcome     GuessOutcome `json:"outcome"`
	Position    int          `json:"position"`
	CardType    CardType     `json:"card_type"`
	GuessesUsed int          `json:"guesses_used"`
	GuessLimit  int          `json:"guess_limit"`
}

// Engine owns every room-mutating operation. Each call is one atomic
// transition: it takes the room lock, validates against the current state,
// and either commits a new state or leaves the room untouched. The engine
// itself holds no per-room state, so calls against different rooms never
// block each other.
//
// Guess resolution convention: the classification that scores a guess is
// read from the acting guesser's OWN key map. The clue giver hints at words
// they believe are safe on that map; the same convention is applied by
// HandleTimeout. This follows the house rule that danger is relative to
// whichever key map is authoritative for the active turn.
type Engine struct {
	pool   *WordPool
	keygen *KeyMapGenerator
	codes  *CodeAllocator
	now    func() time.Time
}

// NewEngine wires the engine to its collaborators.
func NewEngine(pool *WordPool, keygen *KeyMapGenerator, codes *CodeAllocator) *Engine {
	return &Engine{
		pool:   pool,
		keygen: keygen,
		codes:  codes,
		now:    time.Now,
	}
}

// CreateRoom allocates a code unique against existing and returns a WAITING
// room with no players. Persistence of the room is the caller's job.
func (e *Engine) CreateRoom(hostID string, cfg *GameConfig, existing map[string]struct{}) (*GameRoom, error) {
	config := DefaultConfig()
	if cfg != nil {
		config = *cfg
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if e.pool.Size() < config.WordPoolSize {
		return nil, fmt.Errorf("corpus has %d words, config wants %d: %w",
			e.pool.Size(), config.WordPoolSize, ErrInsufficientWords)
	}

	code, err := e.codes.Allocate(existing)
	if err != nil {
		return nil, err
	}

	now := e.now()
	return &GameRoom{
		RoomCode:        code,
		HostID:          hostID,
		Status:          StatusWaiting,
		CreatedAt:       now,
		LastActivity:    now,
		Players:         make(map[string]*Player),
		KeyMaps:         make(map[string]*KeyMap),
		CurrentPhase:    PhaseClue,
		TurnsRemaining:  config.MaxTurns,
		ErrorsRemaining: config.MaxErrors,
		Config:          config,
	}, nil
}

// JoinRoom adds a player to a WAITING room. Join order is recorded and later
// drives the initial role assignment.
func (e *Engine) JoinRoom(room *GameRoom, playerID, nickname string) (*Player, error) {
	room.lock()
	defer room.unlock()

	if room.Status != StatusWaiting {
		return nil, ErrRoomNotJoinable
	}
	if _, dup := room.Players[playerID]; dup {
		return nil, ErrDuplicatePlayer
	}
	if len(room.Players) >= 2 {
		return nil, ErrRoomFull
	}

	player := &Player{
		PlayerID:      playerID,
		Nickname:      nickname,
		Role:          RoleNone,
		Connected:     true,
		LastHeartbeat: e.now(),
	}
	room.Players[playerID] = player
	room.JoinOrder = append(room.JoinOrder, playerID)
	room.LastActivity = e.now()
	return player, nil
}

// StartGame samples the board, builds a key map per player and opens the
// first CLUE phase. The first-joined player starts as clue giver.
func (e *Engine) StartGame(room *GameRoom) error {
	room.lock()
	defer room.unlock()

	if room.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	if len(room.Players) < 2 {
		return ErrNotEnoughPlayers
	}

	boardWords, err := e.pool.Sample(room.Config.BoardSize())
	if err != nil {
		return err
	}
	keyMaps, err := e.keygen.Generate(boardWords, room.JoinOrder, room.Config)
	if err != nil {
		return err
	}

	room.Words = boardWords
	room.KeyMaps = keyMaps
	room.RevealedCards = nil

	clueGiver := room.JoinOrder[0]
	guesser := room.JoinOrder[1]
	room.Players[clueGiver].Role = RoleClueGiver
	room.Players[guesser].Role = RoleGuesser

	room.Status = StatusActive
	room.CurrentTurn = 0
	room.CurrentPhase = PhaseClue
	room.ActivePlayerID = clueGiver
	room.GuessesThisTurn = 0
	room.GuessLimit = 0
	room.Clue = nil
	room.LastActivity = e.now()
	return nil
}

// SubmitClue validates and records the clue, then hands the turn to the
// guesser. A clue of N allows N guesses this turn (a zero clue allows one).
func (e *Engine) SubmitClue(room *GameRoom, playerID, word string, number int) error {
	room.lock()
	defer room.unlock()

	if room.Status != StatusActive || room.CurrentPhase != PhaseClue {
		return ErrWrongPhase
	}
	if playerID != room.ActivePlayerID {
		return ErrNotActivePlayer
	}
	if err := validateClueWord(room, word, number); err != nil {
		return err
	}

	room.Clue = &Clue{
		Word:      strings.ToUpper(word),
		Number:    number,
		GivenBy:   playerID,
		Timestamp: e.now(),
	}
	room.CurrentPhase = PhaseGuess
	room.GuessesThisTurn = 0
	room.GuessLimit = number
	if room.GuessLimit < 1 {
		room.GuessLimit = 1
	}

	guesser := room.playerByRole(RoleGuesser)
	room.ActivePlayerID = guesser.PlayerID
	room.LastActivity = e.now()
	return nil
}

// validateClueWord enforces the house rules: single non-empty token, not a
// board word, number within [0, board size].
func validateClueWord(room *GameRoom, word string, number int) error {
	if strings.TrimSpace(word) == "" {
		return fmt.Errorf("clue is empty: %w", ErrInvalidClue)
	}
	if strings.ContainsFunc(word, unicode.IsSpace) {
		return fmt.Errorf("clue must be a single word: %w", ErrInvalidClue)
	}
	upper := strings.ToUpper(word)
	for _, boardWord := range room.Words {
		if upper == strings.ToUpper(boardWord) {
			return fmt.Errorf("clue %q is on the board: %w", word, ErrInvalidClue)
		}
	}
	if number < 0 || number > room.Config.BoardSize() {
		return fmt.Errorf("clue number %d out of range: %w", number, ErrInvalidClue)
	}
	return nil
}

// SubmitGuess resolves one guess against the acting guesser's key map. The
// card is revealed on every key map regardless of outcome; every legality
// check runs before any mutation.
func (e *Engine) SubmitGuess(room *GameRoom, playerID string, position int) (*GuessResult, error) {
	room.lock()
	defer room.unlock()

	if room.Status != StatusActive || room.CurrentPhase != PhaseGuess {
		return nil, ErrWrongPhase
	}
	if playerID != room.ActivePlayerID {
		return nil, ErrNotActivePlayer
	}
	if position < 0 || position >= room.Config.BoardSize() {
		return nil, fmt.Errorf("position %d on a %d-card board: %w",
			position, room.Config.BoardSize(), ErrInvalidPosition)
	}
	keyMap := room.KeyMaps[playerID]
	if keyMap.Cards[position].Revealed {
		return nil, ErrAlreadyRevealed
	}

	// Commit: shared reveal first, then resolve against the guesser's map.
	for _, km := range room.KeyMaps {
		km.Cards[position].Revealed = true
	}
	room.RevealedCards = append(room.RevealedCards, position)
	room.GuessesThisTurn++
	room.LastActivity = e.now()

	result := &GuessResult{
		Position:    position,
		CardType:    keyMap.Cards[position].Type,
		GuessesUsed: room.GuessesThisTurn,
		GuessLimit:  room.GuessLimit,
	}

	switch keyMap.Cards[position].Type {
	case Assassin:
		e.finishLocked(room, OutcomeLossAssassin, ReasonAssassinFound)
		result.Outcome = GuessGameLost

	case Green:
		room.Players[playerID].CorrectGuesses++
		if room.winConditionLocked() {
			e.finishLocked(room, OutcomeWin, ReasonAllWordsFound)
			result.Outcome = GuessGameWon
		} else if room.GuessesThisTurn >= room.GuessLimit {
			e.endTurnLocked(room)
			result.Outcome = GuessTurnEnd
		} else {
			result.Outcome = GuessContinue
		}

	default: // Neutral
		room.ErrorsRemaining--
		if room.ErrorsRemaining <= 0 {
			e.finishLocked(room, OutcomeLossTimeout, ReasonTooManyErrors)
			result.Outcome = GuessGameLost
		} else {
			e.endTurnLocked(room)
			result.Outcome = GuessTurnEnd
		}
	}
	return result, nil
}

// SwitchRoles swaps CLUE_GIVER and GUESSER for all players.
func (e *Engine) SwitchRoles(room *GameRoom) {
	room.lock()
	defer room.unlock()
	switchRolesLocked(room)
}

func switchRolesLocked(room *GameRoom) {
	for _, p := range room.Players {
		switch p.Role {
		case RoleClueGiver:
			p.Role = RoleGuesser
		case RoleGuesser:
			p.Role = RoleClueGiver
		}
	}
}

// AdvanceTurn spends one turn and opens the next CLUE phase, or finishes the
// game with a turns-exhausted loss.
func (e *Engine) AdvanceTurn(room *GameRoom) {
	room.lock()
	defer room.unlock()
	e.advanceTurnLocked(room)
}

func (e *Engine) advanceTurnLocked(room *GameRoom) {
	room.TurnsRemaining--
	if room.TurnsRemaining <= 0 {
		e.finishLocked(room, OutcomeLossTimeout, ReasonTurnsExhausted)
		return
	}

	room.CurrentTurn++
	room.CurrentPhase = PhaseClue
	room.Clue = nil
	room.GuessesThisTurn = 0
	room.GuessLimit = 0
	room.ActivePlayerID = room.playerByRole(RoleClueGiver).PlayerID
	room.LastActivity = e.now()
}

// endTurnLocked is the normal turn-over path: roles swap, then the turn
// counter advances.
func (e *Engine) endTurnLocked(room *GameRoom) {
	switchRolesLocked(room)
	e.advanceTurnLocked(room)
}

// HandleTimeout is invoked by the external timer when the current phase's
// window expires. One fixed rule for both phases: the turn is forfeited and
// penalized as an error, with no card revealed. A no-op on non-ACTIVE rooms
// so a late-firing timer cannot corrupt a finished game.
func (e *Engine) HandleTimeout(room *GameRoom) {
	room.lock()
	defer room.unlock()

	if room.Status != StatusActive {
		return
	}
	room.ErrorsRemaining--
	room.LastActivity = e.now()
	if room.ErrorsRemaining <= 0 {
		e.finishLocked(room, OutcomeLossTimeout, ReasonTooManyErrors)
		return
	}
	e.endTurnLocked(room)
}

// Heartbeat refreshes a player's liveness marker.
func (e *Engine) Heartbeat(room *GameRoom, playerID string) {
	room.lock()
	defer room.unlock()

	if p, ok := room.Players[playerID]; ok {
		p.Connected = true
		p.LastHeartbeat = e.now()
	}
}

// MarkDisconnected flags a player as gone and reports whether the room now
// has no connected players left.
func (e *Engine) MarkDisconnected(room *GameRoom, playerID string) (allDisconnected bool) {
	room.lock()
	defer room.unlock()

	p, ok := room.Players[playerID]
	if !ok {
		return false
	}
	p.Connected = false

	if len(room.Players) == 0 {
		return false
	}
	for _, other := range room.Players {
		if other.Connected {
			return false
		}
	}
	return true
}

// HandleAllDisconnected finishes an abandoned ACTIVE game with a
// disconnection loss. Invoked by the liveness collaborator.
func (e *Engine) HandleAllDisconnected(room *GameRoom) {
	room.lock()
	defer room.unlock()

	if room.Status != StatusActive {
		return
	}
	e.finishLocked(room, OutcomeLossDisconnected, ReasonAllDisconnected)
}

// CheckWinCondition reports whether every player has reached the per-player
// GREEN target. Pure; the engine commits the win inline during SubmitGuess.
func (e *Engine) CheckWinCondition(room *GameRoom) bool {
	room.lock()
	defer room.unlock()
	return room.winConditionLocked()
}

func (r *GameRoom) winConditionLocked() bool {
	if len(r.Players) == 0 {
		return false
	}
	target := r.winTarget()
	for _, p := range r.Players {
		if p.CorrectGuesses < target {
			return false
		}
	}
	return true
}

// finishLocked commits the terminal snapshot exactly once.
func (e *Engine) finishLocked(room *GameRoom, outcome Outcome, reason string) {
	if room.Result != nil {
		return
	}

	guesses := make(map[string]int, len(room.Players))
	for id, p := range room.Players {
		guesses[id] = p.CorrectGuesses
	}
	room.Status = StatusFinished
	room.Result = &GameResult{
		Outcome:          outcome,
		TotalTurnsPlayed: room.CurrentTurn + 1,
		TotalErrors:      room.Config.MaxErrors - room.ErrorsRemaining,
		CorrectGuesses:   guesses,
		EndedAt:          e.now(),
		Reason:           reason,
	}
	if outcome == OutcomeWin {
		// 合作制下两人同时获胜，胜者记为整个房间
		room.Result.WinnerPlayerID = room.RoomCode
	}
	room.LastActivity = room.Result.EndedAt
}
