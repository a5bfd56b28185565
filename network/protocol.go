package network

// Message IDs of the game protocol. 1xx are room lifecycle requests, 2xx are
// in-game actions, 3xx are server pushes.
const (
	MsgTypeHeartbeat = 1
	MsgTypeError     = 2

	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeStartGame  = 103
	MsgTypeLeaveRoom  = 104

	MsgTypeSubmitClue  = 201
	MsgTypeSubmitGuess = 202

	MsgTypeRoomState   = 301
	MsgTypeGuessResult = 302
	MsgTypeGameResult  = 303
)
