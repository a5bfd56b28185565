package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/rpc"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ExClawYay/CodeNames/broadcast"
	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/logger"
	"github.com/ExClawYay/CodeNames/monitor"
	"github.com/ExClawYay/CodeNames/network"
	"github.com/ExClawYay/CodeNames/persistence"
	"github.com/ExClawYay/CodeNames/room"
	codenames_rpc "github.com/ExClawYay/CodeNames/rpc"
	"github.com/ExClawYay/CodeNames/services"
	"github.com/ExClawYay/CodeNames/session"
	"github.com/ExClawYay/CodeNames/timer"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	statsService   *services.StatsService
	broadcaster    broadcast.Broadcaster
	timers         *timer.Manager
	monitor        *monitor.Monitor
	rpcServer      *codenames_rpc.Server
	defaults       game.GameConfig

	// roomCode -> pending phase timer
	phaseTimers map[string]int64
	phaseStart  map[string]time.Time
	mutex       sync.Mutex

	shutdownChan chan struct{}
}

func NewGameServer(addr, rpcAddr string, mgr *room.Manager, db persistence.Database, mon *monitor.Monitor, defaults game.GameConfig) *GameServer {
	s := &GameServer{
		addr:           addr,
		roomManager:    mgr,
		sessionManager: session.NewManager(),
		statsService:   services.NewStatsService(db),
		timers:         timer.NewManager(),
		monitor:        mon,
		defaults:       defaults,
		phaseTimers:    make(map[string]int64),
		phaseStart:     make(map[string]time.Time),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器
	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)

	// 初始化RPC服务器
	rpcServer, err := codenames_rpc.NewServer(rpcAddr)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	// 注册RPC服务
	rpc.Register(codenames_rpc.NewStatsRPC(s.statsService))

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.monitor.DecOnlinePlayers()
		s.handleDisconnect(sess)
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		s.handleHeartbeat(sess)
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess)
	case network.MsgTypeLeaveRoom:
		s.handleLeaveRoom(sess)
	case network.MsgTypeSubmitClue:
		s.handleSubmitClue(sess, packet)
	case network.MsgTypeSubmitGuess:
		s.handleSubmitGuess(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

type createRoomRequest struct {
	PlayerID     string `json:"player_id"`
	Nickname     string `json:"nickname"`
	GridSize     int    `json:"grid_size,omitempty"`
	TimerSeconds int    `json:"timer_seconds,omitempty"`
}

type createRoomResponse struct {
	RoomCode string `json:"room_code"`
}

type joinRoomRequest struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
}

type clueRequest struct {
	Word   string `json:"word"`
	Number int    `json:"number"`
}

type guessRequest struct {
	Position int `json:"position"`
}

type guessResultMessage struct {
	PlayerID    string `json:"player_id"`
	Position    int    `json:"position"`
	CardType    string `json:"card_type"`
	Outcome     string `json:"outcome"`
	GuessesUsed int    `json:"guesses_used"`
	GuessLimit  int    `json:"guess_limit"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func (s *GameServer) sendError(sess *session.Session, err error) {
	data, _ := json.Marshal(errorMessage{Message: err.Error()})
	sess.Send(network.MsgTypeError, data)
}

func (s *GameServer) handleHeartbeat(sess *session.Session) {
	sess.Touch()
	playerID, roomCode := sess.Identity()
	if roomCode == "" {
		return
	}
	if r, exists := s.roomManager.GetRoom(roomCode); exists {
		s.roomManager.Engine().Heartbeat(r, playerID)
	}
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req createRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = sess.GetID()
	}

	cfg := s.defaults
	if req.GridSize > 0 {
		cfg.GridSize = req.GridSize
		cfg.GreenCount = 0 // 重新按棋盘大小推导
		cfg.AssassinCount = 0
	}
	if req.TimerSeconds > 0 {
		cfg.TimerSeconds = req.TimerSeconds
	}

	r, err := s.roomManager.CreateRoom(req.PlayerID, &cfg)
	if err != nil {
		s.sendError(sess, err)
		return
	}
	if _, err := s.roomManager.Engine().JoinRoom(r, req.PlayerID, req.Nickname); err != nil {
		s.roomManager.RemoveRoom(r.RoomCode)
		s.sendError(sess, err)
		return
	}
	sess.Bind(req.PlayerID, req.Nickname, r.RoomCode)
	s.monitor.SetActiveRooms(s.roomManager.Count())

	logger.Log.Infof("Session %s created room %s", sess.GetID(), r.RoomCode)

	data, _ := json.Marshal(createRoomResponse{RoomCode: r.RoomCode})
	sess.Send(network.MsgTypeCreateRoom, data)
	s.broadcastRoomState(r)
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req joinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}
	if req.PlayerID == "" {
		req.PlayerID = sess.GetID()
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists {
		s.sendError(sess, errors.New("room not found"))
		return
	}

	if _, err := s.roomManager.Engine().JoinRoom(r, req.PlayerID, req.Nickname); err != nil {
		s.sendError(sess, err)
		return
	}
	sess.Bind(req.PlayerID, req.Nickname, r.RoomCode)

	logger.Log.Infof("Session %s joined room %s as %s", sess.GetID(), r.RoomCode, req.PlayerID)
	s.broadcastRoomState(r)
}

func (s *GameServer) handleStartGame(sess *session.Session) {
	playerID, roomCode := sess.Identity()
	r, exists := s.roomManager.GetRoom(roomCode)
	if !exists {
		s.sendError(sess, errors.New("room not found"))
		return
	}
	if playerID != r.HostID {
		s.sendError(sess, errors.New("only the host can start the game"))
		return
	}

	if err := s.roomManager.Engine().StartGame(r); err != nil {
		s.sendError(sess, err)
		return
	}
	s.monitor.IncGamesStarted()

	logger.Log.Infof("Room %s started a game", r.RoomCode)
	s.schedulePhaseTimer(r)
	s.broadcastRoomState(r)
}

func (s *GameServer) handleSubmitClue(sess *session.Session, packet *network.Packet) {
	var req clueRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}

	playerID, roomCode := sess.Identity()
	r, exists := s.roomManager.GetRoom(roomCode)
	if !exists {
		s.sendError(sess, errors.New("room not found"))
		return
	}

	if err := s.roomManager.Engine().SubmitClue(r, playerID, req.Word, req.Number); err != nil {
		s.sendError(sess, err)
		return
	}
	s.monitor.IncClues()

	s.schedulePhaseTimer(r)
	s.broadcastRoomState(r)
}

func (s *GameServer) handleSubmitGuess(sess *session.Session, packet *network.Packet) {
	var req guessRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, err)
		return
	}

	playerID, roomCode := sess.Identity()
	r, exists := s.roomManager.GetRoom(roomCode)
	if !exists {
		s.sendError(sess, errors.New("room not found"))
		return
	}

	result, err := s.roomManager.Engine().SubmitGuess(r, playerID, req.Position)
	if err != nil {
		s.sendError(sess, err)
		return
	}
	s.monitor.IncGuesses()

	data, _ := json.Marshal(guessResultMessage{
		PlayerID:    playerID,
		Position:    result.Position,
		CardType:    result.CardType.String(),
		Outcome:     result.Outcome.String(),
		GuessesUsed: result.GuessesUsed,
		GuessLimit:  result.GuessLimit,
	})
	s.broadcaster.BroadcastToRoom(r.RoomCode, network.MsgTypeGuessResult, data)
	s.afterGuess(r, result.Outcome)
}

// afterGuess 根据猜测结果推进房间的定时器与广播。
// TURN_END 也可能是终局：最后一回合被猜测消耗掉时，房间在引擎内部
// 已经转为 FINISHED，必须走收尾而不是再排一个超时定时器。
func (s *GameServer) afterGuess(r *game.GameRoom, outcome game.GuessOutcome) {
	if outcome == game.GuessGameWon || outcome == game.GuessGameLost ||
		r.GetStatus() == game.StatusFinished {
		s.finishRoom(r)
		return
	}
	if outcome == game.GuessTurnEnd {
		// 回合切换开启新的 CLUE 阶段，重置超时窗口
		s.schedulePhaseTimer(r)
	}
	// CONTINUE 停留在同一 GUESS 阶段，沿用当前窗口
	s.broadcastRoomState(r)
}

func (s *GameServer) handleLeaveRoom(sess *session.Session) {
	s.handleDisconnect(sess)
}

// handleDisconnect 标记玩家离线；当两名玩家都离线时结束并清理房间。
func (s *GameServer) handleDisconnect(sess *session.Session) {
	playerID, roomCode := sess.Identity()
	if roomCode == "" {
		return
	}

	r, exists := s.roomManager.GetRoom(roomCode)
	if !exists {
		return
	}

	engine := s.roomManager.Engine()
	allGone := engine.MarkDisconnected(r, playerID)
	if allGone {
		engine.HandleAllDisconnected(r)
		if r.GetStatus() == game.StatusFinished {
			s.persistResult(r)
		}
		s.cancelPhaseTimer(r.RoomCode)
		s.roomManager.RemoveRoom(r.RoomCode)
		s.monitor.SetActiveRooms(s.roomManager.Count())
		logger.Log.Infof("Room %s removed, all players disconnected", r.RoomCode)
		return
	}
	s.broadcastRoomState(r)
}

// schedulePhaseTimer (重新)安排当前阶段的超时定时器
func (s *GameServer) schedulePhaseTimer(r *game.GameRoom) {
	code := r.RoomCode
	delay := time.Duration(r.Config.TimerSeconds) * time.Second

	s.mutex.Lock()
	if id, ok := s.phaseTimers[code]; ok {
		s.timers.RemoveTimer(id)
	}
	if started, ok := s.phaseStart[code]; ok {
		s.monitor.ObservePhaseDuration(time.Since(started))
	}
	s.phaseStart[code] = time.Now()
	s.phaseTimers[code] = s.timers.AddTimer(delay, 0, func() {
		s.onPhaseTimeout(code)
	})
	s.mutex.Unlock()
}

func (s *GameServer) cancelPhaseTimer(code string) {
	s.mutex.Lock()
	if id, ok := s.phaseTimers[code]; ok {
		s.timers.RemoveTimer(id)
		delete(s.phaseTimers, code)
	}
	delete(s.phaseStart, code)
	s.mutex.Unlock()
}

func (s *GameServer) onPhaseTimeout(code string) {
	r, exists := s.roomManager.GetRoom(code)
	if !exists {
		return
	}

	logger.Log.Infof("Room %s phase timed out", code)
	s.roomManager.Engine().HandleTimeout(r)

	if r.GetStatus() == game.StatusFinished {
		s.finishRoom(r)
		return
	}
	s.schedulePhaseTimer(r)
	s.broadcastRoomState(r)
}

// finishRoom 游戏结束后的收尾：取消定时器、落库、广播结果。
func (s *GameServer) finishRoom(r *game.GameRoom) {
	s.cancelPhaseTimer(r.RoomCode)
	s.monitor.IncGamesFinished()
	s.persistResult(r)
	s.broadcastRoomState(r)

	view := r.Snapshot("")
	if view.Result != nil {
		data, _ := json.Marshal(view.Result)
		s.broadcaster.BroadcastToRoom(r.RoomCode, network.MsgTypeGameResult, data)
	}
}

func (s *GameServer) persistResult(r *game.GameRoom) {
	view := r.Snapshot("")
	if err := s.statsService.RecordFinishedGame(view); err != nil {
		logger.Log.Errorf("Failed to persist game record for room %s: %v", r.RoomCode, err)
	}
	if err := s.statsService.SnapshotRoom(view); err != nil {
		logger.Log.Errorf("Failed to persist room snapshot for %s: %v", r.RoomCode, err)
	}
}

// broadcastRoomState 给房间里每个会话发它自己的视角快照。
// 密钥图只随本人视角下发，另一名玩家的分类信息不会出现在载荷里。
func (s *GameServer) broadcastRoomState(r *game.GameRoom) {
	for _, sess := range s.sessionManager.GetByRoom(r.RoomCode) {
		playerID, _ := sess.Identity()
		view := r.Snapshot(playerID)
		data, err := json.Marshal(view)
		if err != nil {
			logger.Log.Errorf("Failed to marshal room view: %v", err)
			continue
		}
		sess.Send(network.MsgTypeRoomState, data)
	}
}
