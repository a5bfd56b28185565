package main

import (
	"time"

	"github.com/ExClawYay/CodeNames/config"
	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/logger"
	"github.com/ExClawYay/CodeNames/monitor"
	"github.com/ExClawYay/CodeNames/persistence"
	"github.com/ExClawYay/CodeNames/room"
	"github.com/ExClawYay/CodeNames/server"
	"github.com/ExClawYay/CodeNames/words"
)

func main() {
	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Database
	db, err := persistence.NewGormPostgreSQL(
		cfg.Database.Postgres.Host,
		cfg.Database.Postgres.Port,
		cfg.Database.Postgres.User,
		cfg.Database.Postgres.Password,
		cfg.Database.Postgres.DBName,
	)
	if err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Log.Info("Database connection successful.")

	// Game engine over the built-in word corpus
	pool := game.NewWordPool(words.Default(), nil)
	engine := game.NewEngine(pool, game.NewKeyMapGenerator(nil), game.NewCodeAllocator(nil))

	gameDefaults := game.DefaultConfig()
	gameDefaults.GridSize = cfg.Game.GridSize
	gameDefaults.TimerSeconds = cfg.Game.TimerSeconds
	gameDefaults.MaxErrors = cfg.Game.MaxErrors
	gameDefaults.MaxTurns = cfg.Game.MaxTurns
	gameDefaults.WordPoolSize = cfg.Game.WordPoolSize
	gameDefaults.GreenCount = 0 // derived from grid size
	gameDefaults.AssassinCount = 0

	// Room registry with idle-room sweeping
	roomManager := room.NewManager(engine)
	roomManager.StartSweeper(time.Minute, 30*time.Minute)
	defer roomManager.Close()

	// Prometheus + expvar monitoring
	mon := monitor.NewMonitor("codenames")
	mon.StartServer(cfg.Server.MonitorAddress)

	// Initialize Game Server
	gameServer := server.NewGameServer(cfg.Server.HTTPAddress, cfg.Server.RPCAddress, roomManager, db, mon, gameDefaults)

	// Start Server
	logger.Log.Infof("Starting game server on %s", cfg.Server.HTTPAddress)
	if err := gameServer.Start(); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
