// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/ExClawYay/CodeNames/models"
)

// PostgreSQL 数据库实现（原生SQL，不经过GORM）
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	// 设置连接池参数
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(16) NOT NULL,
            outcome VARCHAR(32) NOT NULL,
            reason VARCHAR(64) NOT NULL,
            turns_played INT NOT NULL DEFAULT 0,
            errors INT NOT NULL DEFAULT 0,
            players JSONB NOT NULL,
            duration INT NOT NULL DEFAULT 0,
            ended_at TIMESTAMP NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS room_snapshots (
            id SERIAL PRIMARY KEY,
            room_code VARCHAR(16) UNIQUE NOT NULL,
            status VARCHAR(32) NOT NULL,
            players JSONB NOT NULL,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS player_stats (
            id SERIAL PRIMARY KEY,
            player_id VARCHAR(64) UNIQUE NOT NULL,
            nickname VARCHAR(64) NOT NULL,
            total_games INT NOT NULL DEFAULT 0,
            wins INT NOT NULL DEFAULT 0,
            losses INT NOT NULL DEFAULT 0,
            total_guesses INT NOT NULL DEFAULT 0
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_code ON game_records(room_code);
        CREATE INDEX IF NOT EXISTS idx_game_records_ended_at ON game_records(ended_at);
        CREATE INDEX IF NOT EXISTS idx_player_stats_player_id ON player_stats(player_id);
    `)

	return err
}

// SaveGameRecord 保存对局记录
func (p *PostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	playersJSON, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = p.db.ExecContext(ctx, `
        INSERT INTO game_records (room_code, outcome, reason, turns_played, errors, players, duration, ended_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.RoomCode, record.Outcome, record.Reason, record.TurnsPlayed,
		record.Errors, playersJSON, record.Duration, record.EndedAt)
	return err
}

// SaveRoomSnapshot 保存房间快照 (UPSERT)
func (p *PostgreSQL) SaveRoomSnapshot(snapshot *models.RoomSnapshot) error {
	playersJSON, err := json.Marshal(snapshot.Players)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = p.db.ExecContext(ctx, `
        INSERT INTO room_snapshots (room_code, status, players)
        VALUES ($1, $2, $3)
        ON CONFLICT (room_code) DO UPDATE
        SET status = EXCLUDED.status,
            players = EXCLUDED.players,
            updated_at = CURRENT_TIMESTAMP`,
		snapshot.RoomCode, snapshot.Status, playersJSON)
	return err
}

// LoadRoomSnapshot 加载房间快照
func (p *PostgreSQL) LoadRoomSnapshot(roomCode string) (*models.RoomSnapshot, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var snap models.RoomSnapshot
	var playersJSON []byte
	err := p.db.QueryRowContext(ctx, `
        SELECT room_code, status, players, created_at, updated_at
        FROM room_snapshots WHERE room_code = $1`, roomCode).
		Scan(&snap.RoomCode, &snap.Status, &playersJSON, &snap.CreatedAt, &snap.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(playersJSON, &snap.Players); err != nil {
		return nil, err
	}
	return &snap, nil
}

// RecordPlayerOutcome 更新玩家胜负统计 (UPSERT)
func (p *PostgreSQL) RecordPlayerOutcome(playerID, nickname string, won bool, guesses int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	winInc, lossInc := 0, 1
	if won {
		winInc, lossInc = 1, 0
	}

	_, err := p.db.ExecContext(ctx, `
        INSERT INTO player_stats (player_id, nickname, total_games, wins, losses, total_guesses)
        VALUES ($1, $2, 1, $3, $4, $5)
        ON CONFLICT (player_id) DO UPDATE
        SET nickname = EXCLUDED.nickname,
            total_games = player_stats.total_games + 1,
            wins = player_stats.wins + $3,
            losses = player_stats.losses + $4,
            total_guesses = player_stats.total_guesses + $5`,
		playerID, nickname, winInc, lossInc, guesses)
	return err
}

// GetPlayerStats 获取玩家统计信息
func (p *PostgreSQL) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stats models.PlayerStats
	err := p.db.QueryRowContext(ctx, `
        SELECT player_id, total_games, wins, losses, total_guesses
        FROM player_stats WHERE player_id = $1`, playerID).
		Scan(&stats.PlayerID, &stats.TotalGames, &stats.Wins, &stats.Losses, &stats.TotalGuesses)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Close 关闭数据库连接
func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
