// models/models.go
package models

import (
	"time"
)

// GameRecord 对局记录模型，游戏结束时落库
type GameRecord struct {
	RoomCode    string             `json:"room_code"`
	Outcome     string             `json:"outcome"`
	Reason      string             `json:"reason"`
	TurnsPlayed int                `json:"turns_played"`
	Errors      int                `json:"errors"`
	Players     []PlayerInfo       `json:"players"`
	Duration    int                `json:"duration"` // 对局时长(秒)
	EndedAt     time.Time          `json:"ended_at"`
}

// PlayerInfo 玩家信息（用于对局记录）
type PlayerInfo struct {
	PlayerID       string `json:"player_id"`
	Nickname       string `json:"nickname"`
	CorrectGuesses int    `json:"correct_guesses"`
}

// RoomSnapshot 房间状态快照模型
type RoomSnapshot struct {
	RoomCode  string    `json:"room_code"`
	Status    string    `json:"status"`
	Players   []string  `json:"players"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerStats 玩家统计信息
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	TotalGames int    `json:"total_games"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	TotalGuesses int  `json:"total_guesses"`
}
