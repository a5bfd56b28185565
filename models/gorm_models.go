// models/gorm_models.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// GormGameRecord 对局记录模型
type GormGameRecord struct {
	gorm.Model
	RoomCode    string    `gorm:"index;not null"`
	Outcome     string    `gorm:"not null"`
	Reason      string    `gorm:"not null"`
	TurnsPlayed int       `gorm:"default:0"`
	Errors      int       `gorm:"default:0"`
	Players     []byte    `gorm:"type:jsonb;not null"`
	Duration    int       `gorm:"default:0"` // 对局时长(秒)
	EndedAt     time.Time `gorm:"index"`
}

// GormRoomSnapshot 房间快照模型
type GormRoomSnapshot struct {
	gorm.Model
	RoomCode string `gorm:"uniqueIndex;not null"`
	Status   string `gorm:"not null"`
	Players  []byte `gorm:"type:jsonb"`
}

// GormPlayerStats 玩家统计模型
type GormPlayerStats struct {
	gorm.Model
	PlayerID     string `gorm:"uniqueIndex;not null"`
	Nickname     string `gorm:"not null"`
	TotalGames   int    `gorm:"default:0"`
	Wins         int    `gorm:"default:0"`
	Losses       int    `gorm:"default:0"`
	TotalGuesses int    `gorm:"default:0"`
}
