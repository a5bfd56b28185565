// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/ExClawYay/CodeNames/models"
)

// Database 数据库接口
type Database interface {
	SaveGameRecord(record *models.GameRecord) error
	SaveRoomSnapshot(snapshot *models.RoomSnapshot) error
	LoadRoomSnapshot(roomCode string) (*models.RoomSnapshot, error)
	RecordPlayerOutcome(playerID, nickname string, won bool, guesses int) error
	GetPlayerStats(playerID string) (*models.PlayerStats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
