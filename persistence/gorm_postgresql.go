// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ExClawYay/CodeNames/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(
		&models.GormGameRecord{},
		&models.GormRoomSnapshot{},
		&models.GormPlayerStats{},
	); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

// SaveGameRecord 保存对局记录
func (p *GormPostgreSQL) SaveGameRecord(record *models.GameRecord) error {
	playersJSON, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	row := models.GormGameRecord{
		RoomCode:    record.RoomCode,
		Outcome:     record.Outcome,
		Reason:      record.Reason,
		TurnsPlayed: record.TurnsPlayed,
		Errors:      record.Errors,
		Players:     playersJSON,
		Duration:    record.Duration,
		EndedAt:     record.EndedAt,
	}
	return p.db.Create(&row).Error
}

// SaveRoomSnapshot 保存房间快照，存在则更新
func (p *GormPostgreSQL) SaveRoomSnapshot(snapshot *models.RoomSnapshot) error {
	playersJSON, err := json.Marshal(snapshot.Players)
	if err != nil {
		return err
	}

	var row models.GormRoomSnapshot
	result := p.db.Where("room_code = ?", snapshot.RoomCode).First(&row)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		row = models.GormRoomSnapshot{
			RoomCode: snapshot.RoomCode,
			Status:   snapshot.Status,
			Players:  playersJSON,
		}
		return p.db.Create(&row).Error
	} else if result.Error != nil {
		return result.Error
	}

	row.Status = snapshot.Status
	row.Players = playersJSON
	return p.db.Save(&row).Error
}

// LoadRoomSnapshot 加载房间快照
func (p *GormPostgreSQL) LoadRoomSnapshot(roomCode string) (*models.RoomSnapshot, error) {
	var row models.GormRoomSnapshot
	if err := p.db.Where("room_code = ?", roomCode).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var players []string
	if len(row.Players) > 0 {
		if err := json.Unmarshal(row.Players, &players); err != nil {
			return nil, err
		}
	}
	return &models.RoomSnapshot{
		RoomCode:  row.RoomCode,
		Status:    row.Status,
		Players:   players,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// RecordPlayerOutcome 更新玩家胜负统计（事务内原子更新）
func (p *GormPostgreSQL) RecordPlayerOutcome(playerID, nickname string, won bool, guesses int) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		var stats models.GormPlayerStats
		err := tx.Where("player_id = ?", playerID).First(&stats).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			stats = models.GormPlayerStats{
				PlayerID: playerID,
				Nickname: nickname,
			}
			if err := tx.Create(&stats).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_games":   gorm.Expr("total_games + 1"),
			"total_guesses": gorm.Expr("total_guesses + ?", guesses),
			"nickname":      nickname,
		}
		if won {
			updates["wins"] = gorm.Expr("wins + 1")
		} else {
			updates["losses"] = gorm.Expr("losses + 1")
		}
		return tx.Model(&models.GormPlayerStats{}).
			Where("player_id = ?", playerID).
			Updates(updates).Error
	})
}

// GetPlayerStats 获取玩家统计信息
func (p *GormPostgreSQL) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	var stats models.GormPlayerStats
	if err := p.db.Where("player_id = ?", playerID).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &models.PlayerStats{
		PlayerID:     stats.PlayerID,
		TotalGames:   stats.TotalGames,
		Wins:         stats.Wins,
		Losses:       stats.Losses,
		TotalGuesses: stats.TotalGuesses,
	}, nil
}

// Close 关闭数据库连接
func (p *GormPostgreSQL) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
