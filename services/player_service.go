// services/player_service.go
package services

import (
	"time"

	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/models"
	"github.com/ExClawYay/CodeNames/persistence"
)

// StatsService 对局归档与玩家统计服务。
// 入参统一用 RoomView 快照，不直接读房间内部状态。
type StatsService struct {
	db persistence.Database
}

func NewStatsService(db persistence.Database) *StatsService {
	return &StatsService{db: db}
}

// RecordFinishedGame 归档一局已结束的游戏并更新每个玩家的胜负统计
func (s *StatsService) RecordFinishedGame(view *game.RoomView) error {
	result := view.Result
	if result == nil {
		return nil
	}

	record := &models.GameRecord{
		RoomCode:    view.RoomCode,
		Outcome:     string(result.Outcome),
		Reason:      result.Reason,
		TurnsPlayed: result.TotalTurnsPlayed,
		Errors:      result.TotalErrors,
		Duration:    int(result.EndedAt.Sub(view.CreatedAt) / time.Second),
		EndedAt:     result.EndedAt,
	}
	for _, p := range view.Players {
		record.Players = append(record.Players, models.PlayerInfo{
			PlayerID:       p.PlayerID,
			Nickname:       p.Nickname,
			CorrectGuesses: p.CorrectGuesses,
		})
	}

	if err := s.db.SaveGameRecord(record); err != nil {
		return err
	}

	won := result.Outcome == game.OutcomeWin
	for _, info := range record.Players {
		if err := s.db.RecordPlayerOutcome(info.PlayerID, info.Nickname, won, info.CorrectGuesses); err != nil {
			return err
		}
	}
	return nil
}

// SnapshotRoom 保存房间快照，供运维排查使用
func (s *StatsService) SnapshotRoom(view *game.RoomView) error {
	snap := &models.RoomSnapshot{
		RoomCode:  view.RoomCode,
		Status:    view.Status,
		CreatedAt: view.CreatedAt,
		UpdatedAt: time.Now(),
	}
	for _, p := range view.Players {
		snap.Players = append(snap.Players, p.PlayerID)
	}
	return s.db.SaveRoomSnapshot(snap)
}

// GetPlayerStats 获取玩家统计信息
func (s *StatsService) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	return s.db.GetPlayerStats(playerID)
}
