package services

import (
	"testing"
	"time"

	"github.com/ExClawYay/CodeNames/game"
	"github.com/ExClawYay/CodeNames/models"
	"github.com/ExClawYay/CodeNames/persistence"
)

// mockDatabase is an in-memory test double for the persistence.Database interface.
type mockDatabase struct {
	records   []*models.GameRecord
	snapshots map[string]*models.RoomSnapshot
	stats     map[string]*models.PlayerStats
}

func newMockDatabase() *mockDatabase {
	return &mockDatabase{
		snapshots: make(map[string]*models.RoomSnapshot),
		stats:     make(map[string]*models.PlayerStats),
	}
}

func (m *mockDatabase) SaveGameRecord(record *models.GameRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *mockDatabase) SaveRoomSnapshot(snapshot *models.RoomSnapshot) error {
	m.snapshots[snapshot.RoomCode] = snapshot
	return nil
}

func (m *mockDatabase) LoadRoomSnapshot(roomCode string) (*models.RoomSnapshot, error) {
	snap, ok := m.snapshots[roomCode]
	if !ok {
		return nil, persistence.ErrRecordNotFound
	}
	return snap, nil
}

func (m *mockDatabase) RecordPlayerOutcome(playerID, nickname string, won bool, guesses int) error {
	stats, ok := m.stats[playerID]
	if !ok {
		stats = &models.PlayerStats{PlayerID: playerID}
		m.stats[playerID] = stats
	}
	stats.TotalGames++
	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}
	stats.TotalGuesses += guesses
	return nil
}

func (m *mockDatabase) GetPlayerStats(playerID string) (*models.PlayerStats, error) {
	stats, ok := m.stats[playerID]
	if !ok {
		return nil, persistence.ErrRecordNotFound
	}
	return stats, nil
}

func (m *mockDatabase) Close() error { return nil }

func finishedView() *game.RoomView {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &game.RoomView{
		RoomCode:  "AB12CD",
		Status:    "FINISHED",
		CreatedAt: created,
		Players: []game.PlayerView{
			{PlayerID: "p1", Nickname: "Alice", CorrectGuesses: 9},
			{PlayerID: "p2", Nickname: "Bob", CorrectGuesses: 9},
		},
		Result: &game.GameResult{
			Outcome:          game.OutcomeWin,
			TotalTurnsPlayed: 6,
			TotalErrors:      1,
			Reason:           game.ReasonAllWordsFound,
			EndedAt:          created.Add(8 * time.Minute),
		},
	}
}

func TestRecordFinishedGame(t *testing.T) {
	db := newMockDatabase()
	svc := NewStatsService(db)

	if err := svc.RecordFinishedGame(finishedView()); err != nil {
		t.Fatalf("RecordFinishedGame failed: %v", err)
	}

	if len(db.records) != 1 {
		t.Fatalf("Expected 1 game record, got %d", len(db.records))
	}
	record := db.records[0]
	if record.RoomCode != "AB12CD" {
		t.Errorf("Expected room code AB12CD, got %s", record.RoomCode)
	}
	if record.Outcome != string(game.OutcomeWin) {
		t.Errorf("Expected WIN outcome, got %s", record.Outcome)
	}
	if record.Duration != 480 {
		t.Errorf("Expected 480s duration, got %d", record.Duration)
	}
	if len(record.Players) != 2 {
		t.Fatalf("Expected 2 players in record, got %d", len(record.Players))
	}

	for _, id := range []string{"p1", "p2"} {
		stats, err := svc.GetPlayerStats(id)
		if err != nil {
			t.Fatalf("GetPlayerStats(%s) failed: %v", id, err)
		}
		if stats.TotalGames != 1 || stats.Wins != 1 || stats.Losses != 0 {
			t.Errorf("Player %s stats wrong: %+v", id, stats)
		}
		if stats.TotalGuesses != 9 {
			t.Errorf("Player %s should have 9 guesses counted, got %d", id, stats.TotalGuesses)
		}
	}
}

func TestRecordFinishedGame_Loss(t *testing.T) {
	db := newMockDatabase()
	svc := NewStatsService(db)

	view := finishedView()
	view.Result.Outcome = game.OutcomeLossAssassin
	view.Result.Reason = game.ReasonAssassinFound

	if err := svc.RecordFinishedGame(view); err != nil {
		t.Fatalf("RecordFinishedGame failed: %v", err)
	}

	stats, err := svc.GetPlayerStats("p1")
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	if stats.Wins != 0 || stats.Losses != 1 {
		t.Errorf("Loss should count as loss, got %+v", stats)
	}
}

func TestRecordFinishedGame_NotFinished(t *testing.T) {
	db := newMockDatabase()
	svc := NewStatsService(db)

	view := finishedView()
	view.Result = nil

	if err := svc.RecordFinishedGame(view); err != nil {
		t.Fatalf("RecordFinishedGame on unfinished room should be a no-op, got %v", err)
	}
	if len(db.records) != 0 {
		t.Errorf("No record should be written for an unfinished room")
	}
}

func TestSnapshotRoom(t *testing.T) {
	db := newMockDatabase()
	svc := NewStatsService(db)

	if err := svc.SnapshotRoom(finishedView()); err != nil {
		t.Fatalf("SnapshotRoom failed: %v", err)
	}

	snap, err := db.LoadRoomSnapshot("AB12CD")
	if err != nil {
		t.Fatalf("LoadRoomSnapshot failed: %v", err)
	}
	if snap.Status != "FINISHED" {
		t.Errorf("Expected FINISHED status, got %s", snap.Status)
	}
	if len(snap.Players) != 2 {
		t.Errorf("Expected 2 players in snapshot, got %d", len(snap.Players))
	}
}
