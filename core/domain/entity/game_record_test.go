package entity

import (
	"testing"
	"time"

	"paipu/runtime/replay/engines/mahjong"
)

func TestGameRecord_RoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &mahjong.GameResult{
		GameID: "g1",
		Rounds: []mahjong.RoundResult{
			{PlayerStats: make([]mahjong.PlayerStats, 3)},
			{PlayerStats: make([]mahjong.PlayerStats, 3), RiichiSticks: 1},
		},
		Players: []*mahjong.Account{
			{AccountID: 1, Nickname: "a", Seat: 0},
			nil,
			{AccountID: 3, Nickname: "c", Seat: 2},
		},
		FinalScores:     []int{40000, 35000, 30000},
		StartTime:       start,
		EndTime:         start.Add(25 * time.Minute),
		MaxDealerStreak: 1,
	}

	record := NewGameRecord(result)
	if record.ID != "g1" || record.PlayerCount != 3 || record.RoundCount != 2 {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Duration != 25*60 {
		t.Fatalf("expected duration 1500s, got %d", record.Duration)
	}
	if !record.Players[1].Missing || record.Players[1].SeatIndex != 1 {
		t.Fatalf("seat 1 should be marked missing, got %+v", record.Players[1])
	}
	if len(record.Totals) != 3 || record.Totals[0].Rounds != 2 {
		t.Fatalf("unexpected totals %+v", record.Totals)
	}

	rounds := NewRoundRecords(result.GameID, result.Rounds)
	if len(rounds) != 2 || rounds[1].RoundNumber != 1 || rounds[0].ID == rounds[1].ID {
		t.Fatalf("unexpected round records %+v", rounds)
	}

	back := record.ToGameResult(rounds)
	if back.GameID != "g1" || len(back.Rounds) != 2 || back.Rounds[1].RiichiSticks != 1 {
		t.Fatalf("unexpected game result %+v", back)
	}
	if back.Players[1] != nil || back.Players[2].AccountID != 3 || back.Players[2].Seat != 2 {
		t.Fatalf("unexpected players %+v", back.Players)
	}
}
