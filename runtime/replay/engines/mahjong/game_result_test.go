package mahjong

import (
	"errors"
	"testing"
	"time"
)

func TestAssembleGameResult(t *testing.T) {
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	meta := GameMeta{
		GameID: "240301-abc",
		Accounts: []Account{
			{AccountID: 10, Nickname: "east", Seat: 0},
			{AccountID: 11, Nickname: "south", Seat: 1},
			{AccountID: 13, Nickname: "north", Seat: 3},
		},
		FinalScores: []int{35000, 25000, 20000, 20000},
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
	}
	replay := &Replay{Rounds: make([]RoundResult, 2), MaxDealerStreak: 1}

	g := AssembleGameResult(meta, replay, 4)
	if g.GameID != meta.GameID || len(g.Rounds) != 2 || g.MaxDealerStreak != 1 {
		t.Fatalf("unexpected game result %+v", g)
	}
	if len(g.Players) != 4 {
		t.Fatalf("expected 4 player entries, got %d", len(g.Players))
	}
	if g.Players[2] != nil {
		t.Fatalf("seat without account should be nil, got %+v", g.Players[2])
	}
	if g.Players[3] == nil || g.Players[3].AccountID != 13 {
		t.Fatalf("seat 3 should map to account 13, got %+v", g.Players[3])
	}
	if g.Players[0].Nickname != "east" || g.Players[1].Nickname != "south" {
		t.Fatalf("unexpected players %+v %+v", g.Players[0], g.Players[1])
	}
}

func TestMissingReferenceError(t *testing.T) {
	err := error(&MissingReferenceError{Seat: 2})
	if !errors.Is(err, ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference")
	}
	var target *MissingReferenceError
	if !errors.As(err, &target) || target.Seat != 2 {
		t.Fatalf("errors.As failed")
	}
}
