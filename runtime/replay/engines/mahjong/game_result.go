package mahjong

import (
	"time"

	"paipu/common/log"
)

// Account 座位对应的玩家账号
type Account struct {
	AccountID int64  `json:"accountId" bson:"account_id"`
	Nickname  string `json:"nickname" bson:"nickname"`
	Seat      int    `json:"seat" bson:"seat"`
}

// GameMeta 对局元数据，由解码端提供
type GameMeta struct {
	GameID      string
	Accounts    []Account
	FinalScores []int
	StartTime   time.Time
	EndTime     time.Time
}

// GameResult 整场对局的结果
type GameResult struct {
	GameID          string        `json:"gameId" bson:"game_id"`
	Rounds          []RoundResult `json:"rounds" bson:"rounds"`
	Players         []*Account    `json:"players" bson:"players"`
	FinalScores     []int         `json:"finalScores" bson:"final_scores"`
	StartTime       time.Time     `json:"startTime" bson:"start_time"`
	EndTime         time.Time     `json:"endTime" bson:"end_time"`
	MaxDealerStreak int           `json:"maxDealerStreak" bson:"max_dealer_streak"`
}

// AssembleGameResult 组装整场结果
// 找不到账号的座位对应的 Players 条目为 nil，只记录警告，不影响其他座位
func AssembleGameResult(meta GameMeta, replay *Replay, playerCount int) *GameResult {
	bySeat := make(map[int]Account, len(meta.Accounts))
	for _, a := range meta.Accounts {
		bySeat[a.Seat] = a
	}

	players := make([]*Account, playerCount)
	for seat := 0; seat < playerCount; seat++ {
		a, ok := bySeat[seat]
		if !ok {
			log.Warn("对局 %s: %v", meta.GameID, &MissingReferenceError{Seat: seat})
			continue
		}
		players[seat] = &a
	}

	result := &GameResult{
		GameID:      meta.GameID,
		Players:     players,
		FinalScores: meta.FinalScores,
		StartTime:   meta.StartTime,
		EndTime:     meta.EndTime,
	}
	if replay != nil {
		result.Rounds = replay.Rounds
		result.MaxDealerStreak = replay.MaxDealerStreak
	}
	return result
}
