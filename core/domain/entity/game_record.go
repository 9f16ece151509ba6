package entity

import (
	"time"

	"paipu/runtime/replay/engines/mahjong"
)

// GameRecord 对局元数据（聚合根），_id 直接使用牌谱的 gameId
type GameRecord struct {
	ID              string                 `bson:"_id"`
	PlayerCount     int                    `bson:"player_count"`
	Players         []PlayerInfo           `bson:"players"`
	FinalScores     []int                  `bson:"final_scores"`
	StartTime       time.Time              `bson:"start_time"`
	EndTime         time.Time              `bson:"end_time"`
	Duration        int                    `bson:"duration"` // 秒
	RoundCount      int                    `bson:"round_count"`
	MaxDealerStreak int                    `bson:"max_dealer_streak"`
	Totals          []mahjong.PlayerTotals `bson:"totals"` // 按座位汇总
	CreatedAt       time.Time              `bson:"created_at"`
}

// PlayerInfo 座位上的玩家，Missing 表示牌谱里缺少该座位的账号
type PlayerInfo struct {
	SeatIndex int    `bson:"seat_index"`
	AccountID int64  `bson:"account_id"`
	Nickname  string `bson:"nickname,omitempty"`
	Missing   bool   `bson:"missing,omitempty"`
}

// NewGameRecord 从回放结果生成对局记录
func NewGameRecord(result *mahjong.GameResult) *GameRecord {
	players := make([]PlayerInfo, len(result.Players))
	for seat, p := range result.Players {
		if p == nil {
			players[seat] = PlayerInfo{SeatIndex: seat, Missing: true}
			continue
		}
		players[seat] = PlayerInfo{
			SeatIndex: seat,
			AccountID: p.AccountID,
			Nickname:  p.Nickname,
		}
	}

	record := &GameRecord{
		ID:              result.GameID,
		PlayerCount:     len(result.Players),
		Players:         players,
		FinalScores:     result.FinalScores,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		RoundCount:      len(result.Rounds),
		MaxDealerStreak: result.MaxDealerStreak,
		Totals:          mahjong.SumPlayerStats(result.Rounds, len(result.Players)),
		CreatedAt:       time.Now(),
	}
	if !result.EndTime.IsZero() && result.EndTime.After(result.StartTime) {
		record.Duration = int(result.EndTime.Sub(result.StartTime).Seconds())
	}
	return record
}

// ToGameResult 还原成回放结果，rounds 需按局序排列
func (gr *GameRecord) ToGameResult(rounds []*RoundRecord) *mahjong.GameResult {
	players := make([]*mahjong.Account, len(gr.Players))
	for _, p := range gr.Players {
		if p.Missing || p.SeatIndex < 0 || p.SeatIndex >= len(players) {
			continue
		}
		players[p.SeatIndex] = &mahjong.Account{
			AccountID: p.AccountID,
			Nickname:  p.Nickname,
			Seat:      p.SeatIndex,
		}
	}

	results := make([]mahjong.RoundResult, 0, len(rounds))
	for _, r := range rounds {
		results = append(results, r.Result)
	}

	return &mahjong.GameResult{
		GameID:          gr.ID,
		Rounds:          results,
		Players:         players,
		FinalScores:     gr.FinalScores,
		StartTime:       gr.StartTime,
		EndTime:         gr.EndTime,
		MaxDealerStreak: gr.MaxDealerStreak,
	}
}
