package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"paipu/runtime/replay/engines/mahjong"
)

// RoundRecord 局记录（每局一个文档）
type RoundRecord struct {
	ID          primitive.ObjectID  `bson:"_id"`
	GameID      string              `bson:"game_id"`
	RoundNumber int                 `bson:"round_number"` // 从 0 开始，途中流局不占局数
	Result      mahjong.RoundResult `bson:"result"`
	CreatedAt   time.Time           `bson:"created_at"`
}

// NewRoundRecords 为一场对局的所有局生成记录
func NewRoundRecords(gameID string, rounds []mahjong.RoundResult) []*RoundRecord {
	now := time.Now()
	records := make([]*RoundRecord, 0, len(rounds))
	for i, r := range rounds {
		records = append(records, &RoundRecord{
			ID:          primitive.NewObjectID(),
			GameID:      gameID,
			RoundNumber: i,
			Result:      r,
			CreatedAt:   now,
		})
	}
	return records
}
