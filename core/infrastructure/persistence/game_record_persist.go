package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"paipu/common/database"
	"paipu/common/log"
	"paipu/core/domain/entity"
	"paipu/core/domain/repository"
)

const (
	gameRecordCollection  = "game_records"
	roundRecordCollection = "round_records"
)

var _ repository.GameRecordRepository = (*GameRecordRepository)(nil)

type GameRecordRepository struct {
	mongo *database.MongoManager
}

func NewGameRecordRepository(mongo *database.MongoManager) *GameRecordRepository {
	return &GameRecordRepository{mongo: mongo}
}

// EnsureIndexes 局记录按 (game_id, round_number) 查询
func (r *GameRecordRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.mongo.Db.Collection(roundRecordCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "game_id", Value: 1}, {Key: "round_number", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: 创建索引失败: %v", repository.ErrMongodb, err)
	}
	return nil
}

// SaveGameRecord 保存对局元数据，重复回放时覆盖
func (r *GameRecordRepository) SaveGameRecord(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	doc := bson.M{
		"_id":               record.ID,
		"player_count":      record.PlayerCount,
		"players":           r.playersToBson(record.Players),
		"final_scores":      record.FinalScores,
		"start_time":        record.StartTime,
		"end_time":          record.EndTime,
		"duration":          record.Duration,
		"round_count":       record.RoundCount,
		"max_dealer_streak": record.MaxDealerStreak,
		"totals":            record.Totals,
		"created_at":        record.CreatedAt,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": record.ID}, doc, opts); err != nil {
		log.Error("保存对局记录失败: game=%s, err=%v", record.ID, err)
		return repository.ErrMongodb
	}
	return nil
}

func (r *GameRecordRepository) FindGameRecord(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	collection := r.mongo.Db.Collection(gameRecordCollection)

	var record entity.GameRecord
	err := collection.FindOne(ctx, bson.M{"_id": gameID}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrGameRecordNotFound
		}
		log.Error("查询对局记录失败: game=%s, err=%v", gameID, err)
		return nil, repository.ErrMongodb
	}
	return &record, nil
}

// SaveRoundRecords 先删后插（InsertMany），保证重复回放后局记录不重复
func (r *GameRecordRepository) SaveRoundRecords(ctx context.Context, gameID string, rounds []*entity.RoundRecord) error {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	if _, err := collection.DeleteMany(ctx, bson.M{"game_id": gameID}); err != nil {
		log.Error("清理旧局记录失败: game=%s, err=%v", gameID, err)
		return repository.ErrMongodb
	}

	docs := make([]any, 0, len(rounds))
	for _, round := range rounds {
		if round == nil {
			continue
		}
		docs = append(docs, round)
	}
	if len(docs) == 0 {
		return nil
	}

	if _, err := collection.InsertMany(ctx, docs); err != nil {
		log.Error("批量保存局记录失败: game=%s, err=%v", gameID, err)
		return repository.ErrMongodb
	}
	log.Info("批量保存局记录成功: game=%s, count=%d", gameID, len(docs))
	return nil
}

func (r *GameRecordRepository) FindRoundRecords(ctx context.Context, gameID string) ([]*entity.RoundRecord, error) {
	collection := r.mongo.Db.Collection(roundRecordCollection)

	opts := options.Find().SetSort(bson.M{"round_number": 1})
	cursor, err := collection.Find(ctx, bson.M{"game_id": gameID}, opts)
	if err != nil {
		log.Error("查询局记录失败: game=%s, err=%v", gameID, err)
		return nil, repository.ErrMongodb
	}
	defer cursor.Close(ctx)

	var rounds []*entity.RoundRecord
	if err := cursor.All(ctx, &rounds); err != nil {
		log.Error("解析局记录失败: game=%s, err=%v", gameID, err)
		return nil, repository.ErrMongodb
	}
	return rounds, nil
}

func (r *GameRecordRepository) playersToBson(players []entity.PlayerInfo) []bson.M {
	result := make([]bson.M, len(players))
	for i, p := range players {
		result[i] = bson.M{
			"seat_index": p.SeatIndex,
			"account_id": p.AccountID,
			"nickname":   p.Nickname,
			"missing":    p.Missing,
		}
	}
	return result
}
