package realtime

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"paipu/common/database"
	"paipu/common/log"
	"paipu/core/domain/repository"
)

const unparsableKey = "paipu:unparsable" // hash: gameID -> reason

var _ repository.ParseStatusRepository = (*RedisParseStatusRepository)(nil)

// RedisParseStatusRepository Redis 实现的解析状态仓储
type RedisParseStatusRepository struct {
	redis *database.RedisManager
}

func NewRedisParseStatusRepository(redis *database.RedisManager) *RedisParseStatusRepository {
	return &RedisParseStatusRepository{
		redis: redis,
	}
}

func (r *RedisParseStatusRepository) MarkUnparsable(ctx context.Context, gameID, reason string) error {
	cli, err := r.redis.GetClient()
	if err != nil {
		return err
	}
	if err := cli.HSet(ctx, unparsableKey, gameID, reason).Err(); err != nil {
		log.Error("标记牌谱无法解析失败: game=%s, err=%v", gameID, err)
		return repository.ErrRedis
	}
	return nil
}

func (r *RedisParseStatusRepository) IsUnparsable(ctx context.Context, gameID string) (bool, string, error) {
	cli, err := r.redis.GetClient()
	if err != nil {
		return false, "", err
	}
	reason, err := cli.HGet(ctx, unparsableKey, gameID).Result()
	if errors.Is(err, redis.Nil) {
		return false, "", nil
	}
	if err != nil {
		log.Error("查询牌谱解析状态失败: game=%s, err=%v", gameID, err)
		return false, "", repository.ErrRedis
	}
	return true, reason, nil
}
