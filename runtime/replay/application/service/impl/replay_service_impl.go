package impl

import (
	"context"
	"errors"
	"fmt"

	"paipu/common/cache"
	"paipu/common/log"
	"paipu/core/domain/entity"
	"paipu/core/domain/repository"
	"paipu/runtime/replay/application/service"
	"paipu/runtime/replay/codec"
	"paipu/runtime/replay/engines/mahjong"
)

type ReplayServiceImpl struct {
	playerCount int
	shanten     mahjong.ShantenCalculator       // 为 nil 时每次回放新建 Searcher
	records     repository.GameRecordRepository // 为 nil 时不落库
	status      repository.ParseStatusRepository
	cache       *cache.GeneralCache
}

type Option func(*ReplayServiceImpl)

func WithRecords(repo repository.GameRecordRepository) Option {
	return func(s *ReplayServiceImpl) {
		s.records = repo
	}
}

func WithParseStatus(repo repository.ParseStatusRepository) Option {
	return func(s *ReplayServiceImpl) {
		s.status = repo
	}
}

func WithCache(c *cache.GeneralCache) Option {
	return func(s *ReplayServiceImpl) {
		s.cache = c
	}
}

// WithShantenCache 所有回放共用一个 Searcher，向听数缓存放在有容量上限的 ristretto 里
func WithShantenCache(c *cache.GeneralCache) Option {
	return func(s *ReplayServiceImpl) {
		s.shanten = mahjong.NewSearcherWithCache(&shantenCache{cache: c})
	}
}

// shantenCache 把 GeneralCache 适配成 mahjong.ShantenCache，每个 key 记 1 个 cost
type shantenCache struct {
	cache *cache.GeneralCache
}

func (c *shantenCache) Get(key string) (int, bool) {
	v, ok := c.cache.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

func (c *shantenCache) Set(key string, shanten int) {
	c.cache.SetAsync(key, shanten, 1)
}

func NewReplayService(playerCount int, opts ...Option) service.ReplayService {
	s := &ReplayServiceImpl{
		playerCount: playerCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReplayServiceImpl) ReplayLog(ctx context.Context, data []byte) (*mahjong.GameResult, error) {
	gameLog, err := codec.Decode(data, s.playerCount)
	if err != nil {
		return nil, err
	}
	return s.ReplayGame(ctx, gameLog)
}

func (s *ReplayServiceImpl) ReplayGame(ctx context.Context, gameLog *codec.GameLog) (*mahjong.GameResult, error) {
	gameID := gameLog.Meta.GameID

	if s.status != nil {
		marked, reason, err := s.status.IsUnparsable(ctx, gameID)
		if err != nil {
			return nil, err
		}
		if marked {
			return nil, fmt.Errorf("%w: game=%s, %s", repository.ErrUnparsable, gameID, reason)
		}
	}

	replayOpts := []mahjong.Option{mahjong.WithPlayerCount(gameLog.PlayerCount)}
	if s.shanten != nil {
		replayOpts = append(replayOpts, mahjong.WithShanten(s.shanten))
	}
	replay, err := mahjong.ReplayEvents(gameLog.Events, replayOpts...)
	if err != nil {
		log.Error("牌谱回放失败: game=%s, err=%v", gameID, err)
		if errors.Is(err, mahjong.ErrMalformedLog) || errors.Is(err, mahjong.ErrInvalidPlayers) {
			s.markUnparsable(ctx, gameID, err)
		}
		return nil, err
	}

	result := mahjong.AssembleGameResult(gameLog.Meta, replay, gameLog.PlayerCount)
	log.Info("牌谱回放完成: game=%s, rounds=%d, maxDealerStreak=%d", gameID, len(result.Rounds), result.MaxDealerStreak)

	if s.records != nil {
		if err := s.persist(ctx, result); err != nil {
			return nil, err
		}
	}
	s.cacheResult(result)
	return result, nil
}

func (s *ReplayServiceImpl) FindGame(ctx context.Context, gameID string) (*mahjong.GameResult, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(gameID); ok {
			if result, ok := v.(*mahjong.GameResult); ok {
				return result, nil
			}
		}
	}
	if s.records == nil {
		return nil, repository.ErrGameRecordNotFound
	}

	record, err := s.records.FindGameRecord(ctx, gameID)
	if err != nil {
		return nil, err
	}
	rounds, err := s.records.FindRoundRecords(ctx, gameID)
	if err != nil {
		return nil, err
	}
	result := record.ToGameResult(rounds)
	s.cacheResult(result)
	return result, nil
}

func (s *ReplayServiceImpl) persist(ctx context.Context, result *mahjong.GameResult) error {
	if err := s.records.SaveGameRecord(ctx, entity.NewGameRecord(result)); err != nil {
		return err
	}
	return s.records.SaveRoundRecords(ctx, result.GameID, entity.NewRoundRecords(result.GameID, result.Rounds))
}

// markUnparsable 标记失败只记日志，不影响返回的回放错误
func (s *ReplayServiceImpl) markUnparsable(ctx context.Context, gameID string, cause error) {
	if s.status == nil {
		return
	}
	if err := s.status.MarkUnparsable(ctx, gameID, cause.Error()); err != nil {
		log.Warn("标记牌谱无法解析失败: game=%s, err=%v", gameID, err)
	}
}

func (s *ReplayServiceImpl) cacheResult(result *mahjong.GameResult) {
	if s.cache == nil {
		return
	}
	// cost 按局数估算
	s.cache.Set(result.GameID, result, int64(len(result.Rounds)+1))
}
