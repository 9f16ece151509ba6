package container

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"paipu/common/cache"
	"paipu/common/config"
	"paipu/common/log"
	"paipu/core/infrastructure/persistence"
	"paipu/core/infrastructure/realtime"
	"paipu/runtime/replay"
	"paipu/runtime/replay/application/service"
	"paipu/runtime/replay/application/service/impl"
)

// ReplayContainer analyzer 服务的依赖
// replay.persist 关闭时不连接数据库，只使用本地缓存
type ReplayContainer struct {
	*BaseContainer
	Cache         *cache.GeneralCache
	ShantenCache  *cache.GeneralCache
	ReplayService service.ReplayService
	Worker        *replay.Worker

	closed bool
	mu     sync.Mutex
}

func NewReplayContainer(ctx context.Context, conf *config.Config) (*ReplayContainer, error) {
	replayConf := conf.ReplayConf
	resultCache, err := cache.NewGeneralCache(replayConf.CacheMaxCost, time.Duration(replayConf.CacheTTLSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	// 向听数只和手牌有关，不过期，靠容量淘汰
	shantenCache, err := cache.NewGeneralCache(replayConf.ShantenCacheMaxCost, 0)
	if err != nil {
		resultCache.Close()
		return nil, err
	}

	c := &ReplayContainer{Cache: resultCache, ShantenCache: shantenCache}
	opts := []impl.Option{impl.WithCache(resultCache), impl.WithShantenCache(shantenCache)}

	if replayConf.Persist {
		base, err := NewBase(ctx, conf.DatabaseConf)
		if err != nil {
			resultCache.Close()
			shantenCache.Close()
			return nil, fmt.Errorf("基础容器初始化失败: %w", err)
		}
		c.BaseContainer = base

		records := persistence.NewGameRecordRepository(base.mongo)
		if err := records.EnsureIndexes(ctx); err != nil {
			log.Warn("创建索引失败: %v", err)
		}
		opts = append(opts,
			impl.WithRecords(records),
			impl.WithParseStatus(realtime.NewRedisParseStatusRepository(base.redis)),
		)
	}

	c.ReplayService = impl.NewReplayService(replayConf.PlayerCount, opts...)
	c.Worker = replay.NewWorker(c.ReplayService, conf.NatsConfig, runtime.NumCPU())
	return c, nil
}

// Close 幂等，先停 worker 再关数据库
func (c *ReplayContainer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if c.Worker != nil {
		c.Worker.Close()
	}
	c.Cache.Close()
	c.ShantenCache.Close()
	if c.BaseContainer != nil {
		if err := c.BaseContainer.Close(); err != nil {
			return err
		}
	}
	log.Info("ReplayContainer 已关闭")
	return nil
}
