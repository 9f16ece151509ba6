package container

import (
	"context"

	"paipu/common/config"
	"paipu/common/database"
	"paipu/common/log"
)

// BaseContainer 基础容器，管理数据库连接
type BaseContainer struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

func NewBase(ctx context.Context, conf config.DatabaseConf) (*BaseContainer, error) {
	mongo, err := database.NewMongo(ctx, conf.MongoConf)
	if err != nil {
		return nil, err
	}
	redis, err := database.NewRedis(ctx, conf.RedisConf)
	if err != nil {
		_ = mongo.Close()
		return nil, err
	}

	log.Info("mongodb、redis 数据库服务启动成功")
	return &BaseContainer{
		mongo: mongo,
		redis: redis,
	}, nil
}

func (c *BaseContainer) GetMongo() *database.MongoManager {
	return c.mongo
}

func (c *BaseContainer) GetRedis() *database.RedisManager {
	return c.redis
}

func (c *BaseContainer) Close() error {
	e1 := c.mongo.Close()
	e2 := c.redis.Close()
	if e1 != nil {
		log.Error("mongo 关闭失败: %v", e1)
	}
	if e2 != nil {
		log.Error("redis 关闭失败: %v", e2)
	}
	if e1 != nil {
		return e1
	}
	return e2
}
