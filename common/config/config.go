package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"paipu/common/log"
)

var (
	mu        sync.RWMutex
	Conf      *Config
	listeners []func(*Config)
)

type Config struct {
	AppName      string       `mapstructure:"appName"`
	Log          LogConf      `mapstructure:"log"`
	HttpPort     int          `mapstructure:"httpPort"`
	MetricPort   int          `mapstructure:"metricPort"`
	DatabaseConf DatabaseConf `mapstructure:"database"`
	NatsConfig   NatsConfig   `mapstructure:"nats"`
	ReplayConf   ReplayConf   `mapstructure:"replay"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

type DatabaseConf struct {
	MongoConf MongoConf `mapstructure:"mongo"`
	RedisConf RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string   `mapstructure:"addr"`
	ClusterAddrs []string `mapstructure:"clusterAddrs"`
	Password     string   `mapstructure:"password"`
	PoolSize     int      `mapstructure:"poolSize"`
	MinIdleConns int      `mapstructure:"minIdleConns"`
}

// NatsConfig 回放队列
type NatsConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
	Queue   string `mapstructure:"queue"`
}

type ReplayConf struct {
	PlayerCount         int   `mapstructure:"playerCount"`
	CacheMaxCost        int64 `mapstructure:"cacheMaxCost"`
	CacheTTLSeconds     int   `mapstructure:"cacheTTLSeconds"`
	ShantenCacheMaxCost int64 `mapstructure:"shantenCacheMaxCost"` // 共享向听数缓存的条目上限
	Persist             bool  `mapstructure:"persist"`
	RateLimit           int   `mapstructure:"rateLimit"` // 回放接口每秒请求数，0 为不限流
	RateBurst           int   `mapstructure:"rateBurst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("appName", "paipu")
	v.SetDefault("log.level", "info")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("metricPort", 5854)
	v.SetDefault("database.mongo.url", "mongodb://localhost:27017")
	v.SetDefault("database.mongo.db", "paipu")
	v.SetDefault("database.mongo.username", "")
	v.SetDefault("database.mongo.password", "")
	v.SetDefault("database.mongo.minPoolSize", 2)
	v.SetDefault("database.mongo.maxPoolSize", 20)
	v.SetDefault("database.redis.addr", "localhost:6379")
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.poolSize", 10)
	v.SetDefault("database.redis.minIdleConns", 2)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject", "paipu.replay")
	v.SetDefault("nats.queue", "paipu-workers")
	v.SetDefault("replay.playerCount", 4)
	v.SetDefault("replay.cacheMaxCost", 1<<12)
	v.SetDefault("replay.cacheTTLSeconds", 600)
	v.SetDefault("replay.shantenCacheMaxCost", 1<<16)
	v.SetDefault("replay.persist", true)
	v.SetDefault("replay.rateLimit", 0)
	v.SetDefault("replay.rateBurst", 10)
}

// Load 读取配置文件，环境变量优先（database.mongo.url -> DATABASE_MONGO_URL），
// 工作目录下的 .env 会先被加载到环境变量中
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("加载 .env 出错: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件出错: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	set(cfg)

	if configFile != "" {
		v.OnConfigChange(func(in fsnotify.Event) {
			if err := reload(v); err != nil {
				log.Warn("配置热更新失败, 保留旧配置: file=%s, err=%v", in.Name, err)
				return
			}
			log.Info("配置已热更新: %s", in.Name)
		})
		v.WatchConfig()
	}
	return cfg, nil
}

// OnChange 注册热更新回调，只有通过校验的新配置才会触发
func OnChange(fn func(*Config)) {
	mu.Lock()
	listeners = append(listeners, fn)
	mu.Unlock()
}

// reload 重新解析并校验，失败时不替换当前配置
func reload(v *viper.Viper) error {
	next, err := decode(v)
	if err != nil {
		return err
	}
	set(next)

	mu.RLock()
	fns := append(([]func(*Config))(nil), listeners...)
	mu.RUnlock()
	for _, fn := range fns {
		fn(next)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件出错: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if n := c.ReplayConf.PlayerCount; n != 3 && n != 4 {
		return fmt.Errorf("replay.playerCount 只能是 3 或 4, got %d", n)
	}
	if c.ReplayConf.CacheMaxCost <= 0 {
		return fmt.Errorf("replay.cacheMaxCost 必须为正数")
	}
	if c.ReplayConf.ShantenCacheMaxCost <= 0 {
		return fmt.Errorf("replay.shantenCacheMaxCost 必须为正数")
	}
	if c.ReplayConf.RateLimit < 0 {
		return fmt.Errorf("replay.rateLimit 不能为负数")
	}
	return nil
}

func set(c *Config) {
	mu.Lock()
	Conf = c
	mu.Unlock()
}

// Current 当前生效的配置，热更新后返回新值
func Current() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return Conf
}
