package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
appName: paipu-test
httpPort: 9000
nats:
  subject: test.replay
replay:
  playerCount: 3
  cacheMaxCost: 100
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "paipu-test", cfg.AppName)
	require.Equal(t, 9000, cfg.HttpPort)
	require.Equal(t, "test.replay", cfg.NatsConfig.Subject)
	require.Equal(t, "paipu-workers", cfg.NatsConfig.Queue)
	require.Equal(t, 3, cfg.ReplayConf.PlayerCount)
	require.Equal(t, int64(100), cfg.ReplayConf.CacheMaxCost)
	require.Same(t, cfg, Current())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HTTPPORT", "9100")
	t.Setenv("DATABASE_MONGO_DB", "from_env")
	path := writeConfig(t, "httpPort: 9000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.HttpPort)
	require.Equal(t, "from_env", cfg.DatabaseConf.MongoConf.Db)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 4, cfg.ReplayConf.PlayerCount)
	require.Equal(t, "paipu.replay", cfg.NatsConfig.Subject)
}

func TestLoadRejectsPlayerCount(t *testing.T) {
	path := writeConfig(t, "replay:\n  playerCount: 5\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestReloadNotifiesOnlyValidConfig(t *testing.T) {
	path := writeConfig(t, "replay:\n  rateLimit: 5\n")
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.NoError(t, reload(v))

	var got []*Config
	OnChange(func(c *Config) { got = append(got, c) })

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\nreplay:\n  rateLimit: 20\n  rateBurst: 3\n"), 0o644))
	require.NoError(t, v.ReadInConfig())
	require.NoError(t, reload(v))
	require.Len(t, got, 1)
	require.Equal(t, 20, got[0].ReplayConf.RateLimit)
	require.Equal(t, "debug", got[0].Log.Level)
	require.Same(t, got[0], Current())

	// 校验失败时保留旧配置，也不通知
	require.NoError(t, os.WriteFile(path, []byte("replay:\n  playerCount: 5\n"), 0o644))
	require.NoError(t, v.ReadInConfig())
	require.Error(t, reload(v))
	require.Len(t, got, 1)
	require.Same(t, got[0], Current())
}
