package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  mode: release
storage:
  driver: memory
database:
  host: db
  port: 3306
  user: root
  password: secret
  dbname: bookstore
  loc: Asia/Shanghai
redis:
  enabled: true
  host: cache
  port: 6380
`

// writeConfig 在临时目录下写入config/<name>并切换工作目录
func writeConfig(t *testing.T, name, content string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", name), []byte(content), 0o644))
	chdir(t, dir)
}

func TestLoad(t *testing.T) {
	writeConfig(t, "config.yaml", sampleYAML)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr())

	// 未配置的项使用默认值
	assert.Equal(t, 10*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "bookstore.inventory", cfg.MQ.Exchange)
	assert.Equal(t, "topic", cfg.MQ.ExchangeType)
	assert.Equal(t, uint32(5), cfg.MQ.BreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.MQ.BreakerTimeout)
	assert.Equal(t, "bookstore-inventory", cfg.Tracing.ServiceName)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	writeConfig(t, "config.yaml", sampleYAML)
	t.Setenv("BOOKSTORE_SERVER_PORT", "7070")
	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKSTORE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvSpecificFile(t *testing.T) {
	writeConfig(t, "config.test.yaml", "server:\n  port: 6060\nstorage:\n  driver: memory\n")
	t.Setenv("BOOKSTORE_ENV", "test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidDriver(t *testing.T) {
	writeConfig(t, "config.yaml", "storage:\n  driver: sqlite\n")

	_, err := Load()
	assert.ErrorContains(t, err, "sqlite")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Storage: StorageConfig{Driver: StorageMySQL},
		}
	}

	require.NoError(t, validate(valid()))

	tests := map[string]func(*Config){
		"端口为0":     func(c *Config) { c.Server.Port = 0 },
		"端口超出范围":   func(c *Config) { c.Server.Port = 70000 },
		"存储驱动为空":   func(c *Config) { c.Storage.Driver = "" },
		"限流rps为0":  func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, RPS: 0, Burst: 1} },
		"限流burst为0": func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, RPS: 1, Burst: 0} },
		"MQ缺少url":   func(c *Config) { c.MQ = MQConfig{Enabled: true, BreakerFailures: 5} },
		"MQ熔断阈值为0": func(c *Config) { c.MQ = MQConfig{Enabled: true, URL: "amqp://localhost"} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}

	// 未启用时不校验
	cfg := valid()
	cfg.RateLimit = RateLimitConfig{Enabled: false}
	cfg.MQ = MQConfig{Enabled: false}
	assert.NoError(t, validate(cfg))
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw",
		DBName: "bookstore", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
	}
	assert.Equal(t,
		"root:pw@tcp(127.0.0.1:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.DSN())
}

// chdir 切换工作目录并在测试结束时恢复（等价于Go 1.24的t.Chdir）
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
