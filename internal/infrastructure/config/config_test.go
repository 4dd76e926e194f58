package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	t.Setenv("BOOKCATALOG_ENV", "")

	t.Run("没有配置文件时使用默认值", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.Mode)
		assert.True(t, cfg.Server.Swagger, "非release模式默认开启swagger")
		assert.Equal(t, DriverMySQL, cfg.Database.Driver)
		assert.True(t, cfg.Database.AutoMigrate)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("读取YAML", func(t *testing.T) {
		dir := writeConfig(t, `
server:
  port: 9090
  mode: release
database:
  driver: sqlite
  dbname: /tmp/books.db
cache:
  enabled: true
  ttl: 30s
`)
		cfg, err := Load(dir)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.False(t, cfg.Server.Swagger, "release模式默认关闭swagger")
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/books.db", cfg.Database.DSN())
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.Equal(t, "info", cfg.Log.Level, "未配置的字段保持默认值")
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "s3cret")
		t.Setenv("BOOKCATALOG_SERVER_PORT", "7000")
		t.Setenv("BOOKCATALOG_SERVER_SWAGGER", "false")

		cfg, err := Load(writeConfig(t, "server:\n  port: 9090\n"))
		require.NoError(t, err)

		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, 7000, cfg.Server.Port)
		assert.False(t, cfg.Server.Swagger)
	})

	t.Run("非法配置", func(t *testing.T) {
		testCases := map[string]string{
			"端口越界":   "server:\n  port: 70000\n",
			"未知驱动":   "database:\n  driver: oracle\n",
			"未知日志级别": "log:\n  level: loud\n",
			"未知模式":   "server:\n  mode: prod\n",
			"采样比例越界": "tracing:\n  sample_ratio: 2\n",
		}
		for name, content := range testCases {
			t.Run(name, func(t *testing.T) {
				_, err := Load(writeConfig(t, content))
				assert.Error(t, err)
			})
		}
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverMySQL, Host: "db", Port: 3306, User: "root", Password: "pw",
			DBName: "books", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai",
		}
		assert.Equal(t, "root:pw@tcp(db:3306)/books?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
	})

	t.Run("postgres", func(t *testing.T) {
		d := DatabaseConfig{
			Driver: DriverPostgres, Host: "pg", Port: 5432, User: "app", Password: "pw",
			DBName: "books", SSLMode: "disable",
		}
		assert.Equal(t, "host=pg port=5432 user=app password=pw dbname=books sslmode=disable TimeZone=UTC", d.DSN())
	})
}
