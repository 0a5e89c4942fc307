package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

// TestConfigLoad はデフォルト設定の読み込みをテストする
func TestConfigLoad(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HOST", "")
	t.Setenv("SITE_ROOT", t.TempDir())
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	assert.NilError(t, err)

	assert.Check(t, is.Equal(cfg.Server.Port, DefaultPort))
	assert.Check(t, is.Equal(cfg.Server.Host, ""))
	assert.Check(t, cfg.Server.ReadTimeout > 0)
	assert.Check(t, cfg.Server.ShutdownTimeout > 0)

	assert.Check(t, is.Equal(cfg.Site.StaticDir, "static"))
	assert.Check(t, is.Equal(cfg.Site.IndexFile, "index.html"))
	assert.Check(t, is.Equal(cfg.Site.RootMaxAge, 24*time.Hour))
	assert.Check(t, is.Equal(cfg.Site.StaticMaxAge, 7*24*time.Hour))
	assert.Check(t, is.Equal(cfg.LogLevel(), logrus.InfoLevel))
}

// TestEnvironmentVariables は環境変数の処理をテストする
func TestEnvironmentVariables(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PORT", "4000")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("SITE_ROOT", root)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	assert.NilError(t, err)

	assert.Check(t, is.Equal(cfg.Server.Port, 4000))
	assert.Check(t, is.Equal(cfg.ServerAddress(), "127.0.0.1:4000"))
	assert.Check(t, is.Equal(cfg.Site.Root, root))
	assert.Check(t, is.Equal(cfg.StaticRoot(), filepath.Join(root, "static")))
	assert.Check(t, is.Equal(cfg.IndexPath(), filepath.Join(root, "index.html")))
	assert.Check(t, is.Equal(cfg.LogLevel(), logrus.DebugLevel))
}

func TestLoadErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.html")
	assert.NilError(t, os.WriteFile(file, []byte("<html></html>"), 0o644))

	testCases := []struct {
		name string
		env  map[string]string
	}{
		{"整数でないポート", map[string]string{"PORT": "abc"}},
		{"範囲外のポート", map[string]string{"PORT": "70000"}},
		{"不明なログレベル", map[string]string{"LOG_LEVEL": "loud"}},
		{"存在しないルート", map[string]string{"SITE_ROOT": filepath.Join(t.TempDir(), "missing")}},
		{"ファイルのルート", map[string]string{"SITE_ROOT": file}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PORT", "")
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("SITE_ROOT", t.TempDir())
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Check(t, err != nil, "エラーが期待されました")
		})
	}
}

// TestServerAddress はサーバーアドレスの生成をテストする
func TestServerAddress(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{
			Host: "192.168.1.100",
			Port: 9090,
		},
	}

	assert.Check(t, is.Equal(cfg.ServerAddress(), "192.168.1.100:9090"))

	cfg.Server.Host = ""
	assert.Check(t, is.Equal(cfg.ServerAddress(), ":9090"))
}
