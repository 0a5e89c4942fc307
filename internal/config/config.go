package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Site   SiteConfig   `yaml:"site"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト（空なら全インターフェース）
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SiteConfig は配信するサイトの設定
type SiteConfig struct {
	Root      string `yaml:"root"`       // ドキュメントルート
	StaticDir string `yaml:"static_dir"` // /static で配信するサブディレクトリ
	IndexFile string `yaml:"index_file"` // SPAのフォールバック文書

	RootMaxAge   time.Duration `yaml:"root_max_age"`
	StaticMaxAge time.Duration `yaml:"static_max_age"`
}

// LogConfig はログ出力の設定
type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultPort は PORT が未設定のときに使うポート
const DefaultPort = 3000

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	port, err := getEnvAsIntOrDefault("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}

	root := getEnvOrDefault("SITE_ROOT", ".")
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("ドキュメントルートの解決に失敗: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnvOrDefault("HOST", ""),
			Port:            port,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Site: SiteConfig{
			Root:         absRoot,
			StaticDir:    "static",
			IndexFile:    "index.html",
			RootMaxAge:   24 * time.Hour,
			StaticMaxAge: 7 * 24 * time.Hour,
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("無効なログレベル: %w", err)
	}

	info, err := os.Stat(c.Site.Root)
	if err != nil {
		return fmt.Errorf("ドキュメントルートが見つかりません: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("ドキュメントルートがディレクトリではありません: %s", c.Site.Root)
	}

	if c.Site.IndexFile == "" {
		return fmt.Errorf("フォールバック文書が設定されていません")
	}

	return nil
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// StaticRoot は /static 配下のファイルを置くディレクトリを返す
func (c *Config) StaticRoot() string {
	return filepath.Join(c.Site.Root, c.Site.StaticDir)
}

// IndexPath はフォールバック文書のパスを返す
func (c *Config) IndexPath() string {
	return filepath.Join(c.Site.Root, c.Site.IndexFile)
}

// LogLevel は検証済みのログレベルを返す
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("環境変数 %s が整数ではありません: %q", key, value)
	}
	return intVal, nil
}
