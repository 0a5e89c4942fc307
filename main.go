package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"lumitex/internal/config"
	"lumitex/internal/server"
)

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lumitex",
		Short: "LumiTex のWebサイトを配信する",
		Long: `LumiTex のWebサイトを配信する静的Webサーバー。

環境変数:
  PORT       リッスンするポート (デフォルト: 3000)
  HOST       リッスンするホスト (デフォルト: すべて)
  SITE_ROOT  配信するディレクトリ (デフォルト: カレントディレクトリ)
  LOG_LEVEL  ログレベル (デフォルト: info)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 設定を読み込む
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logrus.SetLevel(cfg.LogLevel())

			// サーバーを作成
			srv, err := server.New(cfg)
			if err != nil {
				return err
			}

			// サーバーを起動
			return srv.Start(cmd.Context())
		},
	}
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	gin.SetMode(gin.ReleaseMode)

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logrus.Errorf("サーバーの起動に失敗しました: %v", err)
		os.Exit(1)
	}
}
