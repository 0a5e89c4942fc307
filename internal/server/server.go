package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lumitex/internal/config"
	"lumitex/internal/security"
	"lumitex/internal/static"
)

// Server はHTTPサーバーを管理する構造体
type Server struct {
	config     *config.Config
	httpServer *http.Server
	handler    http.Handler
	log        *logrus.Logger
}

// Option はServerの生成オプション
type Option func(*Server)

// WithLogger は使用するロガーを差し替える
func WithLogger(l *logrus.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	s := &Server{
		config: cfg,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	handler, err := s.buildHandler()
	if err != nil {
		return nil, err
	}
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:         cfg.ServerAddress(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s, nil
}

// Handler は組み立て済みのハンドラを返す
func (s *Server) Handler() http.Handler {
	return s.handler
}

// buildHandler はミドルウェアとルーティングを組み立てる。
// 外側から順に セキュリティヘッダー、圧縮、CORS、静的ファイル、フォールバック。
func (s *Server) buildHandler() (http.Handler, error) {
	compress, err := CompressionMiddleware()
	if err != nil {
		return nil, err
	}

	engine := s.newEngine()

	stack := MiddlewareStack{
		security.Middleware(security.DefaultPolicy()),
		compress,
	}
	return stack.Then(engine), nil
}

// newEngine はCORSと静的ファイル配信を行うginエンジンを作成する
func (s *Server) newEngine() *gin.Engine {
	site := s.config.Site
	staticPrefix := "/" + site.StaticDir

	rootTier := static.Tier{
		Prefix: "/",
		Dir:    site.Root,
		MaxAge: site.RootMaxAge,
		Index:  site.IndexFile,
	}.Excluding(staticPrefix)

	staticTier := static.Tier{
		Prefix: staticPrefix,
		Dir:    s.config.StaticRoot(),
		MaxAge: site.StaticMaxAge,
		Index:  site.IndexFile,
	}

	engine := gin.New()
	engine.Use(
		requestLogger(s.log),
		errorHandler(s.log),
		corsMiddleware(),
		rootTier.Handler(),
		staticTier.Handler(),
	)
	engine.NoRoute(static.Fallback(s.config.IndexPath()))
	return engine
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("ポートのリッスンに失敗: %w", err)
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	s.log.Infof("LumiTex サイトを起動しました: http://localhost:%d", s.config.Server.Port)
	s.log.Infof("配信ディレクトリ: %s", s.config.Site.Root)
	s.log.Info("Ctrl+C でサーバーを停止します")

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case <-ctx.Done():
		s.log.Info("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		s.log.Infof("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *Server) Shutdown() error {
	s.log.Info("サーバーをシャットダウンしています...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	s.log.Info("サーバーが正常にシャットダウンされました")
	return nil
}
