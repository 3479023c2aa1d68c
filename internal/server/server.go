package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"keieiplan/internal/config"
	"keieiplan/internal/server/handlers"
	"keieiplan/internal/service/store"
)

// Server HTTP サーバー
type Server struct {
	router *gin.Engine
	store  *store.MemoryStore
	api    *handlers.Handler
	log    zerolog.Logger
}

// NewServer サーバーを作成
func NewServer(cfg *config.AppConfig, log zerolog.Logger) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore(store.Settings{
		Unit:       cfg.Business.Unit,
		FTE:        cfg.Business.FTE,
		FiscalYear: cfg.Business.FiscalYear,
	})

	apiHandler := handlers.NewHandler(memStore, cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router: router,
		store:  memStore,
		api:    apiHandler,
		log:    log,
	}

	s.setupRoutes(devMode)

	return s
}

// setupRoutes ルートを設定
func (s *Server) setupRoutes(devMode bool) {
	// リクエストログ
	s.router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API ルート
	api := s.router.Group("/api")
	{
		s.api.RegisterRoutes(api)
	}

	if devMode {
		// 開発モード：フロントエンドの開発サーバーへ誘導
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	// トップページ（API の案内のみ）
	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name": "経営計画スタジオ",
			"api":  "/api",
		})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "ページが見つかりません"})
	})
}

// Run サーバーを起動
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router ルーターを取得（テスト用）
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GetStore ストアを取得（テスト用）
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}
