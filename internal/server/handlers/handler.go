package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/config"
	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
	"keieiplan/internal/service/store"
)

// Handler API 処理器
type Handler struct {
	store     *store.MemoryStore
	cfg       *config.AppConfig
	startedAt time.Time
	downloads *exportDownloadStore
}

// NewHandler API 処理器を作成
func NewHandler(st *store.MemoryStore, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		startedAt: time.Now(),
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes API ルートを登録
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// システム状態
	router.GET("/status", h.GetStatus)

	// セッション管理
	router.POST("/sessions", h.CreateSession)
	router.GET("/sessions/:id", h.GetSession)
	router.DELETE("/sessions/:id", h.DeleteSession)
	router.POST("/sessions/:id/reset", h.ResetSession)
	router.PATCH("/sessions/:id/settings", h.UpdateSettings)

	// 計画数値
	router.GET("/sessions/:id/plan", h.GetPlan)
	router.PUT("/sessions/:id/bundle", h.UpdateBundle)
	router.PUT("/sessions/:id/overrides", h.SetOverride)
	router.DELETE("/sessions/:id/overrides/:code", h.ClearOverride)
	router.PATCH("/sessions/:id/working-capital", h.UpdateWorkingCapital)

	// 逆算・分析
	router.POST("/sessions/:id/solve", h.Solve)
	router.POST("/sessions/:id/sensitivity", h.Sensitivity)
	router.POST("/sessions/:id/sensitivity/curve", h.SensitivityCurve)
	router.POST("/sessions/:id/montecarlo", h.MonteCarlo)

	// シナリオ
	router.GET("/scenarios", h.ListScenarios)
	router.POST("/sessions/:id/scenarios/compare", h.CompareScenarios)
	router.POST("/sessions/:id/scenarios/:key", h.EvaluateScenario)

	// 業種テンプレート
	router.GET("/templates", h.ListTemplates)
	router.POST("/sessions/:id/templates/:key", h.ApplyTemplate)

	// Excel 出力
	router.POST("/sessions/:id/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}

// sessionOf パスの :id からセッションを取り出す
// 見つからなければ 404 を返し、nil を返す。
func (h *Handler) sessionOf(c *gin.Context) *store.Session {
	sess, err := h.store.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return nil
	}
	return sess
}

// bindOptionalJSON ボディ省略可のリクエストを読む
// ボディが空なら obj をゼロ値のままにして true を返す。
func bindOptionalJSON(c *gin.Context, obj any) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return false
	}
	return true
}

// sessionPlan セッションの財務入力と金額上書きから計画モデルを組み立てる
// 逆算・感度分析・シナリオも同じ計画を使い、上書き優先のルールを共有する。
func sessionPlan(sess *store.Session) *model.PlanConfig {
	plan := calculator.BuildPlan(sess.Bundle, sess.Settings.FTE, sess.Settings.Unit)
	if len(sess.Overrides) > 0 {
		plan.Overrides = sess.Overrides
	}
	return plan
}

// computeSession セッションの現在値で損益を計算する
func computeSession(sess *store.Session) (*model.PlanConfig, model.Amounts, model.Metrics) {
	plan := sessionPlan(sess)
	amounts := calculator.Compute(plan, calculator.ComputeOptions{})
	metrics := calculator.Summarize(plan, amounts)
	return plan, amounts, metrics
}
