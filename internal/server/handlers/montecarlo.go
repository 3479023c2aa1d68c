package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
)

// MonteCarloRequest モンテカルロ試行リクエスト
// Config を省略するとセッションの設定で実行する。
type MonteCarloRequest struct {
	Metric string                  `json:"metric"`
	Config *model.MonteCarloConfig `json:"config"`
}

// MonteCarlo ドライバーを確率的に振って指標の分布を推定する
// POST /api/sessions/:id/montecarlo
func (h *Handler) MonteCarlo(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req MonteCarloRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	metric, ok := parseMetric(req.Metric)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な指標です: " + req.Metric})
		return
	}

	cfg := sess.MonteCarlo
	if req.Config != nil {
		cfg = *req.Config
		if _, err := h.store.UpdateMonteCarlo(sess.ID, cfg); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
			return
		}
	}

	for driver, dist := range cfg.Drivers {
		if _, ok := model.DriverLabels[driver]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不明なドライバーです: " + string(driver)})
			return
		}
		switch dist.Distribution {
		case model.DistributionNormal, model.DistributionTriangular, model.DistributionUniform:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "不明な分布です: " + dist.Distribution})
			return
		}
	}

	plan := sessionPlan(sess)
	result := calculator.MonteCarlo(plan, sess.Bundle, cfg, metric)

	c.JSON(http.StatusOK, result)
}
