package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
)

// SensitivityRequest 感度分析リクエスト
// Deltas を省略すると全ドライバー ±DeltaPct（既定5%）で実行する。
type SensitivityRequest struct {
	Metric   string                   `json:"metric"`
	DeltaPct float64                  `json:"deltaPct"`
	Deltas   map[model.Driver]float64 `json:"deltas"`
}

// Sensitivity 一要因ずつの感度分析（トルネード図）
// POST /api/sessions/:id/sensitivity
func (h *Handler) Sensitivity(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req SensitivityRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	metric, ok := parseMetric(req.Metric)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な指標です: " + req.Metric})
		return
	}

	deltas := req.Deltas
	if len(deltas) == 0 {
		deltaPct := req.DeltaPct
		if deltaPct <= 0 {
			deltaPct = 5
		}
		deltas = calculator.UniformDeltas(model.Drivers, deltaPct)
	}

	plan := sessionPlan(sess)
	entries := calculator.Sensitivity(plan, sess.Bundle, deltas, metric)

	c.JSON(http.StatusOK, gin.H{
		"metric":  string(metric),
		"label":   calculator.MetricLabels[metric],
		"entries": entries,
	})
}

// SensitivityCurveRequest 感度カーブのリクエスト
type SensitivityCurveRequest struct {
	Driver   model.Driver `json:"driver" binding:"required"`
	Metric   string       `json:"metric"`
	RangePct float64      `json:"rangePct"`
	Steps    int          `json:"steps"`
}

// SensitivityCurve 単一ドライバーを段階的に動かした指標カーブ
// POST /api/sessions/:id/sensitivity/curve
func (h *Handler) SensitivityCurve(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req SensitivityCurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}

	if _, ok := model.DriverLabels[req.Driver]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明なドライバーです: " + string(req.Driver)})
		return
	}

	metric, ok := parseMetric(req.Metric)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な指標です: " + req.Metric})
		return
	}

	rangePct := req.RangePct
	if rangePct <= 0 {
		rangePct = 10
	}
	steps := req.Steps
	if steps <= 0 {
		steps = 9
	}
	if steps > 101 {
		steps = 101
	}

	plan := sessionPlan(sess)
	points := calculator.SensitivityCurve(plan, sess.Bundle, req.Driver, rangePct, steps, metric)

	c.JSON(http.StatusOK, gin.H{
		"driver": req.Driver,
		"label":  model.DriverLabels[req.Driver],
		"metric": string(metric),
		"points": points,
	})
}

// parseMetric 指標名を解釈する（空なら経常利益）
func parseMetric(s string) (calculator.Metric, bool) {
	if s == "" {
		return calculator.MetricOrd, true
	}
	m := calculator.Metric(s)
	if _, ok := calculator.MetricLabels[m]; !ok {
		return "", false
	}
	return m, true
}
