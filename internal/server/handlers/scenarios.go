package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
)

// ListScenarios プリセット一覧
// GET /api/scenarios
func (h *Handler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": model.ScenarioPresets()})
}

// EvaluateScenario 単一プリセットを適用した計画を評価する
// POST /api/sessions/:id/scenarios/:key
func (h *Handler) EvaluateScenario(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	preset, ok := model.PresetByKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "不明なシナリオです: " + c.Param("key")})
		return
	}

	plan := sessionPlan(sess)
	result, amounts := calculator.EvaluateScenario(plan, sess.Bundle, calculator.DeltasFromPreset(preset))
	result.Key = preset.Key
	result.Code = preset.Code
	result.Name = preset.Name

	lines := make([]PlanLineView, 0, len(model.PlanLines))
	for _, line := range model.PlanLines {
		v := amounts.Get(line.Code)
		lines = append(lines, PlanLineView{
			Code:     line.Code,
			Label:    line.Label,
			Category: line.Category,
			Amount:   model.JSONFloat(v),
			Scaled:   model.JSONFloat(model.ScaleToUnit(v, sess.Settings.Unit)),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"preset": preset,
		"result": result,
		"lines":  lines,
	})
}

// CompareScenariosRequest シナリオ比較リクエスト
// Keys を省略すると baseline/best/worst の3本を比較する。
type CompareScenariosRequest struct {
	Keys []string `json:"keys"`
}

// CompareScenarios 複数プリセットを同一計画に適用して並べる
// POST /api/sessions/:id/scenarios/compare
func (h *Handler) CompareScenarios(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req CompareScenariosRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	keys := req.Keys
	if len(keys) == 0 {
		keys = []string{"baseline", "best", "worst"}
	}

	presets := make([]model.ScenarioPreset, 0, len(keys))
	for _, key := range keys {
		preset, ok := model.PresetByKey(key)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "不明なシナリオです: " + key})
			return
		}
		presets = append(presets, preset)
	}

	plan := sessionPlan(sess)
	results := calculator.CompareScenarios(plan, sess.Bundle, presets)

	c.JSON(http.StatusOK, gin.H{"results": results})
}
