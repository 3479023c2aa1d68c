package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
)

// SolveRequest 目標利益の逆算リクエスト
type SolveRequest struct {
	TargetOrd float64 `json:"targetOrd"`        // 目標経常利益(円)
	Field     string  `json:"field"`            // 調整対象（sales または科目コード）
	Low       float64 `json:"low,omitempty"`    // 探索下限（省略時は自動）
	High      float64 `json:"high,omitempty"`   // 探索上限（省略時は自動）
	Bounded   bool    `json:"bounded,omitempty"`
}

// SolveResponse 逆算結果
// Delta は現在値からの増減を表示単位で整形したもの。
type SolveResponse struct {
	Result model.SolverResult `json:"result"`
	Field  string             `json:"field"`
	Label  string             `json:"label"`
	Delta  string             `json:"delta"`
}

// Solve 目標経常利益に到達する調整対象の値を二分探索で逆算する
// POST /api/sessions/:id/solve
func (h *Handler) Solve(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}
	if math.IsNaN(req.TargetOrd) || math.IsInf(req.TargetOrd, 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "目標利益が不正です"})
		return
	}

	field := calculator.AdjustableField(req.Field)
	if req.Field == "" {
		field = calculator.AdjustSales
	}
	if !calculator.ValidAdjustField(field) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "調整対象にできない項目です: " + req.Field})
		return
	}

	plan := sessionPlan(sess)

	var result model.SolverResult
	if req.Bounded {
		if req.Low >= req.High {
			c.JSON(http.StatusBadRequest, gin.H{"error": "探索区間が不正です"})
			return
		}
		result = calculator.SolveWithBounds(plan, req.TargetOrd, field, req.Low, req.High, nil)
	} else {
		result = calculator.Solve(plan, req.TargetOrd, field)
	}

	result.Value = model.RoundYen(result.Value)
	result.Achieved = model.RoundYen(result.Achieved)

	label := "売上高"
	current := plan.BaseSales
	if field != calculator.AdjustSales {
		label = model.LineLabel(model.LineCode(field))
		current = calculator.Compute(plan, calculator.ComputeOptions{}).Get(model.LineCode(field))
	}

	c.JSON(http.StatusOK, SolveResponse{
		Result: result,
		Field:  string(field),
		Label:  label,
		Delta:  model.FormatDelta(result.Value-current, sess.Settings.Unit),
	})
}
