package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
)

// PlanLineView 損益計算書の1行分（表示単位換算済みの値も併せて返す）
type PlanLineView struct {
	Code       model.LineCode  `json:"code"`
	Label      string          `json:"label"`
	Category   string          `json:"category"`
	Amount     model.JSONFloat `json:"amount"`     // 円
	Scaled     model.JSONFloat `json:"scaled"`     // 表示単位
	Overridden bool            `json:"overridden"` // 金額直接指定されているか
}

// PlanResponse 計画の計算結果一式
type PlanResponse struct {
	SessionID  string             `json:"sessionId"`
	Unit       string             `json:"unit"`
	FiscalYear int                `json:"fiscalYear"`
	FTE        float64            `json:"fte"`
	Lines      []PlanLineView     `json:"lines"`
	Metrics    model.Metrics      `json:"metrics"`
	CashFlow   model.CashFlow     `json:"cashFlow"`
	Balance    model.BalanceSheet `json:"balance"`
	Warnings   []string           `json:"warnings"`
}

// GetPlan 現在の計画を計算して返す
// GET /api/sessions/:id/plan
func (h *Handler) GetPlan(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	plan, amounts, metrics := computeSession(sess)

	lines := make([]PlanLineView, 0, len(model.PlanLines))
	for _, line := range model.PlanLines {
		v := amounts.Get(line.Code)
		_, overridden := sess.Overrides[line.Code]
		lines = append(lines, PlanLineView{
			Code:       line.Code,
			Label:      line.Label,
			Category:   line.Category,
			Amount:     model.JSONFloat(v),
			Scaled:     model.JSONFloat(model.ScaleToUnit(v, sess.Settings.Unit)),
			Overridden: overridden,
		})
	}

	cf := calculator.GenerateCashFlow(amounts, sess.Bundle.Capex, sess.Bundle.Loans, sess.Bundle.Tax)
	bs := calculator.GenerateBalanceSheet(amounts, sess.Bundle.Capex, sess.Bundle.Loans, sess.Bundle.Tax, sess.WorkingCapital)

	c.JSON(http.StatusOK, PlanResponse{
		SessionID:  sess.ID,
		Unit:       sess.Settings.Unit,
		FiscalYear: sess.Settings.FiscalYear,
		FTE:        sess.Settings.FTE,
		Lines:      lines,
		Metrics:    metrics,
		CashFlow:   cf,
		Balance:    bs,
		Warnings:   calculator.ValidatePlan(plan),
	})
}

// UpdateBundle 財務入力一式を置き換える
// PUT /api/sessions/:id/bundle
func (h *Handler) UpdateBundle(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var bundle model.FinanceBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}
	if err := bundle.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.store.UpdateBundle(sess.ID, bundle)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetOverrideRequest 金額直接指定リクエスト
type SetOverrideRequest struct {
	Code   model.LineCode `json:"code" binding:"required"`
	Amount float64        `json:"amount"`
}

// SetOverride 明細行の金額を直接指定する（率設定より優先）
// PUT /api/sessions/:id/overrides
func (h *Handler) SetOverride(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}
	if !knownLineCode(req.Code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な項目コードです: " + string(req.Code)})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "金額は0以上で指定してください"})
		return
	}

	updated, err := h.store.SetOverride(sess.ID, req.Code, req.Amount)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func knownLineCode(code model.LineCode) bool {
	for _, l := range model.PlanLines {
		if l.Code == code {
			return true
		}
	}
	return false
}

// ClearOverride 金額直接指定を解除する
// :code に "all" を指定するとすべて解除する。
// DELETE /api/sessions/:id/overrides/:code
func (h *Handler) ClearOverride(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	code := c.Param("code")
	if code == "all" {
		code = ""
	}

	updated, err := h.store.ClearOverride(sess.ID, model.LineCode(code))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
