package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
)

// CreateSession 既定の計画を持つ新規セッションを作成
// POST /api/sessions
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.store.CreateSession()
	c.JSON(http.StatusCreated, sess)
}

// GetSession セッションの編集状態を取得
// GET /api/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}
	c.JSON(http.StatusOK, sess)
}

// DeleteSession セッションを破棄
// DELETE /api/sessions/:id
func (h *Handler) DeleteSession(c *gin.Context) {
	h.store.DeleteSession(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ResetSession 計画を既定値に戻す
// POST /api/sessions/:id/reset
func (h *Handler) ResetSession(c *gin.Context) {
	sess, err := h.store.ResetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, sess)
}

// UpdateSettingsRequest 設定変更リクエスト（指定項目のみ更新）
type UpdateSettingsRequest struct {
	Unit       *string  `json:"unit"`
	FTE        *float64 `json:"fte"`
	FiscalYear *int     `json:"fiscalYear"`
}

// UpdateSettings 表示単位・人員などの設定を変更
// PATCH /api/sessions/:id/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}

	settings := sess.Settings
	if req.Unit != nil {
		settings.Unit = model.ParseUnit(*req.Unit)
	}
	if req.FTE != nil {
		if *req.FTE < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "従業員数は0以上で指定してください"})
			return
		}
		settings.FTE = *req.FTE
	}
	if req.FiscalYear != nil {
		settings.FiscalYear = *req.FiscalYear
	}

	updated, err := h.store.UpdateSettings(sess.ID, settings)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateWorkingCapital 運転資本の回転日数想定を変更
// PATCH /api/sessions/:id/working-capital
func (h *Handler) UpdateWorkingCapital(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var wc model.WorkingCapitalProfile
	if err := c.ShouldBindJSON(&wc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエスト形式が不正です"})
		return
	}
	if wc.ReceivableDays < 0 || wc.InventoryDays < 0 || wc.PayableDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "回転日数は0以上で指定してください"})
		return
	}

	updated, err := h.store.UpdateWorkingCapital(sess.ID, wc)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
