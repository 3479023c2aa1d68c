package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/model"
)

// ListTemplates 業種テンプレート一覧
// GET /api/templates
func (h *Handler) ListTemplates(c *gin.Context) {
	templates := model.IndustryTemplates()
	// 一覧では見出しだけ返す
	type summary struct {
		Key         string  `json:"key"`
		Label       string  `json:"label"`
		Description string  `json:"description"`
		FTE         float64 `json:"fte"`
	}
	out := make([]summary, 0, len(templates))
	for _, t := range templates {
		out = append(out, summary{Key: t.Key, Label: t.Label, Description: t.Description, FTE: t.FTE})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

// ApplyTemplate 業種テンプレートをセッションに適用する
// 金額直接指定はすべて解除される。
// POST /api/sessions/:id/templates/:key
func (h *Handler) ApplyTemplate(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	tmpl, ok := model.TemplateByKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "不明なテンプレートです: " + c.Param("key")})
		return
	}

	if _, err := h.store.UpdateBundle(sess.ID, tmpl.Bundle()); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	if _, err := h.store.UpdateWorkingCapital(sess.ID, tmpl.WorkingCapital); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}

	settings := sess.Settings
	settings.FTE = tmpl.FTE
	if _, err := h.store.UpdateSettings(sess.ID, settings); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}

	updated, err := h.store.ClearOverride(sess.ID, "")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}

	c.JSON(http.StatusOK, updated)
}
