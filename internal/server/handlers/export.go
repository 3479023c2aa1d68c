package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"keieiplan/internal/config"
	"keieiplan/internal/model"
	"keieiplan/internal/service/calculator"
	"keieiplan/internal/service/excel"
)

// ExportRequest Excel 出力リクエスト
// ScenarioKeys を指定するとシナリオ比較シートも出力する。
type ExportRequest struct {
	Metric       string   `json:"metric"`
	DeltaPct     float64  `json:"deltaPct"`
	ScenarioKeys []string `json:"scenarioKeys"`
	Download     bool     `json:"download"` // true ならワンタイムのダウンロードリンクを返す
}

// Export 計画・KPI・感度分析を Excel に出力する
// POST /api/sessions/:id/export
func (h *Handler) Export(c *gin.Context) {
	sess := h.sessionOf(c)
	if sess == nil {
		return
	}

	var req ExportRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	metric, ok := parseMetric(req.Metric)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不明な指標です: " + req.Metric})
		return
	}

	deltaPct := req.DeltaPct
	if deltaPct <= 0 {
		deltaPct = 5
	}

	plan, amounts, metrics := computeSession(sess)
	entries := calculator.Sensitivity(plan, sess.Bundle, calculator.UniformDeltas(model.Drivers, deltaPct), metric)

	var scenarios []model.ScenarioResult
	if len(req.ScenarioKeys) > 0 {
		presets := make([]model.ScenarioPreset, 0, len(req.ScenarioKeys))
		for _, key := range req.ScenarioKeys {
			preset, ok := model.PresetByKey(key)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "不明なシナリオです: " + key})
				return
			}
			presets = append(presets, preset)
		}
		scenarios = calculator.CompareScenarios(plan, sess.Bundle, presets)
	}

	exp := excel.NewExporter()
	file, err := exp.Export(excel.ExportInput{
		Unit:        sess.Settings.Unit,
		FiscalYear:  sess.Settings.FiscalYear,
		FTE:         sess.Settings.FTE,
		Amounts:     amounts,
		Metrics:     metrics,
		Sensitivity: entries,
		Scenarios:   scenarios,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "出力に失敗しました: " + err.Error()})
		return
	}

	if req.Download {
		name := fmt.Sprintf("keieiplan_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid())
		path := config.GetDataPath(h.cfg, "exports", name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "出力先の作成に失敗しました"})
			return
		}
		if err := file.SaveAs(path); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "出力ファイルの書き込みに失敗しました"})
			_ = os.Remove(path)
			return
		}
		token := h.downloads.put(path, sess.Settings.FiscalYear, 10*time.Minute)
		c.JSON(http.StatusOK, gin.H{
			"downloadUrl": "/api/export/download/" + token,
			"expiresIn":   600,
		})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(sess.Settings.FiscalYear))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ファイルの書き込みに失敗しました"})
		return
	}
}

// DownloadExport 出力済み Excel をダウンロードする（ワンタイム）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token がありません"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "ダウンロードリンクは失効しています"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "出力ファイルが存在しません"})
		return
	}

	c.Header("Content-Disposition", buildExportContentDisposition(item.fiscalYear))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}

// buildExportContentDisposition ASCII 名と UTF-8 名を併記した Content-Disposition
func buildExportContentDisposition(fiscalYear int) string {
	ascii := fmt.Sprintf("business-plan-%d.xlsx", fiscalYear)
	utf8Name := fmt.Sprintf("%d年度経営計画.xlsx", fiscalYear)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, url.PathEscape(utf8Name))
}
