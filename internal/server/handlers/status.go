package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// StatusResponse システム状態レスポンス
type StatusResponse struct {
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptimeSeconds"`
	Sessions      int     `json:"sessions"`
	CPUPercent    float64 `json:"cpuPercent"`
	MemUsedPct    float64 `json:"memUsedPct"`
	Unit          string  `json:"unit"`
	FiscalYear    int     `json:"fiscalYear"`
}

// Version ビルド時に -ldflags で上書きする
var Version = "dev"

// GetStatus システム状態を取得
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	// 短い間隔でサンプリングして応答を速くする
	cpuPercent, err := cpu.Percent(100*time.Millisecond, false)
	if err != nil || len(cpuPercent) == 0 {
		cpuPercent = []float64{0}
	}

	memUsed := 0.0
	if memStat, err := mem.VirtualMemory(); err == nil {
		memUsed = memStat.UsedPercent
	}

	c.JSON(http.StatusOK, StatusResponse{
		Version:       Version,
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		Sessions:      h.store.Count(),
		CPUPercent:    cpuPercent[0],
		MemUsedPct:    memUsed,
		Unit:          h.cfg.Business.Unit,
		FiscalYear:    h.cfg.Business.FiscalYear,
	})
}
