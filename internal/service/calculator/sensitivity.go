package calculator

import (
	"math"
	"sort"

	"keieiplan/internal/model"
)

// Metric 感度分析・シナリオ比較の評価指標
type Metric string

const (
	MetricSales Metric = "sales"
	MetricGross Metric = "gross"
	MetricOp    Metric = "op"
	MetricOrd   Metric = "ord"
	MetricFCF   Metric = "fcf"
	MetricDSCR  Metric = "dscr"
)

// MetricLabels 指標の表示名
var MetricLabels = map[Metric]string{
	MetricSales: "売上高",
	MetricGross: "粗利",
	MetricOp:    "営業利益",
	MetricOrd:   "経常利益",
	MetricFCF:   "FCF",
	MetricDSCR:  "DSCR",
}

// metricValue シナリオ評価結果から指標値を取り出す
func metricValue(r model.ScenarioResult, metric Metric) float64 {
	switch metric {
	case MetricSales:
		return float64(r.Sales)
	case MetricGross:
		return float64(r.Gross)
	case MetricOp:
		return float64(r.Op)
	case MetricFCF:
		return float64(r.FCF)
	case MetricDSCR:
		return float64(r.DSCR)
	default:
		return float64(r.Ord)
	}
}

// Sensitivity 一要因ずつの感度分析（トルネード図の元データ）
// 各ドライバーを ±delta だけ動かして指標を再評価し、影響度
// |high - low| の降順で返す。交互作用は考慮しない。
func Sensitivity(plan *model.PlanConfig, bundle model.FinanceBundle, deltas map[model.Driver]float64, metric Metric) []model.SensitivityEntry {
	entries := make([]model.SensitivityEntry, 0, len(deltas))

	for _, driver := range model.Drivers {
		deltaPct, ok := deltas[driver]
		if !ok {
			continue
		}
		delta := deltaPct / 100
		highResult, _ := EvaluateScenario(plan, bundle, deltaFor(driver, delta))
		lowResult, _ := EvaluateScenario(plan, bundle, deltaFor(driver, -delta))
		high := metricValue(highResult, metric)
		low := metricValue(lowResult, metric)
		impact := math.Abs(high - low)
		entries = append(entries, model.SensitivityEntry{
			Driver:   driver,
			Label:    model.DriverLabels[driver],
			DeltaPct: deltaPct,
			Low:      model.JSONFloat(low),
			High:     model.JSONFloat(high),
			Impact:   model.JSONFloat(impact),
		})
	}

	// 影響度の降順。NaN（算出不能）は末尾に回す。
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := float64(entries[i].Impact), float64(entries[j].Impact)
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
	return entries
}

// UniformDeltas 全ドライバーに同じ変動幅(%)を与える
func UniformDeltas(drivers []model.Driver, deltaPct float64) map[model.Driver]float64 {
	deltas := make(map[model.Driver]float64, len(drivers))
	for _, d := range drivers {
		deltas[d] = deltaPct
	}
	return deltas
}

// SensitivityFromPreset プリセットの変動率をそのまま感度幅として使う
// プリセット（A/B/C等）は同じ感度計算に流すだけで、専用の計算はない。
func SensitivityFromPreset(plan *model.PlanConfig, bundle model.FinanceBundle, preset model.ScenarioPreset, metric Metric) []model.SensitivityEntry {
	deltas := map[model.Driver]float64{
		model.DriverCustomers: math.Abs(preset.CustomersPct),
		model.DriverPrice:     math.Abs(preset.PricePct),
		model.DriverCost:      math.Abs(preset.CostPct),
		model.DriverFixed:     math.Abs(preset.FixedPct),
	}
	return Sensitivity(plan, bundle, deltas, metric)
}

// SensitivityCurve 単一ドライバーを範囲内で動かした指標カーブ
func SensitivityCurve(plan *model.PlanConfig, bundle model.FinanceBundle, driver model.Driver, rangePct float64, steps int, metric Metric) []model.CurvePoint {
	if steps < 2 {
		steps = 2
	}
	points := make([]model.CurvePoint, 0, steps)
	for i := 0; i < steps; i++ {
		pct := -rangePct + 2*rangePct*float64(i)/float64(steps-1)
		result, _ := EvaluateScenario(plan, bundle, deltaFor(driver, pct/100))
		points = append(points, model.CurvePoint{
			DeltaPct: pct,
			Value:    model.JSONFloat(metricValue(result, metric)),
		})
	}
	return points
}
