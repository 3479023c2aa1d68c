package calculator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"keieiplan/internal/model"
)

// モンテカルロ試行回数の上下限
const (
	mcMinTrials = 100
	mcMaxTrials = 20000
)

// mcPercentiles 集計するパーセンタイル
var mcPercentiles = []float64{5, 25, 50, 75, 95}

// sampleDelta 設定された分布からドライバー変動(割合)を1つ抽出する
func sampleDelta(cfg model.DriverDistribution) float64 {
	mean := cfg.MeanPct / 100
	std := cfg.StdPct / 100
	if std <= 0 {
		return mean
	}
	switch cfg.Distribution {
	case model.DistributionUniform:
		// 同じ標準偏差を持つ一様分布: 幅 = std * sqrt(12)
		half := std * math.Sqrt(3)
		return distuv.Uniform{Min: mean - half, Max: mean + half}.Rand()
	case model.DistributionTriangular:
		// 同じ標準偏差を持つ対称三角分布: 半幅 = std * sqrt(6)
		half := std * math.Sqrt(6)
		return distuv.NewTriangle(mean-half, mean+half, mean, nil).Rand()
	default:
		return distuv.Normal{Mu: mean, Sigma: std}.Rand()
	}
}

// MonteCarlo ドライバー変動を分布からサンプリングして指標の振れ幅を推定する
func MonteCarlo(plan *model.PlanConfig, bundle model.FinanceBundle, cfg model.MonteCarloConfig, metric Metric) model.MonteCarloResult {
	trials := cfg.Trials
	if trials < mcMinTrials {
		trials = mcMinTrials
	}
	if trials > mcMaxTrials {
		trials = mcMaxTrials
	}

	values := make([]float64, 0, trials)
	for i := 0; i < trials; i++ {
		var d ScenarioDeltas
		for driver, dist := range cfg.Drivers {
			delta := sampleDelta(dist)
			switch driver {
			case model.DriverCustomers:
				d.Customers = delta
			case model.DriverPrice:
				d.Price = delta
			case model.DriverCost:
				d.Cost = delta
			case model.DriverFixed:
				d.Fixed = delta
			}
		}
		result, _ := EvaluateScenario(plan, bundle, d)
		v := metricValue(result, metric)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
	}

	result := model.MonteCarloResult{
		Metric: string(metric),
		Trials: len(values),
		Mean:   model.JSONFloat(math.NaN()),
		Std:    model.JSONFloat(math.NaN()),
		Min:    model.JSONFloat(math.NaN()),
		Max:    model.JSONFloat(math.NaN()),
	}
	if len(values) == 0 {
		return result
	}

	sort.Float64s(values)
	result.Mean = model.JSONFloat(stat.Mean(values, nil))
	result.Std = model.JSONFloat(stat.StdDev(values, nil))
	result.Min = model.JSONFloat(values[0])
	result.Max = model.JSONFloat(values[len(values)-1])
	for _, p := range mcPercentiles {
		result.Percentiles = append(result.Percentiles, model.MonteCarloPercentile{
			Percentile: p,
			Value:      model.JSONFloat(stat.Quantile(p/100, stat.Empirical, values, nil)),
		})
	}
	return result
}
