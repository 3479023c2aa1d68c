package calculator

import (
	"math"
	"testing"

	"keieiplan/internal/model"
)

// TestMonteCarloDegenerate 標準偏差ゼロなら全試行が同じ値になる
func TestMonteCarloDegenerate(t *testing.T) {
	plan := createTestPlan()
	bundle := model.DefaultFinanceBundle()
	base := Compute(plan, ComputeOptions{})

	cfg := model.MonteCarloConfig{
		Trials: 200,
		Drivers: map[model.Driver]model.DriverDistribution{
			model.DriverCustomers: {MeanPct: 0, StdPct: 0, Distribution: model.DistributionNormal},
		},
	}

	result := MonteCarlo(plan, bundle, cfg, MetricOrd)

	if result.Trials != 200 {
		t.Fatalf("trials = %d, want 200", result.Trials)
	}
	expected := base.Get(model.LineORD)
	if math.Abs(float64(result.Mean)-expected) > 1 {
		t.Errorf("Mean = %v, want %v", float64(result.Mean), expected)
	}
	if math.Abs(float64(result.Std)) > 1 {
		t.Errorf("Std = %v, want 0", float64(result.Std))
	}
}

// TestMonteCarloDistribution ばらつきのある試行の統計量
func TestMonteCarloDistribution(t *testing.T) {
	plan := createTestPlan()
	bundle := model.DefaultFinanceBundle()
	base := Compute(plan, ComputeOptions{})
	baseOrd := base.Get(model.LineORD)

	cfg := model.MonteCarloConfig{
		Trials: 5000,
		Drivers: map[model.Driver]model.DriverDistribution{
			model.DriverCustomers: {MeanPct: 0, StdPct: 3, Distribution: model.DistributionNormal},
			model.DriverCost:      {MeanPct: 0, StdPct: 2, Distribution: model.DistributionTriangular},
			model.DriverFixed:     {MeanPct: 0, StdPct: 1, Distribution: model.DistributionUniform},
		},
	}

	result := MonteCarlo(plan, bundle, cfg, MetricOrd)

	if result.Trials != 5000 {
		t.Fatalf("trials = %d, want 5000", result.Trials)
	}

	// 平均は基準値の近傍（粗い許容幅）
	if math.Abs(float64(result.Mean)-baseOrd) > 1_000_000 {
		t.Errorf("Mean = %v, too far from %v", float64(result.Mean), baseOrd)
	}
	if float64(result.Std) <= 0 {
		t.Errorf("Std = %v, want positive", float64(result.Std))
	}
	if float64(result.Min) >= float64(result.Max) {
		t.Errorf("Min %v should be below Max %v", float64(result.Min), float64(result.Max))
	}

	// パーセンタイルは5点で単調
	if len(result.Percentiles) != 5 {
		t.Fatalf("percentiles = %d, want 5", len(result.Percentiles))
	}
	for i := 1; i < len(result.Percentiles); i++ {
		if float64(result.Percentiles[i].Value) < float64(result.Percentiles[i-1].Value) {
			t.Errorf("percentiles not monotone at %d", i)
		}
	}
}

// TestSampleDeltaTriangular 三角分布は上下限内に収まり平均が一致する
func TestSampleDeltaTriangular(t *testing.T) {
	cfg := model.DriverDistribution{MeanPct: 2, StdPct: 3, Distribution: model.DistributionTriangular}
	mean := cfg.MeanPct / 100
	half := cfg.StdPct / 100 * math.Sqrt(6)

	sum := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		v := sampleDelta(cfg)
		if v < mean-half || v > mean+half {
			t.Fatalf("sample %v outside [%v, %v]", v, mean-half, mean+half)
		}
		sum += v
	}
	if got := sum / n; math.Abs(got-mean) > 0.005 {
		t.Errorf("sample mean = %v, want near %v", got, mean)
	}
}

// TestMonteCarloTrialsClamp 試行回数は上下限に収める
func TestMonteCarloTrialsClamp(t *testing.T) {
	plan := createTestPlan()
	bundle := model.DefaultFinanceBundle()

	cfg := model.MonteCarloConfig{
		Trials: 1,
		Drivers: map[model.Driver]model.DriverDistribution{
			model.DriverPrice: {MeanPct: 0, StdPct: 1, Distribution: model.DistributionNormal},
		},
	}

	result := MonteCarlo(plan, bundle, cfg, MetricOrd)
	if result.Trials != 100 {
		t.Errorf("trials = %d, want clamped to 100", result.Trials)
	}
}
