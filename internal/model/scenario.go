package model

// Driver 感度分析の対象ドライバー
type Driver string

const (
	DriverCustomers Driver = "customers" // 客数
	DriverPrice     Driver = "price"     // 客単価
	DriverCost      Driver = "cost"      // 原価率
	DriverFixed     Driver = "fixed"     // 固定費
)

// Drivers ドライバーの既定の並び順
var Drivers = []Driver{DriverCustomers, DriverPrice, DriverCost, DriverFixed}

// DriverLabels ドライバーの表示名
var DriverLabels = map[Driver]string{
	DriverCustomers: "客数",
	DriverPrice:     "客単価",
	DriverCost:      "原価率",
	DriverFixed:     "固定費",
}

// ScenarioPreset シナリオプリセット（不変のテンプレート）
// 変動率(%)の組み合わせに名前を付けたもの。適用すると派生計画を返し、
// 元の計画は変更しない。
type ScenarioPreset struct {
	Key          string  `json:"key"`
	Code         string  `json:"code"` // A/B/C などの表示コード
	Name         string  `json:"name"`
	CustomersPct float64 `json:"customersPct"`
	PricePct     float64 `json:"pricePct"`
	CostPct      float64 `json:"costPct"`
	FixedPct     float64 `json:"fixedPct"`
	Notes        string  `json:"notes"`
}

var scenarioPresets = []ScenarioPreset{
	{
		Key:   "baseline",
		Code:  "A",
		Name:  "Baseline",
		Notes: "現状見通し",
	},
	{
		Key:          "best",
		Code:         "B",
		Name:         "Best",
		CustomersPct: 8.0,
		PricePct:     5.0,
		CostPct:      -4.0,
		FixedPct:     -2.0,
		Notes:        "需要増加と効率化",
	},
	{
		Key:          "worst",
		Code:         "C",
		Name:         "Worst",
		CustomersPct: -6.0,
		PricePct:     -3.0,
		CostPct:      4.0,
		FixedPct:     3.0,
		Notes:        "需要減少とコスト上昇",
	},
	{
		Key:          "new_product",
		Code:         "D",
		Name:         "新製品投入",
		CustomersPct: 6.0,
		PricePct:     4.0,
		CostPct:      1.5,
		FixedPct:     3.0,
		Notes:        "マーケ強化と試作コストを想定",
	},
	{
		Key:      "cost_reduction",
		Code:     "E",
		Name:     "人件費削減",
		CostPct:  -2.0,
		FixedPct: -5.0,
		Notes:    "業務効率化・自動化による固定費圧縮",
	},
	{
		Key:          "raw_material_shock",
		Code:         "F",
		Name:         "原材料価格高騰",
		CustomersPct: -2.0,
		PricePct:     1.0,
		CostPct:      6.0,
		Notes:        "仕入れコスト上昇を一部価格転嫁",
	},
	{
		Key:          "omnichannel_expansion",
		Code:         "G",
		Name:         "EC販路拡大",
		CustomersPct: 10.0,
		PricePct:     -1.5,
		CostPct:      2.5,
		FixedPct:     4.0,
		Notes:        "オンライン販路投資と集客増",
	},
}

// ScenarioPresets 全プリセットの一覧（呼び出しごとにコピーを返す）
func ScenarioPresets() []ScenarioPreset {
	presets := make([]ScenarioPreset, len(scenarioPresets))
	copy(presets, scenarioPresets)
	return presets
}

// PresetByKey キーまたは表示コードでプリセットを取得
func PresetByKey(key string) (ScenarioPreset, bool) {
	for _, p := range scenarioPresets {
		if p.Key == key || p.Code == key {
			return p, true
		}
	}
	return ScenarioPreset{}, false
}

// 分布の種類（モンテカルロ設定用）
const (
	DistributionNormal     = "normal"
	DistributionTriangular = "triangular"
	DistributionUniform    = "uniform"
)

// DriverDistribution ドライバーごとの変動分布設定
type DriverDistribution struct {
	MeanPct      float64 `json:"meanPct"`
	StdPct       float64 `json:"stdPct"`
	Distribution string  `json:"distribution"`
}

// MonteCarloConfig モンテカルロ試行の設定
type MonteCarloConfig struct {
	Drivers map[Driver]DriverDistribution `json:"drivers"`
	Trials  int                           `json:"trials"`
}

// DefaultMonteCarloConfig 既定のモンテカルロ設定
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Drivers: map[Driver]DriverDistribution{
			DriverCustomers: {StdPct: 3.0, Distribution: DistributionNormal},
			DriverPrice:     {StdPct: 2.0, Distribution: DistributionNormal},
			DriverCost:      {StdPct: 1.5, Distribution: DistributionNormal},
			DriverFixed:     {StdPct: 1.0, Distribution: DistributionNormal},
		},
		Trials: 2000,
	}
}
