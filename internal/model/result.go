package model

import (
	"encoding/json"
	"math"
)

// JSONFloat NaN/Inf を null として出力する数値
// 比率系KPIは分母ゼロのとき NaN になるため、APIレスポンスでは
// 「算出不能」を null で表現する。
type JSONFloat float64

// MarshalJSON NaN/Inf は null
func (f JSONFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON null は NaN として受ける
func (f *JSONFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = JSONFloat(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = JSONFloat(v)
	return nil
}

// Amounts 計算済みの科目金額（円建て）
type Amounts map[LineCode]float64

// Get 科目金額を取得（未計算は0）
func (a Amounts) Get(code LineCode) float64 {
	return a[code]
}

// Metrics 計画から導出されるKPI一式（読み取り専用のビュー）
type Metrics struct {
	Sales          JSONFloat `json:"sales"`
	Gross          JSONFloat `json:"gross"`
	Op             JSONFloat `json:"op"`
	Ord            JSONFloat `json:"ord"`
	GrossMargin    JSONFloat `json:"grossMargin"`
	OpMargin       JSONFloat `json:"opMargin"`
	OrdMargin      JSONFloat `json:"ordMargin"`
	CogsRatio      JSONFloat `json:"cogsRatio"`
	OpexRatio      JSONFloat `json:"opexRatio"`
	LaborShare     JSONFloat `json:"laborShare"`
	Breakeven      JSONFloat `json:"breakeven"`
	PerCapitaSales JSONFloat `json:"perCapitaSales"`
	PerCapitaGross JSONFloat `json:"perCapitaGross"`
	PerCapitaOrd   JSONFloat `json:"perCapitaOrd"`
}

// SolverResult 目標利益の逆算結果
// 1回の逆算ごとに生成され、表示後は破棄される。
type SolverResult struct {
	Target     float64 `json:"target"`     // 目標経常利益(円)
	Achieved   float64 `json:"achieved"`   // 到達した経常利益(円)
	Value      float64 `json:"value"`      // 逆算された調整対象の値(円)
	Iterations int     `json:"iterations"` // 二分探索の反復回数
	Converged  bool    `json:"converged"`  // 許容誤差内に収束したか
}

// SensitivityEntry トルネード図の1行分（影響度の降順で並ぶ）
type SensitivityEntry struct {
	Driver   Driver    `json:"driver"`
	Label    string    `json:"label"`
	DeltaPct float64   `json:"deltaPct"`
	Low      JSONFloat `json:"low"`    // value*(1-delta) でのKPI
	High     JSONFloat `json:"high"`   // value*(1+delta) でのKPI
	Impact   JSONFloat `json:"impact"` // |high - low|
}

// CurvePoint 単変量感度カーブの1点
type CurvePoint struct {
	DeltaPct float64   `json:"deltaPct"`
	Value    JSONFloat `json:"value"`
}

// ScenarioResult シナリオ評価結果
type ScenarioResult struct {
	Key   string    `json:"key"`
	Code  string    `json:"code"`
	Name  string    `json:"name"`
	Sales JSONFloat `json:"sales"`
	Gross JSONFloat `json:"gross"`
	Op    JSONFloat `json:"op"`
	Ord   JSONFloat `json:"ord"`
	FCF   JSONFloat `json:"fcf"`
	DSCR  JSONFloat `json:"dscr"`
}

// CashFlow 簡易キャッシュフロー計算書（年間）
type CashFlow struct {
	Operating    JSONFloat `json:"operating"`    // 営業キャッシュフロー
	Investing    JSONFloat `json:"investing"`    // 投資キャッシュフロー
	Financing    JSONFloat `json:"financing"`    // 財務キャッシュフロー
	Net          JSONFloat `json:"net"`          // キャッシュ増減
	NetIncome    JSONFloat `json:"netIncome"`    // 税引後利益
	Depreciation JSONFloat `json:"depreciation"` // 減価償却
	Dividend     JSONFloat `json:"dividend"`     // 予想配当額
}

// BalanceSheet 簡易貸借対照表の推定値
type BalanceSheet struct {
	Cash               JSONFloat `json:"cash"`               // 現金同等物
	AccountsReceivable JSONFloat `json:"accountsReceivable"` // 売掛金
	Inventory          JSONFloat `json:"inventory"`          // 棚卸資産
	NetPPE             JSONFloat `json:"netPpe"`             // 有形固定資産
	AccountsPayable    JSONFloat `json:"accountsPayable"`    // 買掛金
	Debt               JSONFloat `json:"debt"`               // 有利子負債
	Equity             JSONFloat `json:"equity"`             // 純資産
	TotalAssets        JSONFloat `json:"totalAssets"`
	EquityRatio        JSONFloat `json:"equityRatio"`
	ROE                JSONFloat `json:"roe"`
	WorkingCapital     JSONFloat `json:"workingCapital"`
}

// WorkingCapitalProfile 運転資本の回転日数想定
type WorkingCapitalProfile struct {
	ReceivableDays float64 `json:"receivableDays"`
	InventoryDays  float64 `json:"inventoryDays"`
	PayableDays    float64 `json:"payableDays"`
}

// DefaultWorkingCapitalProfile 既定の運転資本想定
func DefaultWorkingCapitalProfile() WorkingCapitalProfile {
	return WorkingCapitalProfile{
		ReceivableDays: 45,
		InventoryDays:  30,
		PayableDays:    25,
	}
}

// MonteCarloResult モンテカルロ試行の集計結果
type MonteCarloResult struct {
	Metric      string    `json:"metric"`
	Trials      int       `json:"trials"`
	Mean        JSONFloat `json:"mean"`
	Std         JSONFloat `json:"std"`
	Min         JSONFloat `json:"min"`
	Max         JSONFloat `json:"max"`
	Percentiles []MonteCarloPercentile `json:"percentiles"`
}

// MonteCarloPercentile パーセンタイル1点
type MonteCarloPercentile struct {
	Percentile float64   `json:"percentile"`
	Value      JSONFloat `json:"value"`
}
