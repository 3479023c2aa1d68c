package calculator

import (
	"keieiplan/internal/model"
)

// ScenarioDeltas ドライバー変動（割合。0.05 = +5%）
type ScenarioDeltas struct {
	Customers float64
	Price     float64
	Cost      float64
	Fixed     float64
}

// DeltasFromPreset プリセット(%)を割合へ変換する
func DeltasFromPreset(p model.ScenarioPreset) ScenarioDeltas {
	return ScenarioDeltas{
		Customers: p.CustomersPct / 100,
		Price:     p.PricePct / 100,
		Cost:      p.CostPct / 100,
		Fixed:     p.FixedPct / 100,
	}
}

// deltaFor 単一ドライバーのみを動かす変動を作る
func deltaFor(driver model.Driver, delta float64) ScenarioDeltas {
	var d ScenarioDeltas
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
	return d
}

// applyDeltas ドライバー変動を適用した金額を計算する
// 原価・固定費の変動は計画の複製に対して適用し、元の計画は変更しない。
// 客数・単価は売上への乗数 (1+c)(1+p) として扱う。
func applyDeltas(plan *model.PlanConfig, d ScenarioDeltas) model.Amounts {
	target := plan
	if d.Cost != 0 || d.Fixed != 0 {
		target = plan.Clone()
	}
	if d.Cost != 0 {
		factor := 1 + d.Cost
		for _, code := range model.CostCodes {
			cfg, ok := target.ItemValue(code)
			if !ok {
				continue
			}
			cfg.Value *= factor
			target.Items[code] = cfg
		}
	}
	if d.Fixed != 0 {
		factor := 1 + d.Fixed
		for _, code := range model.FixedCostCodes {
			cfg, ok := target.ItemValue(code)
			if !ok {
				continue
			}
			cfg.Value *= factor
			target.Items[code] = cfg
		}
	}
	salesOverride := target.BaseSales * (1 + d.Customers) * (1 + d.Price)
	return Compute(target, ComputeOptions{SalesOverride: &salesOverride})
}

// EvaluateScenario シナリオを評価し、主要指標を返す
func EvaluateScenario(plan *model.PlanConfig, bundle model.FinanceBundle, d ScenarioDeltas) (model.ScenarioResult, model.Amounts) {
	amounts := applyDeltas(plan, d)
	cf := GenerateCashFlow(amounts, bundle.Capex, bundle.Loans, bundle.Tax)
	result := model.ScenarioResult{
		Sales: model.JSONFloat(amounts.Get(model.LineREV)),
		Gross: model.JSONFloat(amounts.Get(model.LineGross)),
		Op:    model.JSONFloat(amounts.Get(model.LineOP)),
		Ord:   model.JSONFloat(amounts.Get(model.LineORD)),
		FCF:   model.JSONFloat(ComputeFCF(amounts, bundle.Capex, bundle.Tax)),
		DSCR:  model.JSONFloat(CalculateDSCR(bundle.Loans, float64(cf.Operating))),
	}
	return result, amounts
}

// CompareScenarios 複数プリセットを同一計画に適用して比較する
func CompareScenarios(plan *model.PlanConfig, bundle model.FinanceBundle, presets []model.ScenarioPreset) []model.ScenarioResult {
	results := make([]model.ScenarioResult, 0, len(presets))
	for _, p := range presets {
		r, _ := EvaluateScenario(plan, bundle, DeltasFromPreset(p))
		r.Key = p.Key
		r.Code = p.Code
		r.Name = p.Name
		results = append(results, r)
	}
	return results
}
