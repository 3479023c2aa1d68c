package calculator

import (
	"math"

	"keieiplan/internal/model"
)

// 粗利連動科目の不動点反復の上限と許容誤差
const (
	grossIterMax = 5
	grossIterEps = 0.0001
)

// ComputeOptions 計算時の上書き指定
// AmountOverrides の金額指定は、率指定・金額指定のどちらよりも常に優先し、
// その計算では固定金額として扱う。計画側の Overrides とも合成され、
// 同じ科目は AmountOverrides が勝つ。
type ComputeOptions struct {
	SalesOverride   *float64
	AmountOverrides map[model.LineCode]float64
}

// mergedOverrides 計画の上書きと呼び出し側の上書きを合成する
func mergedOverrides(plan *model.PlanConfig, opts ComputeOptions) map[model.LineCode]float64 {
	if len(plan.Overrides) == 0 {
		return opts.AmountOverrides
	}
	if len(opts.AmountOverrides) == 0 {
		return plan.Overrides
	}
	merged := make(map[model.LineCode]float64, len(plan.Overrides)+len(opts.AmountOverrides))
	for code, v := range plan.Overrides {
		merged[code] = v
	}
	for code, v := range opts.AmountOverrides {
		merged[code] = v
	}
	return merged
}

// BuildPlan 財務入力一式から計画モデルを組み立てる
func BuildPlan(bundle model.FinanceBundle, fte float64, unit string) *model.PlanConfig {
	plan := model.NewPlanConfig(bundle.Sales.AnnualTotal(), fte, unit)

	for code, ratio := range bundle.Costs.VariableRatios {
		plan.SetRate(code, ratio, model.RateBaseSales)
	}
	for code, ratio := range bundle.Costs.GrossLinkedRatios {
		plan.SetRate(code, ratio, model.RateBaseGross)
	}
	for code, amount := range bundle.Costs.FixedCosts {
		plan.AddAmount(code, amount)
	}
	for code, amount := range bundle.Costs.NonOperatingIncome {
		plan.AddAmount(code, amount)
	}
	for code, amount := range bundle.Costs.NonOperatingExpenses {
		plan.AddAmount(code, amount)
	}

	if dep := bundle.Capex.AnnualDepreciation(); dep > 0 {
		plan.AddAmount(model.LineOpexDep, dep)
	}
	if interest := bundle.Loans.AnnualInterest(); interest > 0 {
		plan.AddAmount(model.LineNOEInt, interest)
	}

	return plan
}

// lineAmount 科目1行分の金額を解決する
func lineAmount(plan *model.PlanConfig, code model.LineCode, grossGuess, sales float64, overrides map[model.LineCode]float64) float64 {
	if overrides != nil {
		if v, ok := overrides[code]; ok {
			return v
		}
	}
	cfg, ok := plan.ItemValue(code)
	if !ok {
		return 0
	}
	if cfg.Method == model.MethodAmount {
		return cfg.Value
	}
	switch cfg.RateBase {
	case model.RateBaseGross:
		return math.Max(0, grossGuess) * cfg.Value
	case model.RateBaseFixed:
		return cfg.Value
	default:
		return sales * cfg.Value
	}
}

// Compute 計画を評価し、全科目の金額とKPI行を返す
func Compute(plan *model.PlanConfig, opts ComputeOptions) model.Amounts {
	sales := plan.BaseSales
	if opts.SalesOverride != nil {
		sales = *opts.SalesOverride
	}
	overrides := mergedOverrides(plan, opts)

	amounts := make(model.Amounts, len(model.PlanLines))
	for _, line := range model.PlanLines {
		amounts[line.Code] = 0
	}
	amounts[model.LineREV] = sales

	// 粗利連動の科目があるため、粗利を不動点反復で確定させる
	grossGuess := sales
	for i := 0; i < grossIterMax; i++ {
		cogs := 0.0
		for _, code := range model.CostCodes {
			cogs += math.Max(0, lineAmount(plan, code, grossGuess, sales, overrides))
		}
		newGross := sales - cogs
		if math.Abs(newGross-grossGuess) < grossIterEps {
			grossGuess = newGross
			break
		}
		grossGuess = newGross
	}

	cogsTotal := 0.0
	for _, code := range model.CostCodes {
		v := math.Max(0, lineAmount(plan, code, grossGuess, sales, overrides))
		amounts[code] = v
		cogsTotal += v
	}
	amounts[model.LineCOGSTotal] = cogsTotal
	amounts[model.LineGross] = sales - cogsTotal

	opexTotal := 0.0
	for _, code := range model.OpexCodes {
		v := math.Max(0, lineAmount(plan, code, amounts[model.LineGross], sales, overrides))
		amounts[code] = v
		opexTotal += v
	}
	amounts[model.LineOpexTotal] = opexTotal
	amounts[model.LineOP] = amounts[model.LineGross] - opexTotal

	for _, code := range append(append([]model.LineCode{}, model.NOICodes...), model.NOECodes...) {
		amounts[code] = math.Max(0, lineAmount(plan, code, amounts[model.LineGross], sales, overrides))
	}

	amounts[model.LineORD] = amounts[model.LineOP] +
		(amounts[model.LineNOIMisc] + amounts[model.LineNOIGrant] + amounts[model.LineNOIOth]) -
		(amounts[model.LineNOEInt] + amounts[model.LineNOEOth])

	// 損益分岐点: 変動費・固定費へ分解して限界利益率から求める。
	// 金額上書きされた科目は固定扱い（上書き優先のルール）。
	// 営業外収益は固定費の控除として扱う。
	variableCost := 0.0
	fixedCost := 0.0
	for _, code := range allCostCodes() {
		sign := 1.0
		for _, noi := range model.NOICodes {
			if code == noi {
				sign = -1.0
				break
			}
		}
		if overrides != nil {
			if v, ok := overrides[code]; ok {
				fixedCost += sign * v
				continue
			}
		}
		cfg, ok := plan.ItemValue(code)
		if !ok {
			continue
		}
		if cfg.Method == model.MethodRate {
			if cfg.RateBase == model.RateBaseGross {
				grossRatio := 0.0
				if sales > 0 {
					grossRatio = amounts[model.LineGross] / sales
				}
				variableCost += sign * sales * cfg.Value * grossRatio
			} else {
				variableCost += sign * sales * cfg.Value
			}
		} else {
			fixedCost += sign * cfg.Value
		}
	}

	contributionRatio := 1.0
	if sales > 0 {
		contributionRatio = 1.0 - variableCost/sales
	}
	if contributionRatio <= 0 {
		amounts[model.LineBESales] = math.Inf(1)
	} else {
		amounts[model.LineBESales] = fixedCost / contributionRatio
	}

	// 人員ゼロのときの一人当たり指標は「算出不能」
	if plan.FTE > 0 {
		amounts[model.LinePCSales] = amounts[model.LineREV] / plan.FTE
		amounts[model.LinePCGross] = amounts[model.LineGross] / plan.FTE
		amounts[model.LinePCOrd] = amounts[model.LineORD] / plan.FTE
	} else {
		amounts[model.LinePCSales] = math.NaN()
		amounts[model.LinePCGross] = math.NaN()
		amounts[model.LinePCOrd] = math.NaN()
	}

	if amounts[model.LineGross] > 0 {
		amounts[model.LineLDR] = amounts[model.LineOpexH] / amounts[model.LineGross]
	} else {
		amounts[model.LineLDR] = math.NaN()
	}

	return amounts
}

// allCostCodes 損益分岐点分解の対象科目
func allCostCodes() []model.LineCode {
	codes := make([]model.LineCode, 0, len(model.CostCodes)+len(model.OpexCodes)+len(model.NOICodes)+len(model.NOECodes))
	codes = append(codes, model.CostCodes...)
	codes = append(codes, model.OpexCodes...)
	codes = append(codes, model.NOICodes...)
	codes = append(codes, model.NOECodes...)
	return codes
}

// Summarize 金額からKPI一式を導出する（計画変更のたびに再計算される読み取り専用ビュー）
func Summarize(plan *model.PlanConfig, amounts model.Amounts) model.Metrics {
	sales := amounts.Get(model.LineREV)
	gross := amounts.Get(model.LineGross)
	op := amounts.Get(model.LineOP)
	ord := amounts.Get(model.LineORD)
	opex := amounts.Get(model.LineOpexTotal)
	cogs := amounts.Get(model.LineCOGSTotal)

	return model.Metrics{
		Sales:          model.JSONFloat(sales),
		Gross:          model.JSONFloat(gross),
		Op:             model.JSONFloat(op),
		Ord:            model.JSONFloat(ord),
		GrossMargin:    model.JSONFloat(safeRatio(gross, sales)),
		OpMargin:       model.JSONFloat(safeRatio(op, sales)),
		OrdMargin:      model.JSONFloat(safeRatio(ord, sales)),
		CogsRatio:      model.JSONFloat(safeRatio(cogs, sales)),
		OpexRatio:      model.JSONFloat(safeRatio(opex, sales)),
		LaborShare:     model.JSONFloat(amounts.Get(model.LineLDR)),
		Breakeven:      model.JSONFloat(amounts.Get(model.LineBESales)),
		PerCapitaSales: model.JSONFloat(amounts.Get(model.LinePCSales)),
		PerCapitaGross: model.JSONFloat(amounts.Get(model.LinePCGross)),
		PerCapitaOrd:   model.JSONFloat(amounts.Get(model.LinePCOrd)),
	}
}

// safeRatio 分母ゼロはNaN（算出不能）
func safeRatio(num, den float64) float64 {
	if den == 0 || math.IsNaN(den) {
		return math.NaN()
	}
	return num / den
}
