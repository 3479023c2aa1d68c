package calculator

import (
	"fmt"
	"math"

	"keieiplan/internal/model"
)

// 逆算（二分探索）の定数
const (
	// SolveTolerance 収束判定の許容誤差(円)
	SolveTolerance = 1000.0
	// solveMaxIter 二分探索の最大反復回数
	solveMaxIter = 60
	// bracketMaxExpand 探索区間拡張の最大回数
	bracketMaxExpand = 40
	// bracketCap 探索上限(円)
	bracketCap = 1e13
)

// AdjustableField 逆算で動かす項目
// 売上高、または金額指定の費用科目を指定できる。いずれも経常利益に対して
// 単調（売上増→利益増、費用増→利益減）である前提で、検証はしない。
type AdjustableField string

// AdjustSales 売上高を動かす
const AdjustSales AdjustableField = "sales"

// Solve 目標経常利益を達成する調整値を二分探索で逆算する
// 既定の探索区間は [0, 現在値の1.5倍] で、目標を挟むまで区間上限を
// 幾何級数的に拡張する。拡張しても符号が変わらない場合は到達不能として
// Converged=false を直ちに返す。
func Solve(plan *model.PlanConfig, target float64, field AdjustableField) model.SolverResult {
	current, eval, err := fieldEvaluator(plan, field)
	if err != nil {
		return model.SolverResult{Target: target, Converged: false}
	}
	high := math.Max(current*1.5, current+1000000)
	return SolveWithBounds(plan, target, field, 0, high, eval)
}

// SolveWithBounds 探索区間を指定した逆算
func SolveWithBounds(plan *model.PlanConfig, target float64, field AdjustableField, low, high float64, eval func(float64) float64) model.SolverResult {
	if eval == nil {
		_, e, err := fieldEvaluator(plan, field)
		if err != nil {
			return model.SolverResult{Target: target, Converged: false}
		}
		eval = e
	}

	low = math.Max(0, low)
	if high <= low {
		high = low + 1000000
	}

	fLow := eval(low)
	fHigh := eval(high)

	// 区間が目標を挟むまで上限を拡張
	expansions := 0
	for (fLow-target)*(fHigh-target) > 0 && high < bracketCap && expansions < bracketMaxExpand {
		if high > 0 {
			high *= 1.6
		} else {
			high = 1000000
		}
		fHigh = eval(high)
		expansions++
	}

	// 拡張しても挟めない場合は到達不能
	if (fLow-target)*(fHigh-target) > 0 {
		achieved := fHigh
		value := high
		if math.Abs(fLow-target) < math.Abs(fHigh-target) {
			achieved = fLow
			value = low
		}
		return model.SolverResult{
			Target:     target,
			Achieved:   achieved,
			Value:      value,
			Iterations: expansions,
			Converged:  false,
		}
	}

	iterations := 0
	for i := 0; i < solveMaxIter; i++ {
		iterations++
		mid := (low + high) / 2
		fMid := eval(mid)
		if math.Abs(fMid-target) <= SolveTolerance {
			return model.SolverResult{
				Target:     target,
				Achieved:   fMid,
				Value:      mid,
				Iterations: iterations,
				Converged:  true,
			}
		}
		if (fLow-target)*(fMid-target) <= 0 {
			high, fHigh = mid, fMid
		} else {
			low, fLow = mid, fMid
		}
	}

	mid := (low + high) / 2
	fMid := eval(mid)
	return model.SolverResult{
		Target:     target,
		Achieved:   fMid,
		Value:      mid,
		Iterations: iterations,
		Converged:  math.Abs(fMid-target) <= SolveTolerance,
	}
}

// ValidAdjustField 逆算の調整対象として指定できるか
func ValidAdjustField(field AdjustableField) bool {
	if field == AdjustSales {
		return true
	}
	code := model.LineCode(field)
	for _, c := range allCostCodes() {
		if c == code {
			return true
		}
	}
	return false
}

// fieldEvaluator 調整対象の現在値と、候補値→経常利益の評価関数を返す
func fieldEvaluator(plan *model.PlanConfig, field AdjustableField) (float64, func(float64) float64, error) {
	if field == AdjustSales {
		eval := func(v float64) float64 {
			return Compute(plan, ComputeOptions{SalesOverride: &v})[model.LineORD]
		}
		return plan.BaseSales, eval, nil
	}

	code := model.LineCode(field)
	known := false
	for _, c := range allCostCodes() {
		if c == code {
			known = true
			break
		}
	}
	if !known {
		return 0, nil, fmt.Errorf("調整対象にできない項目です: %s", field)
	}

	base := Compute(plan, ComputeOptions{})
	current := base.Get(code)
	eval := func(v float64) float64 {
		overrides := map[model.LineCode]float64{code: v}
		return Compute(plan, ComputeOptions{AmountOverrides: overrides})[model.LineORD]
	}
	return current, eval, nil
}
