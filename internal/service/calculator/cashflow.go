package calculator

import (
	"math"

	"keieiplan/internal/model"
)

// GenerateCashFlow 年間合計ベースの簡易キャッシュフロー計算書
func GenerateCashFlow(amounts model.Amounts, capex model.CapexPlan, loans model.LoanSchedule, tax model.TaxPolicy) model.CashFlow {
	ordinaryIncome := amounts.Get(model.LineORD)
	depreciation := amounts.Get(model.LineOpexDep)
	taxes := tax.EffectiveTax(ordinaryIncome)

	netIncome := ordinaryIncome - taxes
	operating := ordinaryIncome + depreciation - taxes
	investing := -capex.TotalInvestment()
	dividend := tax.ProjectedDividend(netIncome)
	financing := -loans.AnnualInterest() - dividend

	return model.CashFlow{
		Operating:    model.JSONFloat(operating),
		Investing:    model.JSONFloat(investing),
		Financing:    model.JSONFloat(financing),
		Net:          model.JSONFloat(operating + investing + financing),
		NetIncome:    model.JSONFloat(netIncome),
		Depreciation: model.JSONFloat(depreciation),
		Dividend:     model.JSONFloat(dividend),
	}
}

// ComputeFCF フリーキャッシュフロー = EBIT - 税金 + 減価償却 - 投資額
func ComputeFCF(amounts model.Amounts, capex model.CapexPlan, tax model.TaxPolicy) float64 {
	ebit := amounts.Get(model.LineOP)
	depreciation := amounts.Get(model.LineOpexDep)
	taxes := tax.EffectiveTax(amounts.Get(model.LineORD))
	return ebit - taxes + depreciation - capex.TotalInvestment()
}

// CalculateDSCR 年間元利返済額に対する営業CFの倍率
// 返済が始まる最初の年度のDSCRを返す。営業CFが正でない場合や返済が
// ない場合は算出不能(NaN)。
func CalculateDSCR(loans model.LoanSchedule, operatingCF float64) float64 {
	if operatingCF <= 0 {
		return math.NaN()
	}

	type yearTotal struct {
		interest  float64
		principal float64
	}
	yearly := make(map[int]*yearTotal)
	maxYear := 0

	for _, loan := range loans.Loans {
		if loan.Principal <= 0 || loan.TermMonths <= 0 {
			continue
		}
		outstanding := loan.Principal
		for offset := 0; offset < loan.TermMonths; offset++ {
			monthIndex := loan.StartMonth + offset
			yearIndex := (monthIndex-1)/12 + 1
			interest := outstanding * loan.InterestRate / 12

			var principalPayment float64
			if loan.RepaymentType == model.RepaymentEqualPrincipal {
				principalPayment = loan.Principal / float64(loan.TermMonths)
			} else if offset == loan.TermMonths-1 {
				principalPayment = loan.Principal
			}
			principalPayment = math.Min(principalPayment, outstanding)
			outstanding -= principalPayment

			bucket, ok := yearly[yearIndex]
			if !ok {
				bucket = &yearTotal{}
				yearly[yearIndex] = bucket
			}
			bucket.interest += interest
			bucket.principal += principalPayment
			if yearIndex > maxYear {
				maxYear = yearIndex
			}
		}
	}

	for year := 1; year <= maxYear; year++ {
		bucket, ok := yearly[year]
		if !ok {
			continue
		}
		debtService := bucket.interest + bucket.principal
		if debtService > 0 {
			return operatingCF / debtService
		}
	}
	return math.NaN()
}
