package calculator

import (
	"math"

	"keieiplan/internal/model"
)

// GenerateBalanceSheet 損益計算の結果から簡易貸借対照表を推定する
// 売掛・棚卸・買掛は回転日数の想定から逆算する。
func GenerateBalanceSheet(amounts model.Amounts, capex model.CapexPlan, loans model.LoanSchedule, tax model.TaxPolicy, wc model.WorkingCapitalProfile) model.BalanceSheet {
	ordinaryIncome := amounts.Get(model.LineORD)
	depreciation := amounts.Get(model.LineOpexDep)
	taxes := tax.EffectiveTax(ordinaryIncome)
	netIncome := ordinaryIncome - taxes

	operating := ordinaryIncome + depreciation - taxes
	investing := -capex.TotalInvestment()
	financing := -loans.AnnualInterest()
	cash := operating + investing + financing

	grossCapex := capex.TotalInvestment()
	accumulatedDep := capex.AnnualDepreciation()
	netPPE := math.Max(0, grossCapex-accumulatedDep)

	annualSales := amounts.Get(model.LineREV)
	annualCogs := amounts.Get(model.LineCOGSTotal)
	dailySales := 0.0
	if annualSales > 0 {
		dailySales = annualSales / 365
	}
	dailyCogs := 0.0
	if annualCogs > 0 {
		dailyCogs = annualCogs / 365
	}

	receivable := dailySales * wc.ReceivableDays
	inventory := dailyCogs * wc.InventoryDays
	payable := dailyCogs * wc.PayableDays

	totalAssets := cash + receivable + inventory + netPPE
	debt := loans.OutstandingPrincipal()
	totalLiabilities := debt + payable
	equity := totalAssets - totalLiabilities

	equityRatio := math.NaN()
	if totalAssets > 0 {
		equityRatio = equity / totalAssets
	}
	roe := math.NaN()
	if equity > 0 {
		roe = netIncome / equity
	}

	return model.BalanceSheet{
		Cash:               model.JSONFloat(cash),
		AccountsReceivable: model.JSONFloat(receivable),
		Inventory:          model.JSONFloat(inventory),
		NetPPE:             model.JSONFloat(netPPE),
		AccountsPayable:    model.JSONFloat(payable),
		Debt:               model.JSONFloat(debt),
		Equity:             model.JSONFloat(equity),
		TotalAssets:        model.JSONFloat(totalAssets),
		EquityRatio:        model.JSONFloat(equityRatio),
		ROE:                model.JSONFloat(roe),
		WorkingCapital:     model.JSONFloat(receivable + inventory - payable),
	}
}
