package model

import (
	"errors"
	"fmt"
)

// MonthCount 計画期間の月数
const MonthCount = 12

// MonthlySeries 12ヶ月分の金額系列(円)
type MonthlySeries struct {
	Amounts []float64 `json:"amounts"`
}

// NewUniformSeries 毎月同額の系列を作成
func NewUniformSeries(amount float64) MonthlySeries {
	amounts := make([]float64, MonthCount)
	for i := range amounts {
		amounts[i] = amount
	}
	return MonthlySeries{Amounts: amounts}
}

// Validate 月次系列の検証
func (s MonthlySeries) Validate() error {
	if len(s.Amounts) != MonthCount {
		return errors.New("月次データは必ず12ヶ月分を入力してください")
	}
	return nil
}

// Total 年間合計
func (s MonthlySeries) Total() float64 {
	total := 0.0
	for _, v := range s.Amounts {
		total += v
	}
	return total
}

// SalesItem チャネル×商品ごとの月次売上
type SalesItem struct {
	Channel string        `json:"channel"`
	Product string        `json:"product"`
	Monthly MonthlySeries `json:"monthly"`
}

// AnnualTotal 年間売上合計
func (i SalesItem) AnnualTotal() float64 {
	return i.Monthly.Total()
}

// SalesPlan 売上計画
type SalesPlan struct {
	Items []SalesItem `json:"items"`
}

// AnnualTotal 全項目の年間合計
func (p SalesPlan) AnnualTotal() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.AnnualTotal()
	}
	return total
}

// TotalByMonth 月別の売上合計
func (p SalesPlan) TotalByMonth() []float64 {
	totals := make([]float64, MonthCount)
	for _, item := range p.Items {
		if len(item.Monthly.Amounts) != MonthCount {
			continue
		}
		for m, v := range item.Monthly.Amounts {
			totals[m] += v
		}
	}
	return totals
}

// Validate 売上計画の検証
func (p SalesPlan) Validate() error {
	for _, item := range p.Items {
		if err := item.Monthly.Validate(); err != nil {
			return fmt.Errorf("%s/%s: %w", item.Channel, item.Product, err)
		}
	}
	return nil
}

// CostPlan 費用計画（変動費率と固定費に分けて保持する）
type CostPlan struct {
	VariableRatios       map[LineCode]float64 `json:"variableRatios"`       // 売上連動の変動費率
	GrossLinkedRatios    map[LineCode]float64 `json:"grossLinkedRatios"`    // 粗利連動の費率
	FixedCosts           map[LineCode]float64 `json:"fixedCosts"`           // 固定費(円)
	NonOperatingIncome   map[LineCode]float64 `json:"nonOperatingIncome"`   // 営業外収益(円)
	NonOperatingExpenses map[LineCode]float64 `json:"nonOperatingExpenses"` // 営業外費用(円)
}

// Validate 費用計画の検証
func (p CostPlan) Validate() error {
	for code, ratio := range p.VariableRatios {
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("変動費率 '%s' は0〜1の範囲に収めてください", code)
		}
	}
	for code, ratio := range p.GrossLinkedRatios {
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("粗利連動費率 '%s' は0〜1の範囲に収めてください", code)
		}
	}
	for code, amount := range p.FixedCosts {
		if amount < 0 {
			return fmt.Errorf("固定費 '%s' は0以上で入力してください", code)
		}
	}
	return nil
}

// CapexItem 設備投資項目
type CapexItem struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`          // 投資額(円)
	UsefulLifeYears int     `json:"usefulLifeYears"` // 耐用年数
}

// AnnualDepreciation 年間減価償却費（定額法）
func (i CapexItem) AnnualDepreciation() float64 {
	if i.UsefulLifeYears <= 0 {
		return 0
	}
	return i.Amount / float64(i.UsefulLifeYears)
}

// CapexPlan 設備投資計画
type CapexPlan struct {
	Items []CapexItem `json:"items"`
}

// AnnualDepreciation 年間減価償却費合計
func (p CapexPlan) AnnualDepreciation() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.AnnualDepreciation()
	}
	return total
}

// TotalInvestment 投資額合計
func (p CapexPlan) TotalInvestment() float64 {
	total := 0.0
	for _, item := range p.Items {
		total += item.Amount
	}
	return total
}

// 返済方式
const (
	RepaymentEqualPrincipal = "equal_principal" // 元金均等
	RepaymentInterestOnly   = "interest_only"   // 期日一括
)

// LoanItem 借入項目
type LoanItem struct {
	Name          string  `json:"name"`
	Principal     float64 `json:"principal"`    // 元本(円)
	InterestRate  float64 `json:"interestRate"` // 年利
	TermMonths    int     `json:"termMonths"`
	StartMonth    int     `json:"startMonth"`
	RepaymentType string  `json:"repaymentType"`
}

// Validate 借入項目の検証
func (i LoanItem) Validate() error {
	if i.Principal <= 0 {
		return errors.New("借入元本は正の値を入力してください")
	}
	if i.InterestRate < 0 || i.InterestRate > 0.2 {
		return errors.New("金利は0%〜20%の範囲で入力してください")
	}
	if i.TermMonths < 1 || i.TermMonths > 600 {
		return errors.New("返済期間は1〜600ヶ月の範囲で入力してください")
	}
	return nil
}

// AnnualInterest 年間支払利息（概算）
func (i LoanItem) AnnualInterest() float64 {
	return i.Principal * i.InterestRate
}

// LoanSchedule 借入計画
type LoanSchedule struct {
	Loans []LoanItem `json:"loans"`
}

// Validate 借入計画の検証
func (p LoanSchedule) Validate() error {
	for _, loan := range p.Loans {
		if err := loan.Validate(); err != nil {
			return fmt.Errorf("%s: %w", loan.Name, err)
		}
	}
	return nil
}

// AnnualInterest 年間支払利息合計
func (p LoanSchedule) AnnualInterest() float64 {
	total := 0.0
	for _, loan := range p.Loans {
		total += loan.AnnualInterest()
	}
	return total
}

// OutstandingPrincipal 借入残高合計
func (p LoanSchedule) OutstandingPrincipal() float64 {
	total := 0.0
	for _, loan := range p.Loans {
		total += loan.Principal
	}
	return total
}

// TaxPolicy 税制設定
type TaxPolicy struct {
	CorporateTaxRate    float64 `json:"corporateTaxRate"`
	ConsumptionTaxRate  float64 `json:"consumptionTaxRate"`
	DividendPayoutRatio float64 `json:"dividendPayoutRatio"`
}

// DefaultTaxPolicy 既定の税制設定
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		CorporateTaxRate:   0.30,
		ConsumptionTaxRate: 0.10,
	}
}

// Validate 税制設定の検証
func (t TaxPolicy) Validate() error {
	if t.CorporateTaxRate < 0 || t.CorporateTaxRate > 0.55 {
		return errors.New("法人税率は0%〜55%の範囲で設定してください")
	}
	if t.ConsumptionTaxRate < 0 || t.ConsumptionTaxRate > 0.20 {
		return errors.New("消費税率は0%〜20%の範囲で設定してください")
	}
	if t.DividendPayoutRatio < 0 || t.DividendPayoutRatio > 1 {
		return errors.New("配当性向は0%〜100%の範囲で設定してください")
	}
	return nil
}

// EffectiveTax 経常利益に対する実効税額（赤字は課税しない）
func (t TaxPolicy) EffectiveTax(ordinaryIncome float64) float64 {
	if ordinaryIncome <= 0 {
		return 0
	}
	return ordinaryIncome * t.CorporateTaxRate
}

// ProjectedDividend 予想配当額
func (t TaxPolicy) ProjectedDividend(netIncome float64) float64 {
	if netIncome <= 0 {
		return 0
	}
	return netIncome * t.DividendPayoutRatio
}

// FinanceBundle 財務入力一式
type FinanceBundle struct {
	Sales SalesPlan    `json:"sales"`
	Costs CostPlan     `json:"costs"`
	Capex CapexPlan    `json:"capex"`
	Loans LoanSchedule `json:"loans"`
	Tax   TaxPolicy    `json:"tax"`
}

// Validate 財務入力一式の検証
func (b FinanceBundle) Validate() error {
	if err := b.Sales.Validate(); err != nil {
		return err
	}
	if err := b.Costs.Validate(); err != nil {
		return err
	}
	if err := b.Loans.Validate(); err != nil {
		return err
	}
	return b.Tax.Validate()
}

// DefaultFinanceBundle 既定の財務入力（初回セッション用のサンプル計画）
func DefaultFinanceBundle() FinanceBundle {
	return FinanceBundle{
		Sales: SalesPlan{
			Items: []SalesItem{
				{
					Channel: "オンライン",
					Product: "主力製品",
					Monthly: NewUniformSeries(80000000),
				},
			},
		},
		Costs: CostPlan{
			VariableRatios: map[LineCode]float64{
				LineCOGSMat:    0.25,
				LineCOGSLbr:    0.06,
				LineCOGSOutSrc: 0.10,
				LineCOGSOutCon: 0.04,
				LineCOGSOth:    0.00,
			},
			FixedCosts: map[LineCode]float64{
				LineOpexH:   170000000,
				LineOpexOth: 468000000,
				LineOpexDep: 6000000,
			},
			NonOperatingIncome: map[LineCode]float64{
				LineNOIMisc: 100000,
			},
			NonOperatingExpenses: map[LineCode]float64{
				LineNOEInt: 7400000,
			},
		},
		Capex: CapexPlan{},
		Loans: LoanSchedule{},
		Tax:   DefaultTaxPolicy(),
	}
}
