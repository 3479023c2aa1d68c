package model

import (
	"testing"
)

// TestMonthlySeries 月次系列の合計と検証
func TestMonthlySeries(t *testing.T) {
	s := NewUniformSeries(80_000_000)
	if len(s.Amounts) != MonthCount {
		t.Fatalf("len = %d, want %d", len(s.Amounts), MonthCount)
	}
	if s.Total() != 960_000_000 {
		t.Errorf("Total = %v, want 960000000", s.Total())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}

	short := MonthlySeries{Amounts: []float64{1, 2, 3}}
	if err := short.Validate(); err == nil {
		t.Error("short series should fail validation")
	}
}

// TestSalesPlanTotals 売上計画の集計
func TestSalesPlanTotals(t *testing.T) {
	plan := SalesPlan{Items: []SalesItem{
		{Channel: "店舗", Product: "製品A", Monthly: NewUniformSeries(1_000_000)},
		{Channel: "オンライン", Product: "製品B", Monthly: NewUniformSeries(500_000)},
	}}

	if plan.AnnualTotal() != 18_000_000 {
		t.Errorf("AnnualTotal = %v, want 18000000", plan.AnnualTotal())
	}

	byMonth := plan.TotalByMonth()
	if len(byMonth) != MonthCount {
		t.Fatalf("months = %d, want %d", len(byMonth), MonthCount)
	}
	if byMonth[0] != 1_500_000 {
		t.Errorf("month[0] = %v, want 1500000", byMonth[0])
	}
}

// TestCostPlanValidate 費用計画の検証
func TestCostPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    CostPlan
		wantErr bool
	}{
		{"正常", CostPlan{VariableRatios: map[LineCode]float64{LineCOGSMat: 0.25}}, false},
		{"変動費率が1超", CostPlan{VariableRatios: map[LineCode]float64{LineCOGSMat: 1.2}}, true},
		{"変動費率が負", CostPlan{VariableRatios: map[LineCode]float64{LineCOGSMat: -0.1}}, true},
		{"粗利連動率が1超", CostPlan{GrossLinkedRatios: map[LineCode]float64{LineCOGSOutSrc: 1.5}}, true},
		{"固定費が負", CostPlan{FixedCosts: map[LineCode]float64{LineOpexH: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestCapexDepreciation 定額法の減価償却
func TestCapexDepreciation(t *testing.T) {
	plan := CapexPlan{Items: []CapexItem{
		{Name: "生産ライン", Amount: 50_000_000, UsefulLifeYears: 10},
		{Name: "什器", Amount: 3_000_000, UsefulLifeYears: 5},
		{Name: "耐用年数なし", Amount: 1_000_000, UsefulLifeYears: 0},
	}}

	if plan.AnnualDepreciation() != 5_600_000 {
		t.Errorf("AnnualDepreciation = %v, want 5600000", plan.AnnualDepreciation())
	}
	if plan.TotalInvestment() != 54_000_000 {
		t.Errorf("TotalInvestment = %v, want 54000000", plan.TotalInvestment())
	}
}

// TestLoanValidate 借入項目の検証
func TestLoanValidate(t *testing.T) {
	tests := []struct {
		name    string
		loan    LoanItem
		wantErr bool
	}{
		{"正常", LoanItem{Principal: 10_000_000, InterestRate: 0.02, TermMonths: 120}, false},
		{"元本ゼロ", LoanItem{Principal: 0, InterestRate: 0.02, TermMonths: 120}, true},
		{"金利が高すぎ", LoanItem{Principal: 1, InterestRate: 0.25, TermMonths: 120}, true},
		{"期間ゼロ", LoanItem{Principal: 1, InterestRate: 0.02, TermMonths: 0}, true},
		{"期間600ヶ月超", LoanItem{Principal: 1, InterestRate: 0.02, TermMonths: 601}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loan.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestTaxPolicy 税制設定
func TestTaxPolicy(t *testing.T) {
	tax := DefaultTaxPolicy()
	if err := tax.Validate(); err != nil {
		t.Fatalf("default policy should validate: %v", err)
	}

	if got := tax.EffectiveTax(10_000_000); got != 3_000_000 {
		t.Errorf("EffectiveTax = %v, want 3000000", got)
	}
	if got := tax.EffectiveTax(-1); got != 0 {
		t.Errorf("tax on loss = %v, want 0", got)
	}

	bad := TaxPolicy{CorporateTaxRate: 0.60}
	if err := bad.Validate(); err == nil {
		t.Error("60% corporate tax should fail validation")
	}
}

// TestDefaultFinanceBundle 既定計画は検証を通る
func TestDefaultFinanceBundle(t *testing.T) {
	bundle := DefaultFinanceBundle()
	if err := bundle.Validate(); err != nil {
		t.Fatalf("default bundle should validate: %v", err)
	}
	if bundle.Sales.AnnualTotal() != 960_000_000 {
		t.Errorf("annual sales = %v, want 960000000", bundle.Sales.AnnualTotal())
	}
}

// TestIndustryTemplates 業種テンプレート
func TestIndustryTemplates(t *testing.T) {
	templates := IndustryTemplates()
	if len(templates) == 0 {
		t.Fatal("no templates")
	}

	for _, tmpl := range templates {
		bundle := tmpl.Bundle()
		if err := bundle.Validate(); err != nil {
			t.Errorf("template %s should produce a valid bundle: %v", tmpl.Key, err)
		}
		if bundle.Sales.AnnualTotal() <= 0 {
			t.Errorf("template %s has no sales", tmpl.Key)
		}
	}

	if _, ok := TemplateByKey("manufacturing"); !ok {
		t.Error("manufacturing template should exist")
	}
	if _, ok := TemplateByKey("unknown"); ok {
		t.Error("unknown template should not resolve")
	}
}

// TestScenarioPresetsImmutable 返却スライスの変更は内部に波及しない
func TestScenarioPresetsImmutable(t *testing.T) {
	presets := ScenarioPresets()
	if len(presets) == 0 {
		t.Fatal("no presets")
	}
	original := presets[0].Name
	presets[0].Name = "書き換え"

	again := ScenarioPresets()
	if again[0].Name != original {
		t.Error("preset slice should be copied")
	}
}

// TestPlanConfigClone 複製の独立性
func TestPlanConfigClone(t *testing.T) {
	p := NewPlanConfig(100_000_000, 20, UnitMillionYen)
	p.SetRate(LineCOGSMat, 0.6, RateBaseSales)

	c := p.Clone()
	c.SetRate(LineCOGSMat, 0.9, RateBaseSales)

	orig, _ := p.ItemValue(LineCOGSMat)
	if orig.Value != 0.6 {
		t.Errorf("original rate = %v, want 0.6", orig.Value)
	}

	// 金額上書きも複製され、複製側の変更は元に影響しない
	p.Overrides = map[LineCode]float64{LineOpexOth: 1_000_000}
	c2 := p.Clone()
	c2.Overrides[LineOpexOth] = 2_000_000
	if p.Overrides[LineOpexOth] != 1_000_000 {
		t.Errorf("original override = %v, want 1000000", p.Overrides[LineOpexOth])
	}
}

// TestAddAmount 金額指定への加算
func TestAddAmount(t *testing.T) {
	p := NewPlanConfig(0, 1, UnitYen)
	p.AddAmount(LineOpexDep, 1_000_000)
	p.AddAmount(LineOpexDep, 500_000)

	s, _ := p.ItemValue(LineOpexDep)
	if s.Value != 1_500_000 {
		t.Errorf("OPEX_DEP = %v, want 1500000", s.Value)
	}

	// 率指定の科目は金額指定で置き換わる
	p.SetRate(LineCOGSMat, 0.5, RateBaseSales)
	p.AddAmount(LineCOGSMat, 100)
	s, _ = p.ItemValue(LineCOGSMat)
	if s.Method != MethodAmount || s.Value != 100 {
		t.Errorf("COGS_MAT = %+v, want amount 100", s)
	}
}
