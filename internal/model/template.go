package model

// IndustryTemplate 業種別の入力スターターテンプレート
type IndustryTemplate struct {
	Key            string                `json:"key"`
	Label          string                `json:"label"`
	Description    string                `json:"description"`
	Sales          SalesPlan             `json:"sales"`
	VariableRatios map[LineCode]float64  `json:"variableRatios"`
	FixedCosts     map[LineCode]float64  `json:"fixedCosts"`
	WorkingCapital WorkingCapitalProfile `json:"workingCapital"`
	FTE            float64               `json:"fte"`
}

// Bundle テンプレートから財務入力一式を組み立てる
func (t IndustryTemplate) Bundle() FinanceBundle {
	bundle := DefaultFinanceBundle()
	bundle.Sales = t.Sales
	bundle.Costs.VariableRatios = make(map[LineCode]float64, len(t.VariableRatios))
	for code, ratio := range t.VariableRatios {
		bundle.Costs.VariableRatios[code] = ratio
	}
	bundle.Costs.FixedCosts = make(map[LineCode]float64, len(t.FixedCosts))
	for code, amount := range t.FixedCosts {
		bundle.Costs.FixedCosts[code] = amount
	}
	return bundle
}

var industryTemplates = []IndustryTemplate{
	{
		Key:         "manufacturing",
		Label:       "製造業",
		Description: "材料費と外注費の比率が高い、受注生産型のモデル",
		Sales: SalesPlan{
			Items: []SalesItem{
				{Channel: "直販", Product: "量産品", Monthly: NewUniformSeries(60000000)},
				{Channel: "商社経由", Product: "特注品", Monthly: NewUniformSeries(25000000)},
			},
		},
		VariableRatios: map[LineCode]float64{
			LineCOGSMat:    0.32,
			LineCOGSLbr:    0.05,
			LineCOGSOutSrc: 0.12,
			LineCOGSOutCon: 0.03,
		},
		FixedCosts: map[LineCode]float64{
			LineOpexH:   220000000,
			LineOpexAd:  12000000,
			LineOpexOth: 180000000,
			LineOpexDep: 36000000,
		},
		WorkingCapital: WorkingCapitalProfile{ReceivableDays: 60, InventoryDays: 45, PayableDays: 40},
		FTE:            45,
	},
	{
		Key:         "restaurant",
		Label:       "飲食業",
		Description: "原価率と人件費のバランスが利益を決める店舗型モデル",
		Sales: SalesPlan{
			Items: []SalesItem{
				{Channel: "店舗", Product: "フード", Monthly: NewUniformSeries(18000000)},
				{Channel: "店舗", Product: "ドリンク", Monthly: NewUniformSeries(7000000)},
				{Channel: "デリバリー", Product: "フード", Monthly: NewUniformSeries(4000000)},
			},
		},
		VariableRatios: map[LineCode]float64{
			LineCOGSMat: 0.30,
			LineCOGSOth: 0.02,
		},
		FixedCosts: map[LineCode]float64{
			LineOpexH:    110000000,
			LineOpexAd:   9000000,
			LineOpexUtil: 14000000,
			LineOpexOth:  60000000,
			LineOpexDep:  10000000,
		},
		WorkingCapital: WorkingCapitalProfile{ReceivableDays: 5, InventoryDays: 7, PayableDays: 20},
		FTE:            28,
	},
	{
		Key:         "it_service",
		Label:       "ITサービス",
		Description: "変動費が小さく、人件費が主要コストの受託・SaaS複合モデル",
		Sales: SalesPlan{
			Items: []SalesItem{
				{Channel: "直販", Product: "受託開発", Monthly: NewUniformSeries(35000000)},
				{Channel: "オンライン", Product: "SaaS", Monthly: NewUniformSeries(12000000)},
			},
		},
		VariableRatios: map[LineCode]float64{
			LineCOGSOutCon: 0.08,
			LineCOGSOth:    0.02,
		},
		FixedCosts: map[LineCode]float64{
			LineOpexH:   320000000,
			LineOpexAd:  25000000,
			LineOpexOth: 90000000,
			LineOpexDep: 8000000,
		},
		WorkingCapital: WorkingCapitalProfile{ReceivableDays: 45, InventoryDays: 0, PayableDays: 30},
		FTE:            40,
	},
}

// IndustryTemplates 業種テンプレートの一覧（コピーを返す）
func IndustryTemplates() []IndustryTemplate {
	templates := make([]IndustryTemplate, len(industryTemplates))
	copy(templates, industryTemplates)
	return templates
}

// TemplateByKey キーで業種テンプレートを取得
func TemplateByKey(key string) (IndustryTemplate, bool) {
	for _, t := range industryTemplates {
		if t.Key == key {
			return t, true
		}
	}
	return IndustryTemplate{}, false
}
