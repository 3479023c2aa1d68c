package model

// LineCode 損益計算書の科目コード
type LineCode string

const (
	LineREV        LineCode = "REV"
	LineCOGSMat    LineCode = "COGS_MAT"
	LineCOGSLbr    LineCode = "COGS_LBR"
	LineCOGSOutSrc LineCode = "COGS_OUT_SRC"
	LineCOGSOutCon LineCode = "COGS_OUT_CON"
	LineCOGSOth    LineCode = "COGS_OTH"
	LineCOGSTotal  LineCode = "COGS_TTL"
	LineGross      LineCode = "GROSS"
	LineOpexH      LineCode = "OPEX_H"
	LineOpexAd     LineCode = "OPEX_AD"
	LineOpexUtil   LineCode = "OPEX_UTIL"
	LineOpexOth    LineCode = "OPEX_OTH"
	LineOpexDep    LineCode = "OPEX_DEP"
	LineOpexTotal  LineCode = "OPEX_TTL"
	LineOP         LineCode = "OP"
	LineNOIMisc    LineCode = "NOI_MISC"
	LineNOIGrant   LineCode = "NOI_GRANT"
	LineNOIOth     LineCode = "NOI_OTH"
	LineNOEInt     LineCode = "NOE_INT"
	LineNOEOth     LineCode = "NOE_OTH"
	LineORD        LineCode = "ORD"
	LineBESales    LineCode = "BE_SALES"
	LinePCSales    LineCode = "PC_SALES"
	LinePCGross    LineCode = "PC_GROSS"
	LinePCOrd      LineCode = "PC_ORD"
	LineLDR        LineCode = "LDR"
)

// PlanLine 科目定義（表示順を保持する）
type PlanLine struct {
	Code     LineCode `json:"code"`
	Label    string   `json:"label"`
	Category string   `json:"category"`
}

// PlanLines 損益計算書の科目一覧（表示順）
var PlanLines = []PlanLine{
	{LineREV, "売上高", "売上"},
	{LineCOGSMat, "外部仕入｜材料費", "外部仕入"},
	{LineCOGSLbr, "外部仕入｜労務費(外部)", "外部仕入"},
	{LineCOGSOutSrc, "外部仕入｜外注費(専属)", "外部仕入"},
	{LineCOGSOutCon, "外部仕入｜外注費(委託)", "外部仕入"},
	{LineCOGSOth, "外部仕入｜その他諸経費", "外部仕入"},
	{LineCOGSTotal, "外部仕入｜計", "外部仕入"},
	{LineGross, "粗利(加工高)", "粗利"},
	{LineOpexH, "内部費用｜人件費", "内部費用"},
	{LineOpexAd, "内部費用｜広告宣伝費", "内部費用"},
	{LineOpexUtil, "内部費用｜水道光熱費", "内部費用"},
	{LineOpexOth, "内部費用｜その他販管費", "内部費用"},
	{LineOpexDep, "内部費用｜減価償却費", "内部費用"},
	{LineOpexTotal, "内部費用｜計", "内部費用"},
	{LineOP, "営業利益", "損益"},
	{LineNOIMisc, "営業外収益｜雑収入", "営業外"},
	{LineNOIGrant, "営業外収益｜補助金/給付金", "営業外"},
	{LineNOIOth, "営業外収益｜その他", "営業外"},
	{LineNOEInt, "営業外費用｜支払利息", "営業外"},
	{LineNOEOth, "営業外費用｜雑損", "営業外"},
	{LineORD, "経常利益", "損益"},
	{LineBESales, "損益分岐点売上高", "KPI"},
	{LinePCSales, "一人当たり売上", "KPI"},
	{LinePCGross, "一人当たり粗利", "KPI"},
	{LinePCOrd, "一人当たり経常利益", "KPI"},
	{LineLDR, "労働分配率", "KPI"},
}

// LineLabel 科目コードから表示名を引く
func LineLabel(code LineCode) string {
	for _, l := range PlanLines {
		if l.Code == code {
			return l.Label
		}
	}
	return string(code)
}

// 科目グループ（計算時の走査順を固定する）
var (
	CostCodes      = []LineCode{LineCOGSMat, LineCOGSLbr, LineCOGSOutSrc, LineCOGSOutCon, LineCOGSOth}
	OpexCodes      = []LineCode{LineOpexH, LineOpexAd, LineOpexUtil, LineOpexOth, LineOpexDep}
	NOICodes       = []LineCode{LineNOIMisc, LineNOIGrant, LineNOIOth}
	NOECodes       = []LineCode{LineNOEInt, LineNOEOth}
	FixedCostCodes = []LineCode{LineOpexH, LineOpexAd, LineOpexUtil, LineOpexOth, LineOpexDep}
)

// ItemMethod 科目の設定方式
type ItemMethod string

const (
	MethodRate   ItemMethod = "rate"   // 率指定（売上または粗利に連動）
	MethodAmount ItemMethod = "amount" // 金額指定（固定）
)

// RateBase 率指定の基準
type RateBase string

const (
	RateBaseSales RateBase = "sales"
	RateBaseGross RateBase = "gross"
	RateBaseFixed RateBase = "fixed"
)

// ItemSetting 科目ごとの計画設定
type ItemSetting struct {
	Method   ItemMethod `json:"method"`
	Value    float64    `json:"value"`
	RateBase RateBase   `json:"rateBase"`
}

// PlanConfig 単年利益計画のモデル
// 金額は内部的にすべて円建てで保持する。表示単位の換算は表示層のみで行い、
// 保持している値は変更しない。
type PlanConfig struct {
	BaseSales float64                  `json:"baseSales"` // 基準売上高(円)
	FTE       float64                  `json:"fte"`       // 従業員数(人換算)
	Unit      string                   `json:"unit"`      // 表示単位
	Items     map[LineCode]ItemSetting `json:"items"`
	// Overrides 金額上書き(円)。率設定より優先し、どの計算でも固定扱いとする。
	Overrides map[LineCode]float64 `json:"overrides,omitempty"`
}

// NewPlanConfig 計画モデルを作成
func NewPlanConfig(baseSales, fte float64, unit string) *PlanConfig {
	return &PlanConfig{
		BaseSales: baseSales,
		FTE:       fte,
		Unit:      unit,
		Items:     make(map[LineCode]ItemSetting),
	}
}

// SetRate 率指定の科目を設定
func (p *PlanConfig) SetRate(code LineCode, rate float64, base RateBase) {
	p.Items[code] = ItemSetting{Method: MethodRate, Value: rate, RateBase: base}
}

// SetAmount 金額指定の科目を設定
func (p *PlanConfig) SetAmount(code LineCode, amount float64) {
	p.Items[code] = ItemSetting{Method: MethodAmount, Value: amount, RateBase: RateBaseFixed}
}

// AddAmount 金額指定の科目へ加算（率指定の場合は金額指定で置き換える）
func (p *PlanConfig) AddAmount(code LineCode, amount float64) {
	if cur, ok := p.Items[code]; ok && cur.Method == MethodAmount {
		cur.Value += amount
		p.Items[code] = cur
		return
	}
	p.SetAmount(code, amount)
}

// ItemValue 科目の設定値を取得
func (p *PlanConfig) ItemValue(code LineCode) (ItemSetting, bool) {
	s, ok := p.Items[code]
	return s, ok
}

// Clone 計画の複製（シナリオ適用時に元計画を守るため）
func (p *PlanConfig) Clone() *PlanConfig {
	cloned := &PlanConfig{
		BaseSales: p.BaseSales,
		FTE:       p.FTE,
		Unit:      p.Unit,
		Items:     make(map[LineCode]ItemSetting, len(p.Items)),
	}
	for code, s := range p.Items {
		cloned.Items[code] = s
	}
	if len(p.Overrides) > 0 {
		cloned.Overrides = make(map[LineCode]float64, len(p.Overrides))
		for code, v := range p.Overrides {
			cloned.Overrides[code] = v
		}
	}
	return cloned
}
