package excel

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"keieiplan/internal/model"
)

// Exporter 計画・KPI・感度分析のExcel出力
type Exporter struct{}

// NewExporter エクスポーターを作成
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportInput 出力内容一式
// 金額はすべて円建てで受け取り、表示単位への換算は出力時のみ行う。
type ExportInput struct {
	Unit        string
	FiscalYear  int
	FTE         float64
	Amounts     model.Amounts
	Metrics     model.Metrics
	Sensitivity []model.SensitivityEntry
	Scenarios   []model.ScenarioResult
}

// Export ワークブックを組み立てる
func (e *Exporter) Export(in ExportInput) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	// シート1: 計画数値
	planSheet := "計画数値"
	f.SetSheetName("Sheet1", planSheet)

	planHeaders := []string{"科目", fmt.Sprintf("金額(%s)", in.Unit)}
	for i, h := range planHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(planSheet, cell, h)
	}
	row := 2
	for _, line := range model.PlanLines {
		f.SetCellValue(planSheet, fmt.Sprintf("A%d", row), line.Label)
		value := in.Amounts.Get(line.Code)
		if line.Code == model.LineLDR {
			// 労働分配率のみ比率
			f.SetCellValue(planSheet, fmt.Sprintf("B%d", row), ratioCell(value))
		} else {
			setMoneyCell(f, planSheet, fmt.Sprintf("B%d", row), value, in.Unit)
		}
		row++
	}
	f.SetRowStyle(planSheet, 1, 1, headerStyle)
	f.SetColWidth(planSheet, "A", "A", 30)
	f.SetColWidth(planSheet, "B", "B", 18)

	// シート2: KPI
	kpiSheet := "KPI"
	f.NewSheet(kpiSheet)
	kpiRows := [][]interface{}{
		{"KPI", "数値"},
		{"売上高", moneyCell(float64(in.Metrics.Sales), in.Unit)},
		{"粗利(加工高)", moneyCell(float64(in.Metrics.Gross), in.Unit)},
		{"営業利益", moneyCell(float64(in.Metrics.Op), in.Unit)},
		{"経常利益", moneyCell(float64(in.Metrics.Ord), in.Unit)},
		{"粗利率", ratioCell(float64(in.Metrics.GrossMargin))},
		{"営業利益率", ratioCell(float64(in.Metrics.OpMargin))},
		{"経常利益率", ratioCell(float64(in.Metrics.OrdMargin))},
		{"外部仕入比率", ratioCell(float64(in.Metrics.CogsRatio))},
		{"内部費用比率", ratioCell(float64(in.Metrics.OpexRatio))},
		{"労働分配率", ratioCell(float64(in.Metrics.LaborShare))},
		{"損益分岐点売上高", moneyCell(float64(in.Metrics.Breakeven), in.Unit)},
		{"一人当たり売上", moneyCell(float64(in.Metrics.PerCapitaSales), in.Unit)},
		{"一人当たり粗利", moneyCell(float64(in.Metrics.PerCapitaGross), in.Unit)},
		{"一人当たり経常利益", moneyCell(float64(in.Metrics.PerCapitaOrd), in.Unit)},
	}
	writeRows(f, kpiSheet, kpiRows)
	f.SetRowStyle(kpiSheet, 1, 1, headerStyle)
	f.SetColWidth(kpiSheet, "A", "A", 24)
	f.SetColWidth(kpiSheet, "B", "B", 18)

	// シート3: 感度分析
	sensSheet := "感度分析"
	f.NewSheet(sensSheet)
	sensHeaders := []string{"ドライバー", "変動幅(±%)", fmt.Sprintf("下振れ(%s)", in.Unit), fmt.Sprintf("上振れ(%s)", in.Unit), fmt.Sprintf("影響度(%s)", in.Unit)}
	for i, h := range sensHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sensSheet, cell, h)
	}
	for i, entry := range in.Sensitivity {
		r := i + 2
		f.SetCellValue(sensSheet, fmt.Sprintf("A%d", r), entry.Label)
		f.SetCellValue(sensSheet, fmt.Sprintf("B%d", r), entry.DeltaPct)
		setMoneyCell(f, sensSheet, fmt.Sprintf("C%d", r), float64(entry.Low), in.Unit)
		setMoneyCell(f, sensSheet, fmt.Sprintf("D%d", r), float64(entry.High), in.Unit)
		setMoneyCell(f, sensSheet, fmt.Sprintf("E%d", r), float64(entry.Impact), in.Unit)
	}
	f.SetRowStyle(sensSheet, 1, 1, headerStyle)
	f.SetColWidth(sensSheet, "A", "E", 16)

	// シート4: シナリオ比較
	if len(in.Scenarios) > 0 {
		scnSheet := "シナリオ比較"
		f.NewSheet(scnSheet)
		scnHeaders := []string{"コード", "シナリオ", "売上高", "粗利", "営業利益", "経常利益", "FCF", "DSCR"}
		for i, h := range scnHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(scnSheet, cell, h)
		}
		for i, s := range in.Scenarios {
			r := i + 2
			f.SetCellValue(scnSheet, fmt.Sprintf("A%d", r), s.Code)
			f.SetCellValue(scnSheet, fmt.Sprintf("B%d", r), s.Name)
			setMoneyCell(f, scnSheet, fmt.Sprintf("C%d", r), float64(s.Sales), in.Unit)
			setMoneyCell(f, scnSheet, fmt.Sprintf("D%d", r), float64(s.Gross), in.Unit)
			setMoneyCell(f, scnSheet, fmt.Sprintf("E%d", r), float64(s.Op), in.Unit)
			setMoneyCell(f, scnSheet, fmt.Sprintf("F%d", r), float64(s.Ord), in.Unit)
			setMoneyCell(f, scnSheet, fmt.Sprintf("G%d", r), float64(s.FCF), in.Unit)
			if v := float64(s.DSCR); math.IsNaN(v) || math.IsInf(v, 0) {
				f.SetCellValue(scnSheet, fmt.Sprintf("H%d", r), "—")
			} else {
				f.SetCellValue(scnSheet, fmt.Sprintf("H%d", r), v)
			}
		}
		f.SetRowStyle(scnSheet, 1, 1, headerStyle)
		f.SetColWidth(scnSheet, "A", "H", 14)
	}

	// シート5: メタ情報
	metaSheet := "メタ情報"
	f.NewSheet(metaSheet)
	metaRows := [][]interface{}{
		{"項目", "値"},
		{"会計年度", in.FiscalYear},
		{"表示単位", in.Unit},
		{"従業員数", model.FormatFTE(in.FTE)},
		{"基準売上高", model.FormatMoneyWithUnit(float64(in.Metrics.Sales), in.Unit)},
		{"出力日時", time.Now().Format("2006-01-02 15:04:05")},
	}
	writeRows(f, metaSheet, metaRows)
	f.SetRowStyle(metaSheet, 1, 1, headerStyle)
	f.SetColWidth(metaSheet, "A", "B", 20)

	return f, nil
}

// writeRows 2次元データをシートへ書き込む
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) {
	for i, r := range rows {
		for j, val := range r {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheet, cell, val)
		}
	}
}

// moneyCell 表示単位へ換算したセル値（NaN/Infは「—」）
func moneyCell(yen float64, unit string) interface{} {
	if math.IsNaN(yen) || math.IsInf(yen, 0) {
		return "—"
	}
	return model.ScaleToUnit(yen, unit)
}

// ratioCell 比率のセル値（NaN/Infは「—」）
func ratioCell(ratio float64) interface{} {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "—"
	}
	return fmt.Sprintf("%.2f%%", ratio*100)
}

func setMoneyCell(f *excelize.File, sheet, cell string, yen float64, unit string) {
	f.SetCellValue(sheet, cell, moneyCell(yen, unit))
}
