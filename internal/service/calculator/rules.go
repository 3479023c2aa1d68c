package calculator

import (
	"fmt"
	"math"

	"keieiplan/internal/model"
)

// ValidatePlan 計画モデルの入力規則を検証する（逆算・エクスポート前の確認用）
func ValidatePlan(p *model.PlanConfig) []string {
	if p == nil {
		return []string{}
	}

	errs := make([]string, 0, 4)

	if p.BaseSales < 0 {
		errs = append(errs, "売上高は0以上で入力してください")
	}
	if math.IsNaN(p.BaseSales) || math.IsInf(p.BaseSales, 0) {
		errs = append(errs, "売上高が不正な値です")
	}
	if p.FTE < 0 {
		errs = append(errs, "従業員数は0以上で入力してください")
	}

	for code, cfg := range p.Items {
		if math.IsNaN(cfg.Value) || math.IsInf(cfg.Value, 0) {
			errs = append(errs, fmt.Sprintf("%s の設定値が不正です", model.LineLabel(code)))
			continue
		}
		if cfg.Method == model.MethodRate && (cfg.Value < 0 || cfg.Value > 1) {
			errs = append(errs, fmt.Sprintf("%s の率は0〜1の範囲に収めてください", model.LineLabel(code)))
		}
		if cfg.Method == model.MethodAmount && cfg.Value < 0 {
			errs = append(errs, fmt.Sprintf("%s の金額は0以上で入力してください", model.LineLabel(code)))
		}
	}

	return errs
}
