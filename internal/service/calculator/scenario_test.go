package calculator

import (
	"testing"

	"keieiplan/internal/model"
)

// TestApplyDeltasBaseline 変動ゼロなら基本計画と一致
func TestApplyDeltasBaseline(t *testing.T) {
	plan := createTestPlan()
	base := Compute(plan, ComputeOptions{})

	amounts := applyDeltas(plan, ScenarioDeltas{})

	for _, code := range []model.LineCode{model.LineREV, model.LineGross, model.LineOP, model.LineORD} {
		if !floatEquals(amounts.Get(code), base.Get(code)) {
			t.Errorf("%s = %v, want %v", code, amounts.Get(code), base.Get(code))
		}
	}
}

// TestApplyDeltasSales 客数・単価は売上への乗数
func TestApplyDeltasSales(t *testing.T) {
	plan := createTestPlan()

	amounts := applyDeltas(plan, ScenarioDeltas{Customers: 0.08, Price: 0.05})

	expected := 100_000_000 * 1.08 * 1.05
	if !floatEquals(amounts.Get(model.LineREV), expected) {
		t.Errorf("REV = %v, want %v", amounts.Get(model.LineREV), expected)
	}
}

// TestApplyDeltasCost 原価変動は変動費率を動かす
func TestApplyDeltasCost(t *testing.T) {
	plan := createTestPlan()

	amounts := applyDeltas(plan, ScenarioDeltas{Cost: 0.10})

	// 変動費率 60% → 66%
	if !floatEquals(amounts.Get(model.LineCOGSTotal), 66_000_000) {
		t.Errorf("COGS_TTL = %v, want 66000000", amounts.Get(model.LineCOGSTotal))
	}
}

// TestApplyDeltasOverridePinned 金額上書きされた科目は原価変動でも動かない
func TestApplyDeltasOverridePinned(t *testing.T) {
	plan := createTestPlan()
	plan.Overrides = map[model.LineCode]float64{
		model.LineCOGSMat: 55_000_000,
	}

	amounts := applyDeltas(plan, ScenarioDeltas{Cost: 0.10})

	if !floatEquals(amounts.Get(model.LineCOGSMat), 55_000_000) {
		t.Errorf("COGS_MAT = %v, want 55000000", amounts.Get(model.LineCOGSMat))
	}
}

// TestApplyDeltasPlanUnchanged シナリオ適用は元計画を変更しない
func TestApplyDeltasPlanUnchanged(t *testing.T) {
	plan := createTestPlan()
	before, _ := plan.ItemValue(model.LineCOGSMat)

	applyDeltas(plan, ScenarioDeltas{Cost: 0.10, Fixed: 0.05})

	after, _ := plan.ItemValue(model.LineCOGSMat)
	if !floatEquals(before.Value, after.Value) {
		t.Errorf("COGS_MAT rate changed: %v -> %v", before.Value, after.Value)
	}
}

// TestCompareScenarios 標準3シナリオの比較
func TestCompareScenarios(t *testing.T) {
	plan := createTestPlan()
	bundle := model.DefaultFinanceBundle()

	var presets []model.ScenarioPreset
	for _, key := range []string{"baseline", "best", "worst"} {
		p, ok := model.PresetByKey(key)
		if !ok {
			t.Fatalf("preset not found: %s", key)
		}
		presets = append(presets, p)
	}

	results := CompareScenarios(plan, bundle, presets)

	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	if results[0].Code != "A" || results[1].Code != "B" || results[2].Code != "C" {
		t.Errorf("codes = %s/%s/%s, want A/B/C", results[0].Code, results[1].Code, results[2].Code)
	}

	// 楽観 > 基準 > 悲観 の順で経常利益が並ぶ
	if float64(results[1].Ord) <= float64(results[0].Ord) {
		t.Errorf("best Ord %v should exceed baseline %v", float64(results[1].Ord), float64(results[0].Ord))
	}
	if float64(results[2].Ord) >= float64(results[0].Ord) {
		t.Errorf("worst Ord %v should be below baseline %v", float64(results[2].Ord), float64(results[0].Ord))
	}
}

// TestPresetByCode プリセットは表示コードでも引ける
func TestPresetByCode(t *testing.T) {
	byKey, ok := model.PresetByKey("best")
	if !ok {
		t.Fatal("preset best not found")
	}
	byCode, ok := model.PresetByKey("B")
	if !ok {
		t.Fatal("preset B not found")
	}
	if byKey.Key != byCode.Key {
		t.Errorf("key lookup %s != code lookup %s", byKey.Key, byCode.Key)
	}
}
