package store

import (
	"testing"

	"keieiplan/internal/model"
)

// TestCreateAndGetSession セッションの作成と取得
func TestCreateAndGetSession(t *testing.T) {
	st := NewMemoryStore(Settings{Unit: model.UnitMillionYen, FTE: 20, FiscalYear: 2025})

	sess := st.CreateSession()
	if sess.ID == "" {
		t.Fatal("session ID should not be empty")
	}
	if sess.Settings.Unit != model.UnitMillionYen {
		t.Errorf("Unit = %s, want %s", sess.Settings.Unit, model.UnitMillionYen)
	}
	if len(sess.Bundle.Sales.Items) == 0 {
		t.Error("new session should carry a default plan")
	}

	got, err := st.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.ID != sess.ID {
		t.Errorf("ID = %s, want %s", got.ID, sess.ID)
	}

	if _, err := st.GetSession("missing"); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

// TestSessionIsolation 返却値の変更はストア内部へ波及しない
func TestSessionIsolation(t *testing.T) {
	st := NewMemoryStore(Settings{})
	sess := st.CreateSession()

	// 取得したコピーを書き換えても保存側は変わらない
	sess.Bundle.Costs.VariableRatios[model.LineCOGSMat] = 0.99
	sess.Settings.FTE = 999

	got, err := st.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.Bundle.Costs.VariableRatios[model.LineCOGSMat] == 0.99 {
		t.Error("bundle map should be deep copied")
	}
	if got.Settings.FTE == 999 {
		t.Error("settings should be copied")
	}
}

// TestOverrides 金額上書きの設定と解除
func TestOverrides(t *testing.T) {
	st := NewMemoryStore(Settings{})
	sess := st.CreateSession()

	updated, err := st.SetOverride(sess.ID, model.LineCOGSMat, 55_000_000)
	if err != nil {
		t.Fatalf("set override: %v", err)
	}
	if updated.Overrides[model.LineCOGSMat] != 55_000_000 {
		t.Errorf("override = %v, want 55000000", updated.Overrides[model.LineCOGSMat])
	}

	updated, err = st.ClearOverride(sess.ID, model.LineCOGSMat)
	if err != nil {
		t.Fatalf("clear override: %v", err)
	}
	if _, ok := updated.Overrides[model.LineCOGSMat]; ok {
		t.Error("override should be cleared")
	}

	// 空コードで全解除
	_, _ = st.SetOverride(sess.ID, model.LineCOGSMat, 1)
	_, _ = st.SetOverride(sess.ID, model.LineOpexH, 2)
	updated, err = st.ClearOverride(sess.ID, "")
	if err != nil {
		t.Fatalf("clear all: %v", err)
	}
	if len(updated.Overrides) != 0 {
		t.Errorf("overrides = %d, want 0", len(updated.Overrides))
	}
}

// TestUpdateBundle 財務入力の置き換え
func TestUpdateBundle(t *testing.T) {
	st := NewMemoryStore(Settings{})
	sess := st.CreateSession()

	bundle := model.DefaultFinanceBundle()
	bundle.Costs.VariableRatios[model.LineCOGSMat] = 0.5

	updated, err := st.UpdateBundle(sess.ID, bundle)
	if err != nil {
		t.Fatalf("update bundle: %v", err)
	}
	if updated.Bundle.Costs.VariableRatios[model.LineCOGSMat] != 0.5 {
		t.Errorf("ratio = %v, want 0.5", updated.Bundle.Costs.VariableRatios[model.LineCOGSMat])
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Error("UpdatedAt should move forward")
	}
}

// TestResetSession 既定値へ戻す
func TestResetSession(t *testing.T) {
	st := NewMemoryStore(Settings{FTE: 20})
	sess := st.CreateSession()

	_, _ = st.SetOverride(sess.ID, model.LineCOGSMat, 1)
	settings := sess.Settings
	settings.FTE = 50
	_, _ = st.UpdateSettings(sess.ID, settings)

	reset, err := st.ResetSession(sess.ID)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(reset.Overrides) != 0 {
		t.Error("overrides should be cleared on reset")
	}
	if reset.Settings.FTE != 20 {
		t.Errorf("FTE = %v, want default 20", reset.Settings.FTE)
	}
}

// TestDeleteSession 削除とカウント
func TestDeleteSession(t *testing.T) {
	st := NewMemoryStore(Settings{})
	sess := st.CreateSession()
	_ = st.CreateSession()

	if st.Count() != 2 {
		t.Fatalf("count = %d, want 2", st.Count())
	}

	st.DeleteSession(sess.ID)
	if st.Count() != 1 {
		t.Errorf("count = %d, want 1", st.Count())
	}
	if _, err := st.GetSession(sess.ID); err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
