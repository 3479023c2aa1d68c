package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"keieiplan/internal/model"
)

// ErrSessionNotFound セッションが存在しない
var ErrSessionNotFound = errors.New("session not found")

// Settings セッション共通設定（単位・人員など）
type Settings struct {
	Unit       string  `json:"unit"`
	FTE        float64 `json:"fte"`
	FiscalYear int     `json:"fiscalYear"`
}

// Session 1ユーザー分の計画編集状態
// 永続化はせず、メモリ上のみで保持する。
type Session struct {
	ID             string                         `json:"id"`
	Bundle         model.FinanceBundle            `json:"bundle"`
	Settings       Settings                       `json:"settings"`
	Overrides      map[model.LineCode]float64     `json:"overrides"`
	WorkingCapital model.WorkingCapitalProfile    `json:"workingCapital"`
	MonteCarlo     model.MonteCarloConfig         `json:"monteCarlo"`
	CreatedAt      time.Time                      `json:"createdAt"`
	UpdatedAt      time.Time                      `json:"updatedAt"`
}

// MemoryStore セッションのメモリ内ストア
type MemoryStore struct {
	sessions map[string]*Session
	defaults Settings
	mu       sync.RWMutex
}

// NewMemoryStore メモリストアを作成
func NewMemoryStore(defaults Settings) *MemoryStore {
	if defaults.Unit == "" {
		defaults.Unit = model.UnitMillionYen
	}
	if defaults.FTE == 0 {
		defaults.FTE = 20
	}
	if defaults.FiscalYear == 0 {
		defaults.FiscalYear = time.Now().Year()
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// CreateSession 既定の計画を持つ新規セッションを作成
func (s *MemoryStore) CreateSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session := &Session{
		ID:             uuid.NewString(),
		Bundle:         model.DefaultFinanceBundle(),
		Settings:       s.defaults,
		Overrides:      make(map[model.LineCode]float64),
		WorkingCapital: model.DefaultWorkingCapitalProfile(),
		MonteCarlo:     model.DefaultMonteCarloConfig(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.sessions[session.ID] = session
	return copySession(session)
}

// GetSession セッションを取得（コピーを返す）
func (s *MemoryStore) GetSession(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return copySession(session), nil
}

// UpdateBundle 財務入力一式を置き換える
func (s *MemoryStore) UpdateBundle(id string, bundle model.FinanceBundle) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Bundle = bundle
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// UpdateSettings 共通設定を更新
func (s *MemoryStore) UpdateSettings(id string, settings Settings) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	settings.Unit = model.ParseUnit(settings.Unit)
	session.Settings = settings
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// UpdateWorkingCapital 運転資本の想定を更新
func (s *MemoryStore) UpdateWorkingCapital(id string, wc model.WorkingCapitalProfile) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.WorkingCapital = wc
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// UpdateMonteCarlo モンテカルロ設定を更新
func (s *MemoryStore) UpdateMonteCarlo(id string, cfg model.MonteCarloConfig) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.MonteCarlo = cfg
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// SetOverride 科目の金額上書きを設定
func (s *MemoryStore) SetOverride(id string, code model.LineCode, amount float64) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Overrides[code] = amount
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// ClearOverride 科目の金額上書きを解除（codeが空なら全解除）
func (s *MemoryStore) ClearOverride(id string, code model.LineCode) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if code == "" {
		session.Overrides = make(map[model.LineCode]float64)
	} else {
		delete(session.Overrides, code)
	}
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// ResetSession セッションを既定の計画へ戻す
func (s *MemoryStore) ResetSession(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Bundle = model.DefaultFinanceBundle()
	session.Overrides = make(map[model.LineCode]float64)
	session.WorkingCapital = model.DefaultWorkingCapitalProfile()
	session.MonteCarlo = model.DefaultMonteCarloConfig()
	session.Settings = s.defaults
	session.UpdatedAt = time.Now()
	return copySession(session), nil
}

// DeleteSession セッションを破棄
func (s *MemoryStore) DeleteSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count セッション数
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// copySession 呼び出し側へ渡す複製を作る（ストア内部の状態を守る）
func copySession(src *Session) *Session {
	dst := *src
	dst.Bundle = copyBundle(src.Bundle)
	dst.Overrides = make(map[model.LineCode]float64, len(src.Overrides))
	for code, v := range src.Overrides {
		dst.Overrides[code] = v
	}
	dst.MonteCarlo.Drivers = make(map[model.Driver]model.DriverDistribution, len(src.MonteCarlo.Drivers))
	for d, cfg := range src.MonteCarlo.Drivers {
		dst.MonteCarlo.Drivers[d] = cfg
	}
	return &dst
}

// copyBundle 財務入力一式の深い複製
func copyBundle(src model.FinanceBundle) model.FinanceBundle {
	dst := src
	dst.Sales.Items = make([]model.SalesItem, len(src.Sales.Items))
	for i, item := range src.Sales.Items {
		item.Monthly.Amounts = append([]float64(nil), item.Monthly.Amounts...)
		dst.Sales.Items[i] = item
	}
	dst.Costs.VariableRatios = copyAmountMap(src.Costs.VariableRatios)
	dst.Costs.GrossLinkedRatios = copyAmountMap(src.Costs.GrossLinkedRatios)
	dst.Costs.FixedCosts = copyAmountMap(src.Costs.FixedCosts)
	dst.Costs.NonOperatingIncome = copyAmountMap(src.Costs.NonOperatingIncome)
	dst.Costs.NonOperatingExpenses = copyAmountMap(src.Costs.NonOperatingExpenses)
	dst.Capex.Items = append([]model.CapexItem(nil), src.Capex.Items...)
	dst.Loans.Loans = append([]model.LoanItem(nil), src.Loans.Loans...)
	return dst
}

func copyAmountMap(src map[model.LineCode]float64) map[model.LineCode]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[model.LineCode]float64, len(src))
	for code, v := range src {
		dst[code] = v
	}
	return dst
}
