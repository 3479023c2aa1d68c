package model

import (
	"math"
	"testing"
)

// TestScaleToUnit 表示単位への換算
func TestScaleToUnit(t *testing.T) {
	tests := []struct {
		name     string
		yen      float64
		unit     string
		expected float64
	}{
		{"円はそのまま", 123456789, UnitYen, 123456789},
		{"千円", 123456789, UnitThousandYen, 123456.789},
		{"百万円", 123456789, UnitMillionYen, 123.456789},
		{"未知の単位は円扱い", 1000, "億円", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleToUnit(tt.yen, tt.unit)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("ScaleToUnit(%v, %s) = %v, want %v", tt.yen, tt.unit, got, tt.expected)
			}
		})
	}
}

// TestScaleToUnitPure 換算は表示専用で元の値を変えない
func TestScaleToUnitPure(t *testing.T) {
	yen := 123456789.0
	_ = ScaleToUnit(yen, UnitMillionYen)
	if yen != 123456789.0 {
		t.Error("source value should be untouched")
	}
}

// TestFormatMoney 金額の表示文字列
func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		yen      float64
		unit     string
		expected string
	}{
		{"カンマ区切り", 123456789, UnitYen, "¥123,456,789"},
		{"百万円表示", 250_000_000, UnitMillionYen, "¥250"},
		{"1未満は小数2桁", 500_000, UnitMillionYen, "¥0.50"},
		{"NaNはダッシュ", math.NaN(), UnitYen, "—"},
		{"Infはダッシュ", math.Inf(1), UnitYen, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMoney(tt.yen, tt.unit); got != tt.expected {
				t.Errorf("FormatMoney(%v, %s) = %q, want %q", tt.yen, tt.unit, got, tt.expected)
			}
		})
	}
}

// TestFormatRatio 比率の表示
func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(0.345); got != "34.5%" {
		t.Errorf("FormatRatio(0.345) = %q, want 34.5%%", got)
	}
	if got := FormatRatio(math.NaN()); got != "—" {
		t.Errorf("FormatRatio(NaN) = %q, want —", got)
	}
}

// TestFormatDelta 差分表示
func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(0, UnitYen); got != "±0" {
		t.Errorf("FormatDelta(0) = %q, want ±0", got)
	}
	if got := FormatDelta(1500, UnitYen); got != "+¥1,500 円" {
		t.Errorf("FormatDelta(1500) = %q", got)
	}
	if got := FormatDelta(-1500, UnitYen); got != "-¥1,500 円" {
		t.Errorf("FormatDelta(-1500) = %q", got)
	}
}

// TestParseUnit 未知の単位は円へ落とす
func TestParseUnit(t *testing.T) {
	if got := ParseUnit(UnitThousandYen); got != UnitThousandYen {
		t.Errorf("ParseUnit = %q, want 千円", got)
	}
	if got := ParseUnit("ドル"); got != UnitYen {
		t.Errorf("ParseUnit = %q, want 円", got)
	}
}

// TestRoundYen 円単位の丸め
func TestRoundYen(t *testing.T) {
	if got := RoundYen(1234.5); got != 1235 {
		t.Errorf("RoundYen(1234.5) = %v, want 1235", got)
	}
	if !math.IsNaN(RoundYen(math.NaN())) {
		t.Error("RoundYen(NaN) should stay NaN")
	}
}
