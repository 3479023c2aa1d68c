package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 表示単位
const (
	UnitYen         = "円"
	UnitThousandYen = "千円"
	UnitMillionYen  = "百万円"
)

// UnitFactors 表示単位ごとの換算係数
// 内部の金額は常に円建てで、換算は表示・出力時のみ行う。
var UnitFactors = map[string]float64{
	UnitYen:         1,
	UnitThousandYen: 1000,
	UnitMillionYen:  1000000,
}

// ScaleToUnit 円建ての金額を表示単位へ換算（元の値は変更しない）
func ScaleToUnit(yen float64, unit string) float64 {
	factor, ok := UnitFactors[unit]
	if !ok || factor == 0 {
		factor = 1
	}
	return yen / factor
}

// FormatMoney 金額の表示文字列（NaN/Infは「—」）
func FormatMoney(yen float64, unit string) string {
	if math.IsNaN(yen) || math.IsInf(yen, 0) {
		return "—"
	}
	scaled := ScaleToUnit(yen, unit)
	if math.Abs(scaled) >= 1 {
		return "¥" + groupDigits(fmt.Sprintf("%.0f", scaled))
	}
	return "¥" + fmt.Sprintf("%.2f", scaled)
}

// FormatMoneyWithUnit 単位付きの金額表示
func FormatMoneyWithUnit(yen float64, unit string) string {
	s := FormatMoney(yen, unit)
	if s == "—" {
		return s
	}
	return s + " " + unit
}

// FormatRatio 比率の表示文字列（NaN/Infは「—」）
func FormatRatio(ratio float64) string {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatDelta 差分の表示文字列（符号付き、ゼロは「±0」）
func FormatDelta(yen float64, unit string) string {
	if yen == 0 || math.IsNaN(yen) || math.IsInf(yen, 0) {
		return "±0"
	}
	sign := "+"
	if yen < 0 {
		sign = "-"
	}
	return sign + FormatMoneyWithUnit(math.Abs(yen), unit)
}

// groupDigits 3桁区切りのカンマを挿入
func groupDigits(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	var b strings.Builder
	n := len(intPart)
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	result := b.String() + fracPart
	if neg {
		result = "-" + result
	}
	return result
}

// RoundYen 円単位へ丸め（四捨五入）
func RoundYen(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return math.Round(v)
}

// ParseUnit 表示単位文字列の検証（未知の単位は円扱い）
func ParseUnit(s string) string {
	if _, ok := UnitFactors[s]; ok {
		return s
	}
	return UnitYen
}

// FormatFTE 人員数の表示
func FormatFTE(fte float64) string {
	return strconv.FormatFloat(fte, 'f', -1, 64) + "人"
}
