package model

import (
	"encoding/json"
	"math"
	"testing"
)

// TestJSONFloatMarshal NaN/Inf は null になる
func TestJSONFloatMarshal(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"通常の値", 123.5, "123.5"},
		{"NaNはnull", math.NaN(), "null"},
		{"+Infはnull", math.Inf(1), "null"},
		{"-Infはnull", math.Inf(-1), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(JSONFloat(tt.value))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(b) != tt.expected {
				t.Errorf("marshal = %s, want %s", b, tt.expected)
			}
		})
	}
}

// TestJSONFloatUnmarshal null は NaN として受ける
func TestJSONFloatUnmarshal(t *testing.T) {
	var f JSONFloat
	if err := json.Unmarshal([]byte("null"), &f); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !math.IsNaN(float64(f)) {
		t.Errorf("null should become NaN, got %v", float64(f))
	}

	if err := json.Unmarshal([]byte("42"), &f); err != nil {
		t.Fatalf("unmarshal 42: %v", err)
	}
	if float64(f) != 42 {
		t.Errorf("got %v, want 42", float64(f))
	}
}

// TestMetricsMarshal Metrics全体のシリアライズでNaNが混ざっても壊れない
func TestMetricsMarshal(t *testing.T) {
	m := Metrics{
		Sales:      JSONFloat(100_000_000),
		LaborShare: JSONFloat(math.NaN()),
		Breakeven:  JSONFloat(math.Inf(1)),
	}

	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["laborShare"] != nil {
		t.Errorf("laborShare = %v, want null", decoded["laborShare"])
	}
	if decoded["breakeven"] != nil {
		t.Errorf("breakeven = %v, want null", decoded["breakeven"])
	}
	if decoded["sales"] != 100_000_000.0 {
		t.Errorf("sales = %v, want 1e8", decoded["sales"])
	}
}

// TestAmountsGet 未計算の科目は0
func TestAmountsGet(t *testing.T) {
	a := Amounts{LineREV: 100}
	if a.Get(LineREV) != 100 {
		t.Errorf("REV = %v, want 100", a.Get(LineREV))
	}
	if a.Get(LineORD) != 0 {
		t.Errorf("ORD = %v, want 0", a.Get(LineORD))
	}
}
