package common

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	if got := Clamp(float32(5), 0, 10); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := Clamp(float32(-1), 0, 10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Clamp(float32(11), 0, 10); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("expected int clamp 10, got %v", got)
	}
}

func TestWrapAngle(t *testing.T) {
	pi := float32(math.Pi)
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{pi / 2, pi / 2},
		{2 * pi, 0},
		{3 * pi, pi},
		{-pi / 2, 3 * pi / 2},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); float32(math.Abs(float64(got-tt.want))) > 1e-5 {
			t.Errorf("WrapAngle(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestAbs(t *testing.T) {
	if Abs(-2.5) != 2.5 || Abs(2.5) != 2.5 || Abs(0) != 0 {
		t.Error("unexpected Abs results")
	}
}

func TestSliceToBytes(t *testing.T) {
	data := []float32{1, 2, 3}
	b := SliceToBytes(data)
	if len(b) != 12 {
		t.Errorf("expected 12 bytes, got %d", len(b))
	}
	if SliceToBytes([]float32(nil)) != nil {
		t.Error("expected nil for empty slice")
	}
}
