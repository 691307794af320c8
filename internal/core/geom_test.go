package core

import (
	"testing"
	"time"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInsetAndCentered(t *testing.T) {
	r := NewRect(0, 0, 20, 10)

	if got := r.Inset(2); got != NewRect(2, 2, 16, 6) {
		t.Errorf("Inset(2) = %+v", got)
	}
	if got := r.Inset(6); got.W != 8 || got.H != 0 {
		t.Errorf("Inset(6) = %+v, expected height clamped to 0", got)
	}
	if got := r.Centered(6, 4); got != NewRect(7, 3, 6, 4) {
		t.Errorf("Centered(6, 4) = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestTicksFor(t *testing.T) {
	tests := []struct {
		rate int
		d    time.Duration
		want int
	}{
		{60, 200 * time.Millisecond, 12},
		{60, 400 * time.Millisecond, 24},
		{30, 300 * time.Millisecond, 9},
		{60, 0, 1},
		{0, time.Second, 60},
	}
	for _, tt := range tests {
		cfg := RuntimeConfig{TickRate: tt.rate}
		if got := cfg.TicksFor(tt.d); got != tt.want {
			t.Errorf("TicksFor(%v) at %d fps = %d, expected %d", tt.d, tt.rate, got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Any() {
		t.Error("Any() = true on an empty frame")
	}

	f.Set(ActionHint)
	if !f.Has(ActionHint) || f.Has(ActionSelect) {
		t.Errorf("Has() mismatch: %v", f.Actions)
	}
	if !f.Any() {
		t.Error("Any() = false after Set")
	}

	f.Clear()
	if f.Has(ActionHint) {
		t.Error("Clear() kept an action")
	}

	var zero InputFrame
	if zero.Has(ActionQuit) {
		t.Error("zero frame reported an action")
	}
	zero.Set(ActionQuit)
	if !zero.Has(ActionQuit) {
		t.Error("Set() on a zero frame was lost")
	}
}

func TestActionString(t *testing.T) {
	if ActionSwapBack.String() != "SwapBack" {
		t.Errorf("String() = %q, expected SwapBack", ActionSwapBack.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("String() = %q, expected Unknown", Action(99).String())
	}
}
