package util

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		expected  int
	}{
		{"below range", -3, 0, 10, 0},
		{"above range", 15, 0, 10, 10},
		{"inside range", 5, 0, 10, 5},
		{"at lower bound", 0, 0, 10, 0},
		{"at upper bound", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestAbs(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-5, 5},
		{5, 5},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Abs(tt.input); got != tt.expected {
			t.Errorf("Abs(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}

func TestSign(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-7, -1},
		{7, 1},
		{0, 0},
	}

	for _, tt := range tests {
		if got := Sign(tt.input); got != tt.expected {
			t.Errorf("Sign(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}
