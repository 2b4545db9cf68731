package logger

import "testing"

func TestRatioSamplerOneInFifty(t *testing.T) {
	s := newRatioSampler(1, 50)
	passed := 0
	for i := 0; i < 100; i++ {
		if s.Allow() {
			passed++
		}
	}
	if passed != 2 {
		t.Fatalf("passed = %d, want 2 of 100", passed)
	}
}

func TestRatioSamplerDisabledPassesAll(t *testing.T) {
	s := newRatioSampler(0, 0)
	for i := 0; i < 10; i++ {
		if !s.Allow() {
			t.Fatal("disabled sampler must pass every event")
		}
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		spec string
		num  int
		den  int
	}{
		{"1/50", 1, 50},
		{" 3 / 10 ", 3, 10},
		{"25", 1, 25},
		{"", 0, 0},
		{"0", 0, 0},
		{"a/b", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.spec)
		if num != tc.num || den != tc.den {
			t.Fatalf("parseRatioSpec(%q) = (%d, %d), want (%d, %d)", tc.spec, num, den, tc.num, tc.den)
		}
	}
}
