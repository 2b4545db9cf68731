package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler admits num events out of every den. Used to keep
// high-volume debug lines (update receipts) from flooding the sinks.
type ratioSampler struct {
	mu     sync.Mutex
	num    int
	den    int
	round  int
	passed int
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

// Set reconfigures the ratio. Non-positive values disable sampling,
// meaning every event passes.
func (s *ratioSampler) Set(num, den int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if num <= 0 || den <= 0 {
		s.num, s.den = 0, 0
	} else {
		if num > den {
			num = den
		}
		s.num, s.den = num, den
	}
	s.round, s.passed = 0, 0
}

// Allow reports whether the current event falls inside the admitted
// share of the active round.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.den <= 0 {
		return true
	}
	if s.round == s.den {
		s.round, s.passed = 0, 0
	}
	s.round++
	if s.passed < s.num {
		s.passed++
		return true
	}
	return false
}

// parseRatioSpec understands "N/M" and the shorthand "M" (one in M).
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 == nil && err2 == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
