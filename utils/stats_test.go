package utils

import (
	"math"
	"testing"
	"time"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 100*time.Millisecond)
	if math.Abs(s.GenerationsPerSecond-10) > 1e-9 {
		t.Errorf("GenerationsPerSecond = %v, want 10", s.GenerationsPerSecond)
	}
	if s.AveragePopulation != 100 {
		t.Errorf("AveragePopulation = %v, want 100", s.AveragePopulation)
	}
	s.Update(2, 200, 0)
	if math.Abs(s.AveragePopulation-110) > 1e-9 {
		t.Errorf("AveragePopulation = %v, want 110", s.AveragePopulation)
	}
	if s.TotalGenerations != 2 || s.Population != 200 {
		t.Errorf("got generation %d population %d", s.TotalGenerations, s.Population)
	}
}

func TestStatsStatus(t *testing.T) {
	s := NewStats()
	s.Observe(1, 3, "a", time.Millisecond)
	if got := s.Status(); got != "Active" {
		t.Fatalf("Status = %q, want Active", got)
	}
	s.Observe(2, 3, "b", time.Millisecond)
	s.Observe(3, 3, "a", time.Millisecond)
	if got := s.Status(); got != "Stagnant" {
		t.Fatalf("period-2 oscillation Status = %q, want Stagnant", got)
	}
	s.Observe(4, 0, "z", time.Millisecond)
	if got := s.Status(); got != "Extinct" {
		t.Fatalf("Status = %q, want Extinct", got)
	}
}

func TestStatsHistoryIsBounded(t *testing.T) {
	s := NewStats()
	for i, h := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		s.Observe(i+1, 1, h, time.Millisecond)
	}
	if len(s.history) != historySize {
		t.Fatalf("history length = %d, want %d", len(s.history), historySize)
	}
	// "c" is more than three generations back
	if s.IsStagnant("c") {
		t.Fatal("old hash reported as stagnant")
	}
}

func TestStatsResetAndClone(t *testing.T) {
	s := NewStats()
	s.Observe(5, 9, "a", time.Millisecond)
	c := s.Clone()
	s.Reset(4)
	if s.TotalGenerations != 0 || s.Population != 4 || len(s.history) != 0 {
		t.Fatalf("Reset left %+v", s)
	}
	if c.TotalGenerations != 5 || len(c.history) != 1 {
		t.Fatalf("clone changed by Reset: %+v", c)
	}
}
