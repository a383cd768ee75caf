package utils

import "time"

const historySize = 5

// Stats tracks generation timing, population and recent grid states
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	Stagnant             bool
	StartTime            time.Time

	history []string // hashes of recent generations for cycle detection
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Reset forgets everything observed so far, keeping the population of the new grid
func (s *Stats) Reset(population int) {
	*s = Stats{StartTime: time.Now(), Population: population}
}

// IsStagnant reports whether hash matches one of the last three generations,
// which catches still lifes and period-2/3 oscillators
func (s *Stats) IsStagnant(hash string) bool {
	n := len(s.history)
	for i := n - 1; i >= 0 && i >= n-3; i-- {
		if s.history[i] == hash {
			return true
		}
	}
	return false
}

// UpdateHistory records hash and keeps only the most recent entries
func (s *Stats) UpdateHistory(hash string) {
	s.history = append(s.history, hash)
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// Observe records a freshly computed generation
func (s *Stats) Observe(generation, population int, hash string, duration time.Duration) {
	s.Update(generation, population, duration)
	s.Stagnant = s.IsStagnant(hash)
	s.UpdateHistory(hash)
}

// Status summarizes the latest observed generation
func (s *Stats) Status() string {
	switch {
	case s.Population == 0:
		return "Extinct"
	case s.Stagnant:
		return "Stagnant"
	default:
		return "Active"
	}
}

// Clone returns a copy safe to hand to other goroutines
func (s *Stats) Clone() Stats {
	c := *s
	c.history = append([]string(nil), s.history...)
	return c
}
