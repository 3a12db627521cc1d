package main

import "sync"

// sequenceSource replays fixed values, cycling when exhausted.
type sequenceSource struct {
	mu     sync.Mutex
	values []float64
	next   int
}

func newSequenceSource(values ...float64) *sequenceSource {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) NextFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// calls reports how many values have been drawn.
func (s *sequenceSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
