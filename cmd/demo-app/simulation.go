package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Profile describes how the root handler simulates a backend.
type Profile struct {
	ErrorRate  float64
	MinLatency time.Duration
	MaxLatency time.Duration
}

// profileFile is the on-disk shape of DEMO_PROFILE_FILE. Absent keys keep
// the value from the environment.
type profileFile struct {
	ErrorRate  *float64       `yaml:"error_rate"`
	MinLatency *time.Duration `yaml:"min_latency"`
	MaxLatency *time.Duration `yaml:"max_latency"`
}

// Validate checks the profile bounds.
func (p Profile) Validate() error {
	if p.ErrorRate < 0 || p.ErrorRate > 1 {
		return fmt.Errorf("error rate %v out of range [0,1]", p.ErrorRate)
	}
	if p.MinLatency < 0 {
		return fmt.Errorf("min latency %v must not be negative", p.MinLatency)
	}
	if p.MaxLatency < p.MinLatency {
		return fmt.Errorf("max latency %v is below min latency %v", p.MaxLatency, p.MinLatency)
	}
	return nil
}

// latency maps u in [0,1) onto [MinLatency, MaxLatency).
func (p Profile) latency(u float64) time.Duration {
	span := p.MaxLatency - p.MinLatency
	return p.MinLatency + time.Duration(u*float64(span))
}

// loadProfile starts from the environment settings and applies the YAML
// override file when one is configured.
func loadProfile(sc SimulationConfig) (Profile, error) {
	p := Profile{
		ErrorRate:  sc.ErrorRate,
		MinLatency: sc.MinLatency,
		MaxLatency: sc.MaxLatency,
	}

	if sc.ProfileFile != "" {
		data, err := os.ReadFile(sc.ProfileFile)
		if err != nil {
			return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
		}
		if err := applyProfileYAML(&p, data); err != nil {
			return Profile{}, fmt.Errorf("failed to parse profile file %s: %w", sc.ProfileFile, err)
		}
	}

	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("invalid simulation profile: %w", err)
	}
	return p, nil
}

func applyProfileYAML(p *Profile, data []byte) error {
	var pf profileFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if pf.ErrorRate != nil {
		p.ErrorRate = *pf.ErrorRate
	}
	if pf.MinLatency != nil {
		p.MinLatency = *pf.MinLatency
	}
	if pf.MaxLatency != nil {
		p.MaxLatency = *pf.MaxLatency
	}
	return nil
}

// Source yields uniform random values in [0,1).
type Source interface {
	NextFloat() float64
}

// lockedSource is a Source safe for concurrent handlers.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// newSource returns a deterministic source for a non-zero seed and a
// runtime-seeded one otherwise.
func newSource(seed uint64) *lockedSource {
	s1, s2 := seed, seed
	if seed == 0 {
		s1, s2 = rand.Uint64(), rand.Uint64()
	}
	return &lockedSource{rnd: rand.New(rand.NewPCG(s1, s2))}
}

func (s *lockedSource) NextFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// DelayFunc blocks for the simulated work duration.
type DelayFunc func(time.Duration)
