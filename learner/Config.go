package learner

import "fmt"

// Config represents a configuration for the online learner.
//
// ExplorationRate is the only field mutated at runtime: every
// completed update cycle decays it by ExplorationDecay, floored at
// MinExploration, so it is non-increasing during normal operation.
type Config struct {
	LearningRate     float64
	DiscountFactor   float64
	ExplorationRate  float64
	MinExploration   float64
	ExplorationDecay float64
	BatchSize        int
	BufferSize       int
	UpdateFrequency  int
}

// DefaultConfig returns the configuration the engine runs with unless
// the host overrides it.
func DefaultConfig() Config {
	return Config{
		LearningRate:     0.001,
		DiscountFactor:   0.99,
		ExplorationRate:  0.1,
		MinExploration:   0.01,
		ExplorationDecay: 0.995,
		BatchSize:        32,
		BufferSize:       10000,
		UpdateFrequency:  10,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be > 0")
	}
	if c.DiscountFactor < 0 || c.DiscountFactor > 1 {
		return fmt.Errorf("discount factor must be in [0, 1]")
	}
	if c.ExplorationRate < 0 || c.ExplorationRate > 1 {
		return fmt.Errorf("exploration rate must be in [0, 1]")
	}
	if c.MinExploration < 0 || c.MinExploration > c.ExplorationRate {
		return fmt.Errorf("minimum exploration must be in [0, "+
			"exploration rate (%v)]", c.ExplorationRate)
	}
	if c.ExplorationDecay <= 0 || c.ExplorationDecay > 1 {
		return fmt.Errorf("exploration decay must be in (0, 1]")
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch size must be >= 1")
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("buffer size must be >= 1")
	}
	if c.UpdateFrequency < 1 {
		return fmt.Errorf("update frequency must be >= 1")
	}
	return nil
}
