package learner

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	modified := func(mutate func(*Config)) Config {
		c := DefaultConfig()
		mutate(&c)
		return c
	}

	tests := []struct {
		name   string
		config Config
	}{
		{"zero learning rate", modified(func(c *Config) { c.LearningRate = 0 })},
		{"discount above one", modified(func(c *Config) { c.DiscountFactor = 1.5 })},
		{"negative exploration", modified(func(c *Config) { c.ExplorationRate = -0.1 })},
		{"floor above rate", modified(func(c *Config) { c.MinExploration = 0.5 })},
		{"zero decay", modified(func(c *Config) { c.ExplorationDecay = 0 })},
		{"zero batch", modified(func(c *Config) { c.BatchSize = 0 })},
		{"zero buffer", modified(func(c *Config) { c.BufferSize = 0 })},
		{"zero frequency", modified(func(c *Config) { c.UpdateFrequency = 0 })},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := test.config.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
