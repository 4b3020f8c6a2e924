package bandit

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every configuration error.
var ErrInvalidConfig = errors.New("invalid learner configuration")

// ConfigError reports a rate outside [0, 1].
type ConfigError struct {
	Field string
	Value float64
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s must be in [0, 1], got %v", ErrInvalidConfig, e.Field, e.Value)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Config holds the learner's hyperparameters.
type Config struct {
	// Alpha is the initial learning rate of the exponential moving average.
	Alpha float64
	// Epsilon is the initial exploration probability.
	Epsilon float64
	// AlphaDecay multiplies Alpha after every update.
	AlphaDecay float64
	// EpsilonDecay multiplies Epsilon after every decision.
	EpsilonDecay float64

	// InitialValues seeds the two value estimates. Zero by default.
	InitialValues [2]float64

	// TrackHistory records the value estimates after every update.
	TrackHistory bool
}

// Validate rejects rates outside [0, 1]. NaN is rejected as well.
func (c Config) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"alpha", c.Alpha},
		{"epsilon", c.Epsilon},
		{"alpha decay", c.AlphaDecay},
		{"epsilon decay", c.EpsilonDecay},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return &ConfigError{Field: f.name, Value: f.value}
		}
	}
	for i, v := range c.InitialValues {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: initial value %d must be finite, got %v", ErrInvalidConfig, i, v)
		}
	}
	return nil
}

// DefaultConfig returns the learner's stock hyperparameters.
func DefaultConfig() Config {
	return Config{
		Alpha:        0.02,
		Epsilon:      0.9,
		AlphaDecay:   0.99,
		EpsilonDecay: 0.9,
	}
}

// DecayingConfig is the reference configuration whose learning rate anneals.
func DecayingConfig() Config {
	return Config{
		Alpha:        0.1,
		Epsilon:      0.999,
		EpsilonDecay: 0.99,
		AlphaDecay:   0.99,
	}
}

// ConstantConfig is the reference configuration with a fixed learning rate
// and no exploration.
func ConstantConfig() Config {
	return Config{
		Alpha:        0.001,
		Epsilon:      0,
		EpsilonDecay: 0.9999,
		AlphaDecay:   1.0,
	}
}
