package sim

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure,
// so callers can test with errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// Range is a half-open interval [Min, Max) in model time units.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ticks converts the range bounds to clock ticks.
func (r Range) ticks() (int64, int64) {
	return int64(r.Min * TicksPerTimeUnit), int64(r.Max * TicksPerTimeUnit)
}

// Config holds every knob of a simulation run. The engine reads it at
// construction only; the numeric constants themselves are owned by the
// caller (CLI flags or a YAML file).
type Config struct {
	Generators           int `yaml:"generators"`           // number of client generators
	RequestsPerGenerator int `yaml:"requestsPerGenerator"` // request quota per generator
	Stations             int `yaml:"stations"`             // number of service stations

	FIFOSwitches     int `yaml:"fifoSwitches"`     // switches using FIFO discipline
	PrioritySwitches int `yaml:"prioritySwitches"` // switches using Priority discipline
	SwitchCapacity   int `yaml:"switchCapacity"`   // slots per switch (>= 1)

	ThinkTime       Range   `yaml:"thinkTime"`       // uniform think-time range (time units)
	ServiceTime     Range   `yaml:"serviceTime"`     // uniform service-time range (time units)
	LossProbability float64 `yaml:"lossProbability"` // drop chance after a slot is granted

	Seed int64 `yaml:"seed"` // master RNG seed
}

// DefaultConfig returns the stock deployment: 30 generators issuing 50
// requests each against 8 FIFO + 8 Priority capacity-1 switches and 3
// stations, with a 10% loss chance.
func DefaultConfig() Config {
	return Config{
		Generators:           30,
		RequestsPerGenerator: 50,
		Stations:             3,
		FIFOSwitches:         8,
		PrioritySwitches:     8,
		SwitchCapacity:       1,
		ThinkTime:            Range{Min: 0.1, Max: 0.5},
		ServiceTime:          Range{Min: 0.5, Max: 1.5},
		LossProbability:      0.1,
		Seed:                 42,
	}
}

// Validate checks the configuration and reports the first problem found.
// All returned errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.Generators < 0:
		return fmt.Errorf("%w: generators must be >= 0, got %d", ErrInvalidConfig, c.Generators)
	case c.RequestsPerGenerator < 0:
		return fmt.Errorf("%w: requestsPerGenerator must be >= 0, got %d", ErrInvalidConfig, c.RequestsPerGenerator)
	case c.Stations < 1:
		return fmt.Errorf("%w: at least one station required, got %d", ErrInvalidConfig, c.Stations)
	case c.FIFOSwitches < 0 || c.PrioritySwitches < 0:
		return fmt.Errorf("%w: switch counts must be >= 0, got fifo=%d priority=%d",
			ErrInvalidConfig, c.FIFOSwitches, c.PrioritySwitches)
	case c.FIFOSwitches+c.PrioritySwitches < 1:
		return fmt.Errorf("%w: at least one switch required", ErrInvalidConfig)
	case c.SwitchCapacity < 1:
		return fmt.Errorf("%w: switch capacity must be >= 1, got %d", ErrInvalidConfig, c.SwitchCapacity)
	case c.LossProbability < 0 || c.LossProbability > 1:
		return fmt.Errorf("%w: loss probability must be in [0,1], got %g", ErrInvalidConfig, c.LossProbability)
	}
	if err := validateRange("thinkTime", c.ThinkTime); err != nil {
		return err
	}
	if err := validateRange("serviceTime", c.ServiceTime); err != nil {
		return err
	}
	return nil
}

func validateRange(name string, r Range) error {
	if r.Min < 0 {
		return fmt.Errorf("%w: %s.min must be >= 0, got %g", ErrInvalidConfig, name, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%w: %s.max must be >= %s.min, got [%g, %g)", ErrInvalidConfig, name, name, r.Min, r.Max)
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults, so partial files only
// override the keys they mention.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
