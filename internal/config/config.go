// Package config loads mini-poker experiments from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"

	"github.com/lox/minipoker/internal/bandit"
	"github.com/lox/minipoker/internal/bot"
	"github.com/lox/minipoker/internal/simulator"
)

// File is the raw HCL layout. Optional attributes are pointers so an explicit
// zero can be told apart from an omitted value.
type File struct {
	Rounds              *int           `hcl:"rounds,optional"`
	Seed                *int64         `hcl:"seed,optional"`
	LearnerActsOnResign *bool          `hcl:"learner_acts_on_resign,optional"`
	TraceEvery          *int           `hcl:"trace_every,optional"`
	Opponent            *OpponentBlock `hcl:"opponent,block"`
	Runs                []RunBlock     `hcl:"run,block"`
}

// OpponentBlock configures player A.
type OpponentBlock struct {
	Strategy        *string  `hcl:"strategy,optional"`
	HoldProbability *float64 `hcl:"hold_probability,optional"`
}

// RunBlock configures one learner run.
type RunBlock struct {
	Name         string         `hcl:"name,label"`
	Rounds       *int           `hcl:"rounds,optional"`
	Seed         *int64         `hcl:"seed,optional"`
	Alpha        *float64       `hcl:"alpha,optional"`
	Epsilon      *float64       `hcl:"epsilon,optional"`
	AlphaDecay   *float64       `hcl:"alpha_decay,optional"`
	EpsilonDecay *float64       `hcl:"epsilon_decay,optional"`
	Opponent     *OpponentBlock `hcl:"opponent,block"`
}

// Experiment is a fully resolved set of runs.
type Experiment struct {
	Rounds              int
	Seed                int64
	SkipLearnerOnResign bool
	TraceEvery          int
	Opponent            bot.Config
	Runs                []Run
}

// Run is one resolved learner run.
type Run struct {
	Name     string
	Rounds   int
	Seed     int64
	Learner  bandit.Config
	Opponent bot.Config
}

// DefaultSource is the HCL equivalent of Default.
const DefaultSource = `# Rounds per run and the base seed. Each run gets seed + its index unless
# it sets its own.
rounds = 200000
seed   = 1

# Ask B to decide and learn even on rounds where A resigned.
learner_acts_on_resign = true

opponent {
  strategy         = "baseline"
  hold_probability = 0.6
}

run "Alpha decaying" {
  alpha         = 0.1
  epsilon       = 0.999
  epsilon_decay = 0.99
  alpha_decay   = 0.99
}

run "Alpha not decaying" {
  alpha         = 0.001
  epsilon       = 0
  epsilon_decay = 0.9999
  alpha_decay   = 1.0
}
`

// Default returns the two reference runs: one with a decaying learning rate
// and one with a constant learning rate and no exploration.
func Default() *Experiment {
	opponent := bot.Config{Strategy: bot.StrategyBaseline, HoldProbability: bot.DefaultHoldProbability}
	return &Experiment{
		Rounds:   simulator.DefaultRounds,
		Seed:     1,
		Opponent: opponent,
		Runs: []Run{
			{Name: "Alpha decaying", Rounds: simulator.DefaultRounds, Seed: 1, Learner: bandit.DecayingConfig(), Opponent: opponent},
			{Name: "Alpha not decaying", Rounds: simulator.DefaultRounds, Seed: 2, Learner: bandit.ConstantConfig(), Opponent: opponent},
		},
	}
}

// Load reads an experiment from an HCL file. A missing file yields Default.
func Load(filename string) (*Experiment, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body, filename)
}

// Parse reads an experiment from HCL source. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Experiment, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*Experiment, error) {
	var raw File
	if diags := gohcl.DecodeBody(body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	exp := raw.resolve()
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return exp, nil
}

// resolve applies defaults for everything the file leaves out.
func (f File) resolve() *Experiment {
	defaults := Default()
	exp := &Experiment{
		Rounds:   defaults.Rounds,
		Seed:     defaults.Seed,
		Opponent: f.Opponent.apply(defaults.Opponent),
	}
	if f.Rounds != nil {
		exp.Rounds = *f.Rounds
	}
	if f.Seed != nil {
		exp.Seed = *f.Seed
	}
	if f.LearnerActsOnResign != nil {
		exp.SkipLearnerOnResign = !*f.LearnerActsOnResign
	}
	if f.TraceEvery != nil {
		exp.TraceEvery = *f.TraceEvery
	}

	// No run blocks means the reference runs against this file's opponent
	// and round count.
	if len(f.Runs) == 0 {
		for i, run := range defaults.Runs {
			run.Rounds = exp.Rounds
			run.Seed = exp.Seed + int64(i)
			run.Opponent = exp.Opponent
			exp.Runs = append(exp.Runs, run)
		}
		return exp
	}

	learnerDefaults := bandit.DefaultConfig()
	for i, rb := range f.Runs {
		run := Run{
			Name:     rb.Name,
			Rounds:   exp.Rounds,
			Seed:     exp.Seed + int64(i),
			Learner:  learnerDefaults,
			Opponent: rb.Opponent.apply(exp.Opponent),
		}
		if rb.Rounds != nil {
			run.Rounds = *rb.Rounds
		}
		if rb.Seed != nil {
			run.Seed = *rb.Seed
		}
		setFloat(&run.Learner.Alpha, rb.Alpha)
		setFloat(&run.Learner.Epsilon, rb.Epsilon)
		setFloat(&run.Learner.AlphaDecay, rb.AlphaDecay)
		setFloat(&run.Learner.EpsilonDecay, rb.EpsilonDecay)
		exp.Runs = append(exp.Runs, run)
	}
	return exp
}

func (o *OpponentBlock) apply(base bot.Config) bot.Config {
	if o == nil {
		return base
	}
	if o.Strategy != nil {
		base.Strategy = *o.Strategy
	}
	setFloat(&base.HoldProbability, o.HoldProbability)
	return base
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks every run. Errors name the offending run.
func (e *Experiment) Validate() error {
	if e.TraceEvery < 0 {
		return errors.New("trace_every cannot be negative")
	}
	if len(e.Runs) == 0 {
		return errors.New("at least one run must be configured")
	}

	names := make(map[string]bool, len(e.Runs))
	for _, run := range e.Runs {
		if names[run.Name] {
			return fmt.Errorf("duplicate run name %q", run.Name)
		}
		names[run.Name] = true

		if run.Rounds < 0 {
			return fmt.Errorf("run %q: rounds must be >= 0, got %d", run.Name, run.Rounds)
		}
		if err := run.Learner.Validate(); err != nil {
			return fmt.Errorf("run %q: %w", run.Name, err)
		}
		if err := run.Opponent.Validate(); err != nil {
			return fmt.Errorf("run %q: %w", run.Name, err)
		}
	}
	return nil
}

// SimulatorConfigs converts the experiment into one simulator.Config per run.
func (e *Experiment) SimulatorConfigs(logger *zerolog.Logger) []simulator.Config {
	configs := make([]simulator.Config, 0, len(e.Runs))
	for _, run := range e.Runs {
		configs = append(configs, simulator.Config{
			Name:                run.Name,
			Rounds:              run.Rounds,
			Seed:                run.Seed,
			Learner:             run.Learner,
			Opponent:            run.Opponent,
			SkipLearnerOnResign: e.SkipLearnerOnResign,
			TraceEvery:          e.TraceEvery,
			Logger:              logger,
		})
	}
	return configs
}
