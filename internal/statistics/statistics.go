package statistics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lox/minipoker/internal/game"
)

// OutcomeKind classifies a round by which payoff it produced
type OutcomeKind int

const (
	AResigns OutcomeKind = iota
	BResigns
	BSeesRed
	BSeesBlack
	numOutcomeKinds
)

func (k OutcomeKind) String() string {
	switch k {
	case AResigns:
		return "A resigns"
	case BResigns:
		return "B resigns"
	case BSeesRed:
		return "B sees red"
	case BSeesBlack:
		return "B sees black"
	default:
		return "unknown"
	}
}

// OutcomeKinds lists every kind in table order
var OutcomeKinds = [...]OutcomeKind{AResigns, BResigns, BSeesRed, BSeesBlack}

// Classify maps a resolved round to its payoff row
func Classify(o game.Outcome) OutcomeKind {
	switch {
	case o.ActionA == game.Resign:
		return AResigns
	case o.ActionB == game.Resign:
		return BResigns
	case o.Card == game.Red:
		return BSeesRed
	default:
		return BSeesBlack
	}
}

// Statistics tracks rewards for player A across a simulation run
type Statistics struct {
	Rounds int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // All rewards, for median/percentile calculation

	Wins   int // Rounds with a positive reward for A
	Losses int // Rounds with a negative reward for A

	// Outcome breakdown, indexed by OutcomeKind
	Outcomes [numOutcomeKinds]int

	// Player B's decisions, indexed by game.Action. Rounds where B was
	// skipped are counted in Skipped instead.
	LearnerActions [game.NumActions]int
	Skipped        int
}

// Mean returns the mean reward per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.Sum / float64(s.Rounds)
}

// Variance returns the sample variance of the rewards
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a resolved round
func (s *Statistics) Add(o game.Outcome) {
	r := float64(o.RewardA)
	s.Rounds++
	s.Sum += r
	s.SumSq += r * r
	s.Values = append(s.Values, r)

	switch {
	case r > 0:
		s.Wins++
	case r < 0:
		s.Losses++
	}

	s.Outcomes[Classify(o)]++

	if o.LearnerActed {
		s.LearnerActions[o.ActionB]++
	} else {
		s.Skipped++
	}
}

// OutcomeShare returns the fraction of rounds that ended with kind k
func (s *Statistics) OutcomeShare(k OutcomeKind) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Outcomes[k]) / float64(s.Rounds)
}

// Median returns the median reward
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that every counter agrees with the number of rounds
func (s *Statistics) Validate() error {
	if s.Rounds < 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}
	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}

	outcomes := 0
	for _, n := range s.Outcomes {
		outcomes += n
	}
	if outcomes != s.Rounds {
		return fmt.Errorf("outcome total (%d) does not match rounds (%d)", outcomes, s.Rounds)
	}

	actions := s.Skipped
	for _, n := range s.LearnerActions {
		actions += n
	}
	if actions != s.Rounds {
		return fmt.Errorf("learner action total (%d) does not match rounds (%d)", actions, s.Rounds)
	}

	if s.Wins+s.Losses > s.Rounds {
		return fmt.Errorf("wins (%d) plus losses (%d) exceed rounds (%d)", s.Wins, s.Losses, s.Rounds)
	}

	// Recompute the sum from the per-outcome counts and the payoff table.
	want := float64(s.Outcomes[AResigns])*float64(game.RewardAResigns) +
		float64(s.Outcomes[BResigns])*float64(game.RewardBResigns) +
		float64(s.Outcomes[BSeesRed])*float64(game.RewardBSeesRed) +
		float64(s.Outcomes[BSeesBlack])*float64(game.RewardBSeesBlack)
	if math.Abs(want-s.Sum) > 1e-6 {
		return fmt.Errorf("ledger mismatch: sum=%.6f, outcomes imply %.6f", s.Sum, want)
	}
	return nil
}

// ChiSquareUniform tests observed category counts against a uniform
// distribution. It returns the chi-square statistic and its p-value; a small
// p-value rejects uniformity.
func ChiSquareUniform(counts []int) (chi2, pValue float64) {
	if len(counts) < 2 {
		return 0, 1
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0, 1
	}

	obs := make([]float64, len(counts))
	exp := make([]float64, len(counts))
	for i, c := range counts {
		obs[i] = float64(c)
		exp[i] = float64(total) / float64(len(counts))
	}

	chi2 = stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(len(counts) - 1)}
	return chi2, dist.Survival(chi2)
}
