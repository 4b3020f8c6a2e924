// Package report formats simulation results for the terminal and for JSON
// report files.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/minipoker/internal/fileutil"
	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/simulator"
	"github.com/lox/minipoker/internal/statistics"
)

// Verdict lines printed after each run.
const (
	WonMessage  = "Congrats, you won."
	LostMessage = "You lost."
)

// Message returns the verdict for a run.
func Message(won bool) string {
	if won {
		return WonMessage
	}
	return LostMessage
}

// FormatMean renders a mean reward with the shortest exact representation.
func FormatMean(mean float64) string {
	return strconv.FormatFloat(mean, 'f', -1, 64)
}

// Write prints the label, verdict and average reward of every run.
func Write(w io.Writer, results []*simulator.Result) error {
	for _, res := range results {
		if _, err := fmt.Fprintf(w, "%s:\n%s\nAverage reward at the end of %d games: %s\n",
			res.Name, Message(res.Won()), res.Rounds, FormatMean(res.Mean())); err != nil {
			return err
		}
	}
	return nil
}

// Summary prints a styled statistics block for one run. Styling is dropped
// automatically when w is not a terminal, and always when noColor is set.
func Summary(w io.Writer, res *simulator.Result, noColor bool) error {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	header := r.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	key := r.NewStyle().Foreground(lipgloss.Color("12")).Width(22)
	value := r.NewStyle().Foreground(lipgloss.Color("14"))

	s := res.Stats
	low, high := s.ConfidenceInterval95()
	rows := [][2]string{
		{"Rounds", strconv.Itoa(s.Rounds)},
		{"Mean", fmt.Sprintf("%.4f", s.Mean())},
		{"Std dev", fmt.Sprintf("%.4f", s.StdDev())},
		{"95% CI", fmt.Sprintf("[%.4f, %.4f]", low, high)},
	}
	for _, k := range statistics.OutcomeKinds {
		rows = append(rows, [2]string{k.String(), fmt.Sprintf("%d (%.1f%%)", s.Outcomes[k], s.OutcomeShare(k)*100)})
	}
	rows = append(rows,
		[2]string{"B resign / see", fmt.Sprintf("%d / %d", s.LearnerActions[game.Resign], s.LearnerActions[game.See])},
		[2]string{"B skipped", strconv.Itoa(s.Skipped)},
		[2]string{"Q resign / see", fmt.Sprintf("%.4f / %.4f", res.Learner.Values[game.Resign], res.Learner.Values[game.See])},
		[2]string{"Final alpha", fmt.Sprintf("%.6g", res.Learner.Alpha)},
		[2]string{"Final epsilon", fmt.Sprintf("%.6g", res.Learner.Epsilon)},
		[2]string{"Explorations", strconv.Itoa(res.Learner.Explorations)},
	)
	if rps := res.RoundsPerSecond(); rps > 0 {
		rows = append(rows, [2]string{"Rounds/sec", fmt.Sprintf("%.0f", rps)})
	}

	if _, err := fmt.Fprintln(w, header.Render(fmt.Sprintf("=== %s (seed %d) ===", res.Name, res.Seed))); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, key.Render(row[0])+value.Render(row[1])); err != nil {
			return err
		}
	}
	return nil
}

// Document is the JSON report layout.
type Document struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Runs        []RunReport `json:"runs"`
}

// RunReport is one run in a Document.
type RunReport struct {
	*simulator.Result
	Won       bool           `json:"won"`
	Message   string         `json:"message"`
	Mean      float64        `json:"mean"`
	StdDev    float64        `json:"std_dev"`
	CI95      [2]float64     `json:"ci95"`
	Outcomes  map[string]int `json:"outcomes"`
	Decisions map[string]int `json:"learner_decisions"`
	Skipped   int            `json:"learner_skipped"`
}

// Build assembles a Document from results.
func Build(results []*simulator.Result, now time.Time) Document {
	doc := Document{GeneratedAt: now.UTC(), Runs: make([]RunReport, 0, len(results))}
	for _, res := range results {
		s := res.Stats
		low, high := s.ConfidenceInterval95()
		outcomes := make(map[string]int, len(statistics.OutcomeKinds))
		for _, k := range statistics.OutcomeKinds {
			outcomes[k.String()] = s.Outcomes[k]
		}
		doc.Runs = append(doc.Runs, RunReport{
			Result:   res,
			Won:      res.Won(),
			Message:  Message(res.Won()),
			Mean:     s.Mean(),
			StdDev:   s.StdDev(),
			CI95:     [2]float64{low, high},
			Outcomes: outcomes,
			Decisions: map[string]int{
				"resign": s.LearnerActions[game.Resign],
				"see":    s.LearnerActions[game.See],
			},
			Skipped: s.Skipped,
		})
	}
	return doc
}

// WriteJSON writes the report for results to filename atomically.
func WriteJSON(filename string, results []*simulator.Result, now time.Time) error {
	return fileutil.WriteJSONAtomic(filename, Build(results, now), os.FileMode(0o644))
}
