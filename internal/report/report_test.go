package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/minipoker/internal/game"
	"github.com/lox/minipoker/internal/simulator"
	"github.com/lox/minipoker/internal/statistics"
)

func resultWithRewards(name string, outcomes ...game.Outcome) *simulator.Result {
	stats := &statistics.Statistics{}
	for _, o := range outcomes {
		stats.Add(o)
	}
	return &simulator.Result{Name: name, Rounds: stats.Rounds, Stats: stats}
}

func round(card game.Card, a, b game.Action) game.Outcome {
	return game.Outcome{Card: card, ActionA: a, ActionB: b, LearnerActed: true, RewardA: game.Resolve(card, a, b)}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Congrats, you won.", Message(true))
	assert.Equal(t, "You lost.", Message(false))
}

func TestFormatMean(t *testing.T) {
	assert.Equal(t, "-1.25", FormatMean(-1.25))
	assert.Equal(t, "0", FormatMean(0))
	assert.Equal(t, "2.11585", FormatMean(2.11585))
}

func TestWrite(t *testing.T) {
	won := resultWithRewards("Alpha decaying",
		round(game.Black, game.Hold, game.See),
		round(game.Red, game.Hold, game.Resign),
	)
	lost := resultWithRewards("Alpha not decaying",
		round(game.Red, game.Hold, game.See),
		round(game.Black, game.Hold, game.Resign),
	)
	even := resultWithRewards("Even",
		round(game.Red, game.Resign, game.See),
		round(game.Red, game.Hold, game.Resign),
		round(game.Black, game.Hold, game.Resign),
	)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*simulator.Result{won, lost, even}))

	want := strings.Join([]string{
		"Alpha decaying:",
		"Congrats, you won.",
		"Average reward at the end of 2 games: 20",
		"Alpha not decaying:",
		"You lost.",
		"Average reward at the end of 2 games: -15",
		"Even:",
		"Congrats, you won.",
		"Average reward at the end of 3 games: 0",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteZeroRoundsLoses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*simulator.Result{resultWithRewards("Empty")}))
	assert.Equal(t, "Empty:\nYou lost.\nAverage reward at the end of 0 games: 0\n", buf.String())
}

func TestSummary(t *testing.T) {
	res := resultWithRewards("Alpha decaying",
		round(game.Black, game.Hold, game.See),
		round(game.Red, game.Resign, game.Resign),
	)
	res.Seed = 9
	res.Learner.Values = [2]float64{-1.5, 2.25}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, res, true))
	out := buf.String()

	assert.NotContains(t, out, "\x1b[", "non-terminal output should be unstyled")
	assert.Contains(t, out, "=== Alpha decaying (seed 9) ===")
	assert.Contains(t, out, "Mean")
	assert.Contains(t, out, "5.0000")
	assert.Contains(t, out, "A resigns")
	assert.Contains(t, out, "1 (50.0%)")
	assert.Contains(t, out, "-1.5000 / 2.2500")
	assert.NotContains(t, out, "Rounds/sec")
}

func TestWriteJSON(t *testing.T) {
	cfg := simulator.DefaultConfig()
	cfg.Rounds = 500
	cfg.TraceEvery = 250
	sim, err := simulator.New(cfg)
	require.NoError(t, err)
	res, err := sim.Run(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	require.NoError(t, WriteJSON(path, []*simulator.Result{res}, now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		GeneratedAt time.Time `json:"generated_at"`
		Runs        []struct {
			ID        string         `json:"id"`
			Name      string         `json:"name"`
			Rounds    int            `json:"rounds"`
			Mean      float64        `json:"mean"`
			Message   string         `json:"message"`
			Outcomes  map[string]int `json:"outcomes"`
			Decisions map[string]int `json:"learner_decisions"`
			Trace     []struct {
				Round int `json:"round"`
			} `json:"trace"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.True(t, now.Equal(doc.GeneratedAt))
	require.Len(t, doc.Runs, 1)
	run := doc.Runs[0]
	assert.Equal(t, res.ID, run.ID)
	assert.Equal(t, "Alpha decaying", run.Name)
	assert.Equal(t, 500, run.Rounds)
	assert.InDelta(t, res.Mean(), run.Mean, 1e-9)
	assert.Equal(t, Message(res.Won()), run.Message)
	assert.Len(t, run.Trace, 2)

	total := 0
	for _, n := range run.Outcomes {
		total += n
	}
	assert.Equal(t, 500, total)
	assert.Equal(t, 500, run.Decisions["resign"]+run.Decisions["see"])
}
