package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimulateIsDefaultCommand(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		rounds *int
	}{
		{"no arguments", nil, nil},
		{"flags without command", []string{"--rounds", "10"}, intPtr(10)},
		{"explicit command", []string{"simulate", "--rounds", "10"}, intPtr(10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli)
			require.NoError(t, err)

			ctx, err := parser.Parse(tt.args)
			require.NoError(t, err)
			assert.Equal(t, "simulate", ctx.Command())
			assert.Equal(t, tt.rounds, cli.Simulate.Rounds)
			assert.Equal(t, 1, cli.Simulate.Parallel)
		})
	}
}

func TestParseSimulateFlags(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--seed", "5", "--trace-every", "0", "--strategy", "honest", "--skip-learner-on-resign", "--stats"})
	require.NoError(t, err)

	require.NotNil(t, cli.Simulate.Seed)
	assert.Equal(t, int64(5), *cli.Simulate.Seed)
	require.NotNil(t, cli.Simulate.TraceEvery)
	assert.Equal(t, 0, *cli.Simulate.TraceEvery)
	assert.Equal(t, "honest", cli.Simulate.Strategy)
	assert.True(t, cli.Simulate.SkipLearnerOnResign)
	assert.True(t, cli.Simulate.Stats)
	assert.Nil(t, cli.Simulate.Rounds)
}

func TestParseConfigCommand(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"config"})
	require.NoError(t, err)
	assert.Equal(t, "config", ctx.Command())
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--bogus"})
	require.Error(t, err)
}
