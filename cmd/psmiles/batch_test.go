package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCheckInputs(t *testing.T) {
	cfg := &Config{
		Workers:       3,
		NeighborDepth: 2,
		AllowDoublets: true,
	}
	inputs := []string{"A-B", "A--B", "1A-1B", "<A-B><C>", "A-C"}

	rep, err := CheckInputs(context.Background(), inputs, cfg)
	require.NoError(t, err)
	assert.Equal(t, 5, rep.Total)
	assert.Equal(t, 4, rep.Valid)
	assert.Equal(t, 3, rep.Unique)
	assert.Equal(t, 7, rep.Nmers) // A B C A-B B-A A-C C-A
	require.Len(t, rep.Entries, 5)

	bad := rep.Entries[1]
	assert.Equal(t, 2, bad.Line)
	assert.False(t, bad.Valid)
	assert.Equal(t, "MissingParticleBetweenTwoConnections", bad.Error)
	require.NotNil(t, bad.Offset)
	assert.Equal(t, 1, *bad.Offset)

	assert.True(t, rep.Entries[2].Duplicate)
	assert.Equal(t, 2, rep.Entries[3].Parts)
	assert.Equal(t, 3, rep.Entries[3].Particles)

	cfg.DropDupes = true
	rep, err = CheckInputs(context.Background(), inputs, cfg)
	require.NoError(t, err)
	assert.Len(t, rep.Entries, 4)
}

func TestRunCheck(t *testing.T) {
	cfg := &Config{
		Workers:    2,
		StartIndex: 1,
		Anchors:    "(0,0,0)->(2,0,0)",
	}
	in := strings.NewReader("// two particles\nA-B\n\nA-\n")
	var out strings.Builder

	_, err := runCheck(context.Background(), in, &out, cfg)
	require.NoError(t, err)

	var rep Report
	require.NoError(t, yaml.Unmarshal([]byte(out.String()), &rep))
	assert.Equal(t, 2, rep.Total)
	assert.Equal(t, 1, rep.Valid)
	require.Len(t, rep.Entries, 2)
	assert.Equal(t, [][]string{
		{"1", "A", "0", "0.0", "0.0", "0.0", "1"},
		{"2", "B", "0", "1.0", "0.0", "0.0", "-1"},
	}, rep.Entries[0].Table)
	assert.Equal(t, "A-", rep.Entries[1].Input)
	assert.False(t, rep.Entries[1].Valid)

	cfg.Anchors = "(0,0)->(1,1,1)"
	_, err = CheckInputs(context.Background(), []string{"A"}, cfg)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "psmiles.yaml")
	require.NoError(t, os.WriteFile(pathname, []byte(`
particles: [A, B, C]
require_monomer: true
neighbor_depth: 3
workers: 0
anchors: "(0,0,0)->(1,1,1)"
`), 0600))

	cfg, err := LoadConfig(pathname)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Particles)
	assert.True(t, cfg.RequireMonomer)
	assert.Equal(t, 3, cfg.NeighborDepth)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 1, cfg.StartIndex)
	assert.Equal(t, 1.0, cfg.BondLength)
	assert.True(t, cfg.AllowDoublets)

	opts, err := cfg.ParseOpts()
	require.NoError(t, err)
	require.NotNil(t, opts.Coords)
	assert.Len(t, opts.Coords.Anchors, 1)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
