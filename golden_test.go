package rsmeta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// goldenCase is one testdata/rust/{level}/ directory: a source file under
// src/ and the heuristic tier's expected document in golden.json.
type goldenCase struct {
	name       string
	srcPath    string
	goldenPath string
}

func goldenCases(t *testing.T) []goldenCase {
	t.Helper()
	root := filepath.Join("testdata", "rust")
	levels, err := os.ReadDir(root)
	if err != nil {
		t.Skip("no testdata directory found")
	}

	var cases []goldenCase
	for _, level := range levels {
		if !level.IsDir() {
			continue
		}
		dir := filepath.Join(root, level.Name())
		c := goldenCase{
			name:       level.Name(),
			srcPath:    filepath.Join(dir, "src", "lib.rs"),
			goldenPath: filepath.Join(dir, "golden.json"),
		}
		if _, err := os.Stat(c.srcPath); err != nil {
			continue
		}
		cases = append(cases, c)
	}
	require.NotEmpty(t, cases)
	return cases
}

// TestGolden checks the heuristic tier against golden documents, in both
// scanning modes.
func TestGolden(t *testing.T) {
	for _, c := range goldenCases(t) {
		if _, err := os.Stat(c.goldenPath); err != nil {
			continue
		}
		for _, mode := range []HeuristicMode{ModePattern, ModeLines} {
			t.Run(c.name+"/"+string(mode), func(t *testing.T) {
				runGoldenTest(t, c, mode)
			})
		}
	}
}

func runGoldenTest(t *testing.T, c goldenCase, mode HeuristicMode) {
	t.Helper()

	want, err := os.ReadFile(c.goldenPath)
	require.NoError(t, err)

	e, err := New(WithTier(TierHeuristic), WithHeuristicMode(mode))
	require.NoError(t, err)

	s, err := e.ExtractFile(context.Background(), c.srcPath)
	require.NoError(t, err)

	got, err := Marshal(s, e.Parser())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))
}
