package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentic-research/regroup/internal/config"
	"github.com/agentic-research/regroup/internal/lattice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSpec = `
types:
  person:
    properties:
      id: "ID #"
      first: First Name
  car:
    properties:
      id: "Car ID #"
      make: Car Make
groups:
  people:
    by: "ID #"
    type: person
    groups:
      cars:
        by: "Car ID #"
        type: car
  all_cars:
    by: "Car ID #"
    type: car
`

const testCSV = `ID #,First Name,Car ID #,Car Make
1,Matt,3,Ford
1,Matt,4,Tesla
2,Nick,,
`

func fixture(t *testing.T) source {
	t.Helper()
	dir := t.TempDir()
	spec := filepath.Join(dir, "spec.yaml")
	rows := filepath.Join(dir, "rows.csv")
	require.NoError(t, os.WriteFile(spec, []byte(testSpec), 0o644))
	require.NoError(t, os.WriteFile(rows, []byte(testCSV), 0o644))
	return source{ConfigPath: spec, Inputs: []string{rows}}
}

func TestRunShape(t *testing.T) {
	src := fixture(t)

	t.Run("all groups", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runShape(&buf, src, nil, FormatJSON))
		assert.JSONEq(t, `{
			"people": [
				{"id": "1", "first": "Matt", "cars": [{"id": "3", "make": "Ford"}, {"id": "4", "make": "Tesla"}]},
				{"id": "2", "first": "Nick", "cars": []}
			],
			"all_cars": [{"id": "3", "make": "Ford"}, {"id": "4", "make": "Tesla"}]
		}`, buf.String())

		people := bytes.Index(buf.Bytes(), []byte(`"people"`))
		allCars := bytes.Index(buf.Bytes(), []byte(`"all_cars"`))
		assert.Less(t, people, allCars)
	})

	t.Run("selected group as yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runShape(&buf, src, []string{"all_cars"}, FormatYAML))
		assert.Equal(t, "all_cars:\n  - id: \"3\"\n    make: Ford\n  - id: \"4\"\n    make: Tesla\n", buf.String())
	})

	t.Run("dump", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runShape(&buf, src, []string{"all_cars"}, FormatDump))
		assert.Contains(t, buf.String(), "Tesla")
	})

	t.Run("unknown group", func(t *testing.T) {
		err := runShape(&bytes.Buffer{}, src, []string{"nope"}, FormatJSON)
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := runShape(&bytes.Buffer{}, src, nil, "xml")
		require.Error(t, err)
	})

	t.Run("missing config", func(t *testing.T) {
		err := runShape(&bytes.Buffer{}, source{Inputs: src.Inputs}, nil, FormatJSON)
		require.Error(t, err)
	})
}

func TestRunRows(t *testing.T) {
	src := fixture(t)
	src.ConfigPath = ""

	var buf bytes.Buffer
	require.NoError(t, runRows(&buf, src, FormatJSON))
	assert.JSONEq(t, `[
		{"ID #": "1", "First Name": "Matt", "Car ID #": "3", "Car Make": "Ford"},
		{"ID #": "1", "First Name": "Matt", "Car ID #": "4", "Car Make": "Tesla"},
		{"ID #": "2", "First Name": "Nick", "Car ID #": "", "Car Make": ""}
	]`, buf.String())
}

func TestRunGroups(t *testing.T) {
	src := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, runGroups(&buf, src))
	assert.Equal(t, `people by=["ID #"] parent=[] type=person
  cars by=["Car ID #"] parent=["ID #"] type=car
all_cars by=["Car ID #"] parent=[] type=car
`, buf.String())
}

func TestRootCommand(t *testing.T) {
	src := fixture(t)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"groups", "-c", src.ConfigPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "people by=")
}

func TestRunInfer(t *testing.T) {
	src := fixture(t)
	src.ConfigPath = ""

	var buf bytes.Buffer
	inf := &lattice.Inferrer{Config: lattice.DefaultInferConfig()}
	require.NoError(t, runInfer(&buf, src, inf))

	cfg, err := config.ParseYAML(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, cfg.Groups, 1)
	assert.Equal(t, "records", cfg.Groups[0].Name)
	assert.Equal(t, []string{"ID #"}, cfg.Groups[0].By)
	require.Len(t, cfg.Groups[0].Groups, 1)
	assert.Equal(t, []string{"Car ID #"}, cfg.Groups[0].Groups[0].By)
}
