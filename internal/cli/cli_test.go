package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

const catalogCSV = `title,genre,release_year,budget_cr,box_office_cr,imdb_rating
Inception,Sci-Fi,2010,160,836,8.8
Dangal,,2016,70,2000,8.4
Dangal,,2016,70,2000,8.4
Lagaan,Sports,2001,25,,8.1
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut string
	}{
		{"default version", "0.1.0", "datacleaner v0.1.0"},
		{"dev version", "dev", "datacleaner vdev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewVersionCommand(tt.version)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())
			assert.Contains(t, buf.String(), tt.wantOut)
		})
	}
}

func TestClean_WritesOutputAndReport(t *testing.T) {
	input := writeFile(t, "movies.csv", catalogCSV)
	output := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := execute(t, "clean", input, "-o", output)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Data Quality Report")
	assert.Contains(t, stdout, core.MetricMissing)
	assert.Contains(t, stdout, "profit_cr")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "title,genre,release_year,budget_cr,box_office_cr,imdb_rating,profit_cr", lines[0])
	assert.Equal(t, "Inception,Sci-Fi,2010,160.0,836.0,8.8,676.0", lines[1])
}

func TestClean_JSONSummary(t *testing.T) {
	input := writeFile(t, "movies.csv", catalogCSV)
	output := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := execute(t, "clean", input, "-o", output, "--format", "json")
	require.NoError(t, err)

	var s cleanSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, 3, s.Rows)

	missing, ok := s.Report.Get(core.MetricMissing)
	require.True(t, ok)
	assert.Equal(t, 3, missing.Before)
	assert.Equal(t, 0, missing.After)

	dups, ok := s.Report.Get(core.MetricDuplicates)
	require.True(t, ok)
	assert.Equal(t, 1, dups.Before)
	assert.Equal(t, 0, dups.After)
}

func TestClean_StdoutOutput(t *testing.T) {
	input := writeFile(t, "movies.csv", catalogCSV)

	stdout, stderr, err := execute(t, "clean", input, "-o", "-", "--fill", "genre=Drama", "--categorical", "none")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "title,genre,"), stdout)
	assert.Contains(t, stdout, "Dangal,Drama,2016")
	assert.Contains(t, stderr, "Data Quality Report", "report moves to stderr")
}

func TestClean_Errors(t *testing.T) {
	input := writeFile(t, "movies.csv", catalogCSV)
	output := filepath.Join(t.TempDir(), "out.csv")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing input", []string{"clean"}, "accepts 1 arg"},
		{"nonexistent file", []string{"clean", filepath.Join(t.TempDir(), "nope.csv")}, "open input"},
		{"unsupported format", []string{"clean", writeFile(t, "movies.json", "{}"), "-o", output}, "unsupported"},
		{"bad numeric strategy", []string{"clean", input, "-o", output, "--numeric", "mode"}, "invalid numeric strategy"},
		{"bad format", []string{"clean", input, "-o", output, "--format", "xml"}, "invalid format"},
		{"bad fill", []string{"clean", input, "-o", output, "--fill", "genre"}, "invalid fill"},
		{"missing profile", []string{"clean", input, "--profile", filepath.Join(t.TempDir(), "p.yaml")}, "error reading profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInspect(t *testing.T) {
	input := writeFile(t, "movies.csv", catalogCSV)

	stdout, _, err := execute(t, "inspect", input, "--format", "json")
	require.NoError(t, err)

	var s inspectSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Missing)
	assert.Equal(t, 1, s.Duplicates)
	require.Len(t, s.Columns, 6)
	assert.Equal(t, columnProfile{Column: "genre", Type: "text", Missing: 2}, s.Columns[1])

	stdout, _, err = execute(t, "inspect", input)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Duplicate rows: 1")
	assert.Contains(t, stdout, "box_office_cr")
}

func TestLoadProfile_Precedence(t *testing.T) {
	profile := writeFile(t, "catalog.yaml", `numeric: mean
categorical: none
fill:
  country: Unknown
  release_year: 2010
`)

	cmd := NewCleanCommand()
	require.NoError(t, cmd.Flags().Parse([]string{"--numeric", "none", "--fill", "country=India"}))

	p, err := LoadProfile(profile, cmd.Flags())
	require.NoError(t, err)

	assert.Equal(t, "none", p.Numeric, "flag overrides profile")
	assert.Equal(t, "none", p.Categorical, "profile overrides default")
	assert.Equal(t, FormatTable, p.Format, "default kept")
	assert.Equal(t, map[string]string{"country": "India", "release_year": "2010"}, p.Fill)

	cfg, err := p.CleaningConfig()
	require.NoError(t, err)
	assert.Equal(t, core.NumericNone, cfg.NumericStrategy)
	assert.Equal(t, core.CategoricalNone, cfg.CategoricalStrategy)
}

func TestLoadProfile_Defaults(t *testing.T) {
	p, err := LoadProfile("", nil)
	require.NoError(t, err)

	cfg, err := p.CleaningConfig()
	require.NoError(t, err)
	assert.Equal(t, core.DefaultConfig(), cfg)
}

func TestParseFills(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    map[string]string
		wantErr bool
	}{
		{"simple", []string{"genre=Drama"}, map[string]string{"genre": "Drama"}, false},
		{"value with equals", []string{"notes=a=b"}, map[string]string{"notes": "a=b"}, false},
		{"empty value", []string{"genre="}, map[string]string{"genre": ""}, false},
		{"last wins", []string{"genre=A", "genre=B"}, map[string]string{"genre": "B"}, false},
		{"no separator", []string{"genre"}, nil, true},
		{"empty column", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFills(tt.entries)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
