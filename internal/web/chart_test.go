package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

func chartTable() *core.Table {
	return core.NewTable(
		core.NewColumn("title", core.TypeText, []any{"A", "B", nil, "D"}),
		core.NewColumn("release_year", core.TypeInteger, []any{int64(2001), int64(1999), int64(2005), int64(2010)}),
		core.NewColumn("imdb_rating", core.TypeFloat, []any{7.5, nil, 6.0, 8.0}),
		core.NewColumn("order_date", core.TypeDate, []any{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), nil, nil, nil}),
	)
}

func TestParseChartKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ChartKind
		wantErr bool
	}{
		{"scatter", ChartScatter, false},
		{"Line", ChartLine, false},
		{" bar ", ChartBar, false},
		{"area", ChartArea, false},
		{"", ChartScatter, false},
		{"pie", "", true},
	}

	for _, tt := range tests {
		got, err := ParseChartKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestBuildChartSeries_SkipsAbsent(t *testing.T) {
	s, err := BuildChartSeries(chartTable(), ChartScatter, "title", "imdb_rating")
	require.NoError(t, err)

	assert.Equal(t, []ChartPoint{{X: "A", Y: 7.5}, {X: "D", Y: 8.0}}, s.Points)
}

func TestBuildChartSeries_DateAxis(t *testing.T) {
	s, err := BuildChartSeries(chartTable(), ChartLine, "order_date", "release_year")
	require.NoError(t, err)

	require.Len(t, s.Points, 1)
	assert.Equal(t, "2024-01-15", s.Points[0].X)
	assert.Equal(t, 2001.0, s.Points[0].Y)
}

func TestBuildChartSeries_Errors(t *testing.T) {
	_, err := BuildChartSeries(chartTable(), ChartBar, "missing", "imdb_rating")
	assert.Equal(t, "CHART001", core.MapError(err).Code)

	_, err = BuildChartSeries(chartTable(), ChartBar, "title", "title")
	assert.Equal(t, "CHART002", core.MapError(err).Code)
}

func TestNumericColumns(t *testing.T) {
	assert.Equal(t, []string{"release_year", "imdb_rating"}, NumericColumns(chartTable()))
}

func TestRenderChartSVG(t *testing.T) {
	s, err := BuildChartSeries(chartTable(), ChartScatter, "release_year", "imdb_rating")
	require.NoError(t, err)

	svg := RenderChartSVG(s)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Equal(t, 3, strings.Count(svg, "<circle"))

	s.Kind = ChartBar
	assert.Equal(t, 3, strings.Count(RenderChartSVG(s), "<rect"))

	s.Kind = ChartArea
	svg = RenderChartSVG(s)
	assert.Contains(t, svg, "<polygon")
	assert.Contains(t, svg, "<polyline")
}

func TestRenderChartSVG_EscapesLabels(t *testing.T) {
	svg := RenderChartSVG(ChartSeries{Kind: ChartLine, X: "<b>x</b>", Y: "y&z"})
	assert.NotContains(t, svg, "<b>")
	assert.Contains(t, svg, "y&amp;z")
}

func TestChartXPositions(t *testing.T) {
	numeric := chartXPositions([]ChartPoint{{X: int64(10)}, {X: int64(20)}, {X: int64(15)}})
	assert.Equal(t, []float64{0, 1, 0.5}, numeric)

	text := chartXPositions([]ChartPoint{{X: "a"}, {X: "b"}, {X: "c"}})
	assert.Equal(t, []float64{0, 0.5, 1}, text)

	single := chartXPositions([]ChartPoint{{X: "a"}})
	assert.Equal(t, []float64{0.5}, single)
}
