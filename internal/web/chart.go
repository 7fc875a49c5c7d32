package web

import (
	"fmt"
	"math"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// ChartKind is one of the supported chart types.
type ChartKind string

const (
	ChartScatter ChartKind = "scatter"
	ChartLine    ChartKind = "line"
	ChartBar     ChartKind = "bar"
	ChartArea    ChartKind = "area"
)

// ParseChartKind validates a chart type name.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ChartScatter, ChartLine, ChartBar, ChartArea:
		return k, nil
	case "":
		return ChartScatter, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q", s)
	}
}

// ChartPoint is one plotted row. X keeps the column's own type.
type ChartPoint struct {
	X any     `json:"x"`
	Y float64 `json:"y"`
}

// ChartSeries is the data behind one chart.
type ChartSeries struct {
	Kind   ChartKind    `json:"kind"`
	X      string       `json:"x"`
	Y      string       `json:"y"`
	Points []ChartPoint `json:"points"`
}

// BuildChartSeries pairs column x with numeric column y, in row order.
// Rows where either cell is absent are skipped.
func BuildChartSeries(t *core.Table, kind ChartKind, x, y string) (ChartSeries, error) {
	xc := t.Column(x)
	if xc == nil {
		return ChartSeries{}, fmt.Errorf("unknown column %q", x)
	}
	yc := t.Column(y)
	if yc == nil {
		return ChartSeries{}, fmt.Errorf("unknown column %q", y)
	}
	if !yc.Type.IsNumeric() {
		return ChartSeries{}, fmt.Errorf("column %q is not numeric", y)
	}

	series := ChartSeries{Kind: kind, X: x, Y: y, Points: make([]ChartPoint, 0, t.Len())}
	for i := 0; i < t.Len(); i++ {
		xv := xc.Values[i]
		yv, ok := numericCell(yc.Values[i])
		if xv == nil || !ok {
			continue
		}
		series.Points = append(series.Points, ChartPoint{X: jsonCell(xv), Y: yv})
	}
	return series, nil
}

// NumericColumns returns the names of integer and float columns.
func NumericColumns(t *core.Table) []string {
	var names []string
	for _, c := range t.Columns {
		if c.Type.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

func numericCell(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

const (
	svgWidth  = 720.0
	svgHeight = 320.0
	svgPad    = 40.0
)

// RenderChartSVG draws the series as an inline SVG. Numeric X values are
// placed proportionally; any other X is placed by row position.
func RenderChartSVG(s ChartSeries) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f" role="img">`,
		svgWidth, svgHeight, svgWidth, svgHeight)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#656d76"/>`,
		svgPad, svgHeight-svgPad, svgWidth-svgPad, svgHeight-svgPad)
	fmt.Fprintf(&b, `<line x1="%.0f" y1="%.0f" x2="%.0f" y2="%.0f" stroke="#656d76"/>`,
		svgPad, svgPad, svgPad, svgHeight-svgPad)
	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" text-anchor="middle" font-size="12">%s</text>`,
		svgWidth/2, svgHeight-8, templ.EscapeString(s.X))
	fmt.Fprintf(&b, `<text x="12" y="%.0f" font-size="12" transform="rotate(-90 12 %.0f)" text-anchor="middle">%s</text>`,
		svgHeight/2, svgHeight/2, templ.EscapeString(s.Y))

	if len(s.Points) == 0 {
		b.WriteString(`</svg>`)
		return b.String()
	}

	xs := chartXPositions(s.Points)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range s.Points {
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	if s.Kind == ChartBar || s.Kind == ChartArea {
		yMin = math.Min(yMin, 0)
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	plotW := svgWidth - 2*svgPad
	plotH := svgHeight - 2*svgPad
	px := func(i int) float64 { return svgPad + xs[i]*plotW }
	py := func(v float64) float64 { return svgHeight - svgPad - (v-yMin)/(yMax-yMin)*plotH }

	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" font-size="10" text-anchor="end">%g</text>`, svgPad-4, py(yMax)+4, yMax)
	fmt.Fprintf(&b, `<text x="%.0f" y="%.0f" font-size="10" text-anchor="end">%g</text>`, svgPad-4, py(yMin)+4, yMin)

	switch s.Kind {
	case ChartBar:
		barW := math.Max(1, plotW/float64(len(s.Points))*0.8)
		for i, p := range s.Points {
			top, bottom := py(p.Y), py(math.Max(yMin, 0))
			if top > bottom {
				top, bottom = bottom, top
			}
			fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#0969da"/>`,
				px(i)-barW/2, top, barW, bottom-top)
		}
	case ChartLine, ChartArea:
		pts := make([]string, len(s.Points))
		for i, p := range s.Points {
			pts[i] = fmt.Sprintf("%.1f,%.1f", px(i), py(p.Y))
		}
		if s.Kind == ChartArea {
			base := py(math.Max(yMin, 0))
			fmt.Fprintf(&b, `<polygon points="%.1f,%.1f %s %.1f,%.1f" fill="#0969da" fill-opacity="0.3" stroke="none"/>`,
				px(0), base, strings.Join(pts, " "), px(len(pts)-1), base)
		}
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="#0969da" stroke-width="2"/>`, strings.Join(pts, " "))
	default:
		for i, p := range s.Points {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="3" fill="#0969da"/>`, px(i), py(p.Y))
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}

// chartXPositions maps each point to [0, 1] along the X axis.
func chartXPositions(points []ChartPoint) []float64 {
	pos := make([]float64, len(points))

	vals := make([]float64, len(points))
	numeric := true
	for i, p := range points {
		v, ok := numericCell(p.X)
		if !ok {
			numeric = false
			break
		}
		vals[i] = v
	}

	if numeric {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, v := range vals {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		if hi > lo {
			for i, v := range vals {
				pos[i] = (v - lo) / (hi - lo)
			}
			return pos
		}
	}

	if len(points) == 1 {
		pos[0] = 0.5
		return pos
	}
	for i := range points {
		pos[i] = float64(i) / float64(len(points)-1)
	}
	return pos
}
