// Package templates renders the dashboard with templ components.
//
// Components are plain templ.ComponentFunc values so they compose with
// templ.Handler and Render like generated components do.
package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

// TableView is a rendered slice of a table.
type TableView struct {
	Columns []string
	Rows    [][]string
	Total   int
}

// NewTableView formats up to limit rows of t for display.
func NewTableView(t *core.Table, limit int) TableView {
	view := TableView{Columns: t.Names(), Total: t.Len()}
	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	view.Rows = make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = core.FormatCell(c.Values[i])
		}
		view.Rows[i] = row
	}
	return view
}

// UploadData is a previewed upload awaiting its cleaning settings.
type UploadData struct {
	ID         string
	FileName   string
	Raw        TableView
	Missing    []MissingColumn
	Duplicates int
}

// MissingColumn names a raw column with absent cells.
type MissingColumn struct {
	Name  string
	Count int
}

// NewUploadData describes raw for the preview section.
func NewUploadData(id, fileName string, raw *core.Table, limit int) UploadData {
	data := UploadData{
		ID:         id,
		FileName:   fileName,
		Raw:        NewTableView(raw, limit),
		Duplicates: core.CountDuplicates(raw),
	}
	for _, name := range core.ColumnsWithMissing(raw) {
		data.Missing = append(data.Missing, MissingColumn{Name: name, Count: raw.Column(name).Missing()})
	}
	return data
}

// DashboardData is everything the dashboard page shows.
type DashboardData struct {
	Upload   *UploadData
	FileName string
	RunID    string
	Cleaned  *TableView
	Report   core.QualityReport
	Dtypes   []core.DtypeEntry
	Chart    *ChartData
	Message  string
}

// ChartData is a chart already resolved against the session table.
type ChartData struct {
	Kind    string
	X, Y    string
	Columns []string
	Numeric []string
	SVG     string
}

// printer writes formatted output and remembers the first error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) print(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

// Layout wraps a body component in the page shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.print(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.print(`<title>%s</title><style>%s</style></head><body><main>`, esc(title), pageCSS)
		if p.err != nil {
			return p.err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		p.print(`</main></body></html>`)
		return p.err
	})
}

// Dashboard renders the upload form and, after a run, its results.
func Dashboard(data DashboardData) templ.Component {
	return Layout("Data Cleaner", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<h1>Movies &amp; Shows Data Cleaner</h1>`)
		if data.Message != "" {
			p.print(`<p class="notice">%s</p>`, esc(data.Message))
		}
		if p.err != nil {
			return p.err
		}
		if err := UploadForm().Render(ctx, w); err != nil {
			return err
		}
		if data.Upload != nil {
			for _, c := range []templ.Component{RawPreview(*data.Upload), CleanForm(*data.Upload)} {
				if err := c.Render(ctx, w); err != nil {
					return err
				}
			}
		}
		if data.Cleaned == nil {
			if data.Upload == nil {
				p.print(`<p class="muted">Upload a CSV or Excel file to begin.</p>`)
			}
			return p.err
		}

		p.print(`<section><h2>Cleaned Data</h2><p class="muted">%s`, esc(data.FileName))
		if data.RunID != "" {
			p.print(` &middot; run %s`, esc(data.RunID))
		}
		p.print(` &middot; <a href="/api/export">Download cleaned CSV</a></p>`)
		if p.err != nil {
			return p.err
		}
		for _, c := range []templ.Component{
			DataTable(*data.Cleaned),
			ReportTable(data.Report),
			DtypeTable(data.Dtypes),
		} {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		p.print(`</section>`)
		if data.Chart != nil {
			if p.err != nil {
				return p.err
			}
			return Chart(*data.Chart).Render(ctx, w)
		}
		return p.err
	}))
}

// UploadForm is the file picker. Submitting it shows the raw preview.
func UploadForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<form method="post" action="/preview" enctype="multipart/form-data" class="card">`)
		p.print(`<label>File <input type="file" name="file" accept=".csv,.xlsx" required></label>`)
		p.print(`<button type="submit">Preview</button></form>`)
		return p.err
	})
}

// RawPreview renders the first rows of an upload and its gaps.
func RawPreview(data UploadData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<section><h2>Raw Data Preview</h2><p class="muted">%s &middot; %d duplicate rows</p>`,
			esc(data.FileName), data.Duplicates)
		if p.err != nil {
			return p.err
		}
		if err := DataTable(data.Raw).Render(ctx, w); err != nil {
			return err
		}
		p.print(`</section>`)
		return p.err
	})
}

// CleanForm collects manual fills and strategies for a pending upload.
func CleanForm(data UploadData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<form method="post" action="/clean" enctype="multipart/form-data" class="card">`)
		p.print(`<input type="hidden" name="upload_id" value="%s">`, esc(data.ID))
		if len(data.Missing) > 0 {
			p.print(`<fieldset class="fills"><legend>Manual fill</legend>`)
			for _, m := range data.Missing {
				p.print(`<label>Fill missing in '%s' (%d) <input type="text" name="fill[%s]"></label>`,
					esc(m.Name), m.Count, esc(m.Name))
			}
			p.print(`</fieldset>`)
		}
		p.print(`<fieldset><legend>Numeric columns</legend>`)
		p.print(`<label><input type="radio" name="numeric_strategy" value="median" checked> Median</label>`)
		p.print(`<label><input type="radio" name="numeric_strategy" value="mean"> Mean</label>`)
		p.print(`<label><input type="radio" name="numeric_strategy" value="none"> Do Not Fill</label></fieldset>`)
		p.print(`<fieldset><legend>Categorical columns</legend>`)
		p.print(`<label><input type="radio" name="categorical_strategy" value="mode" checked> Mode</label>`)
		p.print(`<label><input type="radio" name="categorical_strategy" value="none"> Do Not Fill</label></fieldset>`)
		p.print(`<button type="submit">Run Cleaning Pipeline</button></form>`)
		return p.err
	})
}

// DataTable renders a table view.
func DataTable(view TableView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<div class="scroll"><table><thead><tr>`)
		for _, c := range view.Columns {
			p.print(`<th>%s</th>`, esc(c))
		}
		p.print(`</tr></thead><tbody>`)
		for _, row := range view.Rows {
			p.print(`<tr>`)
			for _, cell := range row {
				if cell == "" {
					p.print(`<td class="absent"></td>`)
					continue
				}
				p.print(`<td>%s</td>`, esc(cell))
			}
			p.print(`</tr>`)
		}
		p.print(`</tbody></table></div>`)
		if len(view.Rows) < view.Total {
			p.print(`<p class="muted">Showing %d of %d rows.</p>`, len(view.Rows), view.Total)
		}
		return p.err
	})
}

// ReportTable renders the before/after quality report.
func ReportTable(report core.QualityReport) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<h3>Data Quality Report</h3><table><thead><tr><th>Metric</th><th>Before</th><th>After</th></tr></thead><tbody>`)
		for _, row := range report.Rows {
			p.print(`<tr><td>%s</td><td>%d</td><td>%d</td></tr>`, esc(row.Metric), row.Before, row.After)
		}
		p.print(`</tbody></table>`)
		return p.err
	})
}

// DtypeTable renders the column type summary.
func DtypeTable(dtypes []core.DtypeEntry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<h3>Column Types</h3><table><thead><tr><th>Column</th><th>Type</th></tr></thead><tbody>`)
		for _, d := range dtypes {
			p.print(`<tr><td>%s</td><td>%s</td></tr>`, esc(d.Column), esc(d.Type))
		}
		p.print(`</tbody></table>`)
		return p.err
	})
}

// Chart renders the chart picker and, when resolved, the chart itself.
func Chart(data ChartData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<section><h2>Visualize</h2><form method="get" action="/" class="card">`)
		p.print(`<label>Chart <select name="kind">`)
		for _, k := range []string{"scatter", "line", "bar", "area"} {
			p.print(`<option value="%s"%s>%s</option>`, k, selected(k, data.Kind), strings.ToUpper(k[:1])+k[1:])
		}
		p.print(`</select></label><label>X <select name="x">`)
		for _, c := range data.Columns {
			p.print(`<option value="%s"%s>%s</option>`, esc(c), selected(c, data.X), esc(c))
		}
		p.print(`</select></label><label>Y <select name="y">`)
		for _, c := range data.Numeric {
			p.print(`<option value="%s"%s>%s</option>`, esc(c), selected(c, data.Y), esc(c))
		}
		p.print(`</select></label><button type="submit">Plot</button></form>`)
		if data.SVG != "" {
			// SVG is generated server-side from escaped labels.
			p.print(`<figure>%s</figure>`, data.SVG)
		}
		p.print(`</section>`)
		return p.err
	})
}

// ErrorAlert renders a user-facing error fragment.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.print(`<div class="error" role="alert"><strong>%s</strong>`, esc(message))
		if action != "" {
			p.print(` <span>%s</span>`, esc(action))
		}
		p.print(` <code>%s</code></div>`, esc(code))
		return p.err
	})
}

// ErrorPage renders ErrorAlert in the page shell with a link back.
func ErrorPage(message, action, code string) templ.Component {
	return Layout("Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ErrorAlert(message, action, code).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<p><a href="/">Back</a></p>`)
		return err
	}))
}

func selected(v, current string) string {
	if v == current {
		return " selected"
	}
	return ""
}

const pageCSS = `body{font-family:system-ui,sans-serif;margin:0;background:#f7f7f8;color:#1f2328}
main{max-width:1200px;margin:0 auto;padding:1.5rem}
.card{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:1rem;margin:1rem 0;display:flex;flex-wrap:wrap;gap:1rem;align-items:end}
fieldset{border:1px solid #d0d7de;border-radius:4px}
.fills{display:grid;grid-template-columns:repeat(4,1fr);gap:.5rem}
table{border-collapse:collapse;background:#fff;margin:.5rem 0}
th,td{border:1px solid #d0d7de;padding:.25rem .5rem;font-size:.875rem;text-align:left}
td.absent{background:#fff8c5}
.scroll{overflow-x:auto;max-height:480px}
.muted{color:#656d76}
.notice{background:#ddf4ff;padding:.5rem;border-radius:4px}
.error{background:#ffebe9;border:1px solid #ff8182;padding:.75rem;border-radius:4px}`
