package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/ingest"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/store"
	"github.com/JonMunkholm/datacleaner/internal/web/templates"
)

// tableResponse is the JSON form of a table.
type tableResponse struct {
	Columns  []string          `json:"columns"`
	Dtypes   []core.DtypeEntry `json:"dtypes"`
	Rows     [][]any           `json:"rows"`
	RowCount int               `json:"rowCount"`
}

// newTableResponse encodes up to limit rows of t; limit <= 0 encodes all.
func newTableResponse(t *core.Table, limit int) tableResponse {
	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	rows := make([][]any, n)
	for i := 0; i < n; i++ {
		row := t.Row(i)
		for j, v := range row {
			row[j] = jsonCell(v)
		}
		rows[i] = row
	}
	return tableResponse{
		Columns:  t.Names(),
		Dtypes:   core.Dtypes(t),
		Rows:     rows,
		RowCount: t.Len(),
	}
}

// jsonCell renders dates as text and leaves other cells as they are.
func jsonCell(v any) any {
	if d, ok := v.(time.Time); ok {
		return core.FormatCell(d)
	}
	return v
}

// previewResponse describes a raw upload before cleaning.
type previewResponse struct {
	UploadID           uuid.UUID      `json:"uploadId"`
	FileName           string         `json:"fileName"`
	Table              tableResponse  `json:"table"`
	Missing            map[string]int `json:"missing"`
	ColumnsWithMissing []string       `json:"columnsWithMissing"`
	Duplicates         int            `json:"duplicates"`
}

// cleanResponse is the result of a cleaning run.
type cleanResponse struct {
	RunID    uuid.UUID          `json:"runId"`
	FileName string             `json:"fileName"`
	Report   core.QualityReport `json:"report"`
	tableResponse
}

// ----------------------------------------------------------------------------
// Pages
// ----------------------------------------------------------------------------

// handleDashboard renders the upload form, the pending upload and the
// latest result.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r)
}

// handlePreviewForm keeps an upload pending and shows its raw preview with
// the cleaning form.
func (s *Server) handlePreviewForm(w http.ResponseWriter, r *http.Request) {
	raw, fileName, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	s.storeUpload(raw, fileName)
	s.renderDashboard(w, r)
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request) {
	data := templates.DashboardData{}

	if u, ok := s.session.PendingUpload(); ok {
		upload := templates.NewUploadData(u.ID.String(), u.FileName, u.Raw, s.cfg.Upload.PreviewRows)
		data.Upload = &upload
	}

	if snap, err := s.session.Get(); err == nil {
		cleaned := snap.Result.Cleaned
		view := templates.NewTableView(cleaned, s.cfg.Upload.DisplayRows)
		data.FileName = snap.FileName
		data.RunID = snap.RunID.String()
		data.Cleaned = &view
		data.Report = snap.Result.Report
		data.Dtypes = snap.Result.Dtypes
		data.Chart, data.Message = s.dashboardChart(r, cleaned)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Dashboard(data).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
	}
}

// dashboardChart resolves the chart picker against the cleaned table. Chart
// errors become a notice rather than failing the page.
func (s *Server) dashboardChart(r *http.Request, t *core.Table) (*templates.ChartData, string) {
	numeric := NumericColumns(t)
	if len(t.Columns) == 0 || len(numeric) == 0 {
		return nil, ""
	}

	q := r.URL.Query()
	chart := &templates.ChartData{
		Kind:    q.Get("kind"),
		X:       q.Get("x"),
		Y:       q.Get("y"),
		Columns: t.Names(),
		Numeric: numeric,
	}
	if chart.X == "" {
		chart.X = t.Columns[0].Name
	}
	if chart.Y == "" {
		chart.Y = numeric[0]
	}

	kind, err := ParseChartKind(chart.Kind)
	if err != nil {
		return chart, core.FormatUserError(err)
	}
	chart.Kind = string(kind)

	series, err := BuildChartSeries(t, kind, chart.X, chart.Y)
	if err != nil {
		return chart, core.FormatUserError(err)
	}
	chart.SVG = RenderChartSVG(series)
	return chart, ""
}

// handleCleanForm runs a cleaning from the dashboard form and redirects back.
func (s *Server) handleCleanForm(w http.ResponseWriter, r *http.Request) {
	if _, err := s.runClean(w, r); err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ----------------------------------------------------------------------------
// API
// ----------------------------------------------------------------------------

// handlePreview decodes an upload and reports its shape and gaps without
// cleaning it. The upload stays pending under the returned uploadId.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	raw, fileName, err := s.readUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	upload := s.storeUpload(raw, fileName)

	missing := make(map[string]int, len(raw.Columns))
	for _, c := range raw.Columns {
		missing[c.Name] = c.Missing()
	}

	writeJSON(w, r, previewResponse{
		UploadID:           upload.ID,
		FileName:           fileName,
		Table:              newTableResponse(raw, s.cfg.Upload.PreviewRows),
		Missing:            missing,
		ColumnsWithMissing: core.ColumnsWithMissing(raw),
		Duplicates:         core.CountDuplicates(raw),
	})
}

// handleClean runs the full cleaning and returns the cleaned table.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	snap, err := s.runClean(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	writeJSON(w, r, cleanResponse{
		RunID:         snap.RunID,
		FileName:      snap.FileName,
		Report:        snap.Result.Report,
		tableResponse: newTableResponse(snap.Result.Cleaned, 0),
	})
}

// handleCleaned returns the session's cleaned table.
func (s *Server) handleCleaned(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Get()
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, r, newTableResponse(snap.Result.Cleaned, 0))
}

// handleReport returns the session's quality report and column types.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Get()
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, r, map[string]any{
		"runId":  snap.RunID,
		"report": snap.Result.Report,
		"dtypes": snap.Result.Dtypes,
	})
}

// handleExport downloads the session's cleaned table as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Get()
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, ingest.ExportFileName))
	if err := ingest.WriteCSV(w, snap.Result.Cleaned); err != nil {
		// Headers are already sent.
		logging.FromContext(r.Context()).Error("export failed", "run_id", snap.RunID, "error", err)
	}
}

// handleChart returns the series for ?kind=&x=&y= over the cleaned table.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snap, err := s.session.Get()
	if err != nil {
		s.respondError(w, r, err, http.StatusNotFound)
		return
	}

	q := r.URL.Query()
	kind, err := ParseChartKind(q.Get("kind"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	series, err := BuildChartSeries(snap.Result.Cleaned, kind, q.Get("x"), q.Get("y"))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, r, series)
}

// handleRuns lists recent runs, newest first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.History.Limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < limit {
			limit = n
		}
	}

	runs, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("run history: %w", err), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, r, map[string]any{"runs": runs})
}

// handleRun returns one run by ID.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("run history: invalid run id: %w", err), http.StatusBadRequest)
		return
	}

	run, err := s.runs.Get(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.respondError(w, r, err, http.StatusNotFound)
	case err != nil:
		s.respondError(w, r, fmt.Errorf("run history: %w", err), http.StatusServiceUnavailable)
	default:
		writeJSON(w, r, run)
	}
}

// handleHealth reports liveness and the run limiter's state.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status":  "ok",
		"limiter": s.limiter.Status(),
	})
}
