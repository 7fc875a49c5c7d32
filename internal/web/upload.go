package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/datacleaner/internal/core"
	"github.com/JonMunkholm/datacleaner/internal/ingest"
	"github.com/JonMunkholm/datacleaner/internal/logging"
	"github.com/JonMunkholm/datacleaner/internal/store"
)

// parseUploadForm parses the multipart form within the upload size limit.
func (s *Server) parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("file too large: %w", err)
		}
		return fmt.Errorf("no file provided: %w", err)
	}
	return nil
}

// readUpload parses the multipart form and decodes its "file" part.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*core.Table, string, error) {
	if err := s.parseUploadForm(w, r); err != nil {
		return nil, "", err
	}
	return decodeFormFile(r)
}

func decodeFormFile(r *http.Request) (*core.Table, string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("no file provided: %w", err)
	}
	defer file.Close()

	tbl, err := ingest.Read(header.Filename, file)
	if err != nil {
		return nil, header.Filename, err
	}
	return tbl, header.Filename, nil
}

// cleaningInput returns the table a cleaning form refers to: its "file" part
// when present, otherwise the pending upload named by "upload_id".
func (s *Server) cleaningInput(w http.ResponseWriter, r *http.Request) (*core.Table, string, error) {
	if err := s.parseUploadForm(w, r); err != nil {
		return nil, "", err
	}

	uploadID := r.FormValue("upload_id")
	if uploadID == "" || len(r.MultipartForm.File["file"]) > 0 {
		return decodeFormFile(r)
	}

	id, err := uuid.Parse(uploadID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errUploadNotFound, err)
	}
	u, err := s.session.Upload(id)
	if err != nil {
		return nil, "", err
	}
	return u.Raw, u.FileName, nil
}

// storeUpload keeps a decoded table as the session's pending upload.
func (s *Server) storeUpload(raw *core.Table, fileName string) Upload {
	u := Upload{ID: uuid.New(), FileName: fileName, Raw: raw}
	s.session.SetUpload(u)
	return u
}

// parseCleaningConfig reads the strategy fields and fill[<column>] values
// of an already parsed form.
func parseCleaningConfig(r *http.Request) (core.CleaningConfig, error) {
	cfg := core.DefaultConfig()

	numeric, err := core.ParseNumericStrategy(r.FormValue("numeric_strategy"))
	if err != nil {
		return cfg, err
	}
	categorical, err := core.ParseCategoricalStrategy(r.FormValue("categorical_strategy"))
	if err != nil {
		return cfg, err
	}
	cfg.NumericStrategy = numeric
	cfg.CategoricalStrategy = categorical

	for key, values := range r.Form {
		col, ok := fillColumn(key)
		if !ok || len(values) == 0 {
			continue
		}
		cfg.ManualFill[col] = values[0]
	}
	return cfg, nil
}

// fillColumn extracts the column name from a "fill[<column>]" form key.
func fillColumn(key string) (string, bool) {
	if !strings.HasPrefix(key, "fill[") || !strings.HasSuffix(key, "]") {
		return "", false
	}
	col := key[len("fill[") : len(key)-1]
	return col, col != ""
}

// runClean resolves the form's table, cleans it within a run slot, records
// the run and stores the result in the session.
func (s *Server) runClean(w http.ResponseWriter, r *http.Request) (Snapshot, error) {
	ctx := r.Context()

	raw, fileName, err := s.cleaningInput(w, r)
	if err != nil {
		return Snapshot{}, err
	}
	cfg, err := parseCleaningConfig(r)
	if err != nil {
		return Snapshot{}, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return Snapshot{}, err
	}
	defer s.limiter.Release()

	started := time.Now()
	logger := logging.WithFields(ctx, "file", fileName)
	res := core.CleanWithLogger(logger, raw, cfg, s.now())

	run := store.NewRun(fileName, started, raw.Len(), cfg, res)
	if err := s.runs.Record(ctx, run); err != nil {
		logger.Warn("run history unavailable", "run_id", run.ID, "error", err)
	}

	snap := Snapshot{
		RunID:     run.ID,
		FileName:  fileName,
		CleanedAt: run.StartedAt,
		Result:    res,
	}
	s.session.Set(snap)
	return snap, nil
}
