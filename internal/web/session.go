package web

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/datacleaner/internal/core"
)

var (
	// errNoCleanedTable is returned by handlers that need a finished run.
	errNoCleanedTable = errors.New("no cleaned table in session")

	// errUploadNotFound is returned when a form names an upload the session
	// no longer holds.
	errUploadNotFound = errors.New("upload not found")
)

// Upload is a decoded file waiting for its cleaning settings. Raw is never
// mutated; the pipeline cleans a copy.
type Upload struct {
	ID       uuid.UUID
	FileName string
	Raw      *core.Table
}

// Snapshot is the outcome of the latest run held by the session slot.
type Snapshot struct {
	RunID     uuid.UUID
	FileName  string
	CleanedAt time.Time
	Result    core.Result
}

// Session holds the most recent upload and cleaning result. Writers replace
// whole values; readers get the stored value, which is never mutated after
// it is set.
type Session struct {
	mu     sync.RWMutex
	snap   *Snapshot
	upload *Upload
}

// Set stores a new snapshot, replacing the previous one.
func (s *Session) Set(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = &snap
}

// Get returns the current snapshot, or errNoCleanedTable before the first run.
func (s *Session) Get() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return Snapshot{}, errNoCleanedTable
	}
	return *s.snap, nil
}

// SetUpload stores a previewed upload, replacing the previous one.
func (s *Session) SetUpload(u Upload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = &u
}

// Upload returns the pending upload with the given ID. It stays pending so
// the same file can be cleaned again with other settings.
func (s *Session) Upload(id uuid.UUID) (Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.upload == nil || s.upload.ID != id {
		return Upload{}, fmt.Errorf("%w: %s", errUploadNotFound, id)
	}
	return *s.upload, nil
}

// PendingUpload returns the most recent upload, if any.
func (s *Session) PendingUpload() (Upload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.upload == nil {
		return Upload{}, false
	}
	return *s.upload, true
}
