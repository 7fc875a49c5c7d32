package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "oversized body maps to FILE001",
			err:         errors.New("http: request body too large"),
			wantCode:    "FILE001",
			wantMessage: "File exceeds the upload size limit",
		},
		{
			name:        "wrapped csv error maps to FILE002",
			err:         fmt.Errorf("read upload: %w", errors.New("invalid csv: record on line 3")),
			wantCode:    "FILE002",
			wantMessage: "File is not a valid CSV",
		},
		{
			name:        "unsupported format maps to FILE006",
			err:         errors.New("unsupported format: .json"),
			wantCode:    "FILE006",
			wantMessage: "This file type is not supported",
		},
		{
			name:        "busy limiter maps to RUN001",
			err:         ErrTooManyRuns,
			wantCode:    "RUN001",
			wantMessage: "System is busy cleaning other files",
		},
		{
			name:        "bad strategy maps to RUN003",
			err:         errors.New(`invalid numeric strategy "max": want median, mean or none`),
			wantCode:    "RUN003",
			wantMessage: "Unknown numeric fill strategy",
		},
		{
			name:        "non numeric axis maps to CHART002",
			err:         errors.New(`column "title" is not numeric`),
			wantCode:    "CHART002",
			wantMessage: "The Y axis needs a numeric column",
		},
		{
			name:        "missing pending upload maps to FILE008",
			err:         fmt.Errorf("upload not found: %s", "0b5c"),
			wantCode:    "FILE008",
			wantMessage: "The previewed upload has expired",
		},
		{
			name:        "malformed run id maps to HIST002",
			err:         errors.New("run history: invalid run id: invalid UUID length: 3"),
			wantCode:    "HIST002",
			wantMessage: "That run ID is not valid",
		},
		{
			name:        "unknown run maps to HIST002",
			err:         fmt.Errorf("get run: %w", errors.New("run history: run not found")),
			wantCode:    "HIST002",
			wantMessage: "No run with that ID was found",
		},
		{
			name:        "unreachable history maps to HIST001",
			err:         errors.New("run history: dial tcp: connection refused"),
			wantCode:    "HIST001",
			wantMessage: "Run history is unavailable",
		},
		{
			name:        "rate limit maps to RATE001",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error falls back to ERR000",
			err:         errors.New("something odd happened"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(errors.New("empty file"))
	want := "The uploaded file is empty (Code: FILE005). Upload a file with a header row"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true, want false")
	}
	if !IsUserFacing(errors.New("no file provided")) {
		t.Error("IsUserFacing(no file provided) = false, want true")
	}
	if IsUserFacing(errors.New("segfault")) {
		t.Error("IsUserFacing(segfault) = true, want false")
	}
}
