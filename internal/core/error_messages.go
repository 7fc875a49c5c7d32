// Package core cleans content-catalog tables.
//
// # Error Codes Reference
//
// User-facing error messages carry a code so a report of a failed run can be
// matched to a cause. Codes are grouped by category:
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the upload size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - Invalid CSV: File could not be parsed as CSV
//	          Patterns: "invalid csv"
//	FILE003 - Encoding error: File contains invalid characters
//	          Patterns: "encoding error"
//	FILE004 - No file: No file was selected
//	          Patterns: "no file provided"
//	FILE005 - Empty file: The file has no header row
//	          Patterns: "empty file"
//	FILE006 - Unsupported format: Only .csv and .xlsx are accepted
//	          Patterns: "unsupported format"
//	FILE007 - Invalid spreadsheet: The workbook could not be opened
//	          Patterns: "invalid spreadsheet"
//	FILE008 - Upload expired: The previewed upload is no longer held
//	          Patterns: "upload not found"
//
// # Run Errors (RUN001-RUN099)
//
//	RUN001 - System busy: Too many cleaning runs in progress
//	         Patterns: "too many cleaning runs"
//	RUN002 - Nothing cleaned yet: No cleaned table in the session
//	         Patterns: "no cleaned table"
//	RUN003 - Invalid option: Unknown imputation strategy
//	         Patterns: "invalid numeric strategy", "invalid categorical strategy"
//	RUN004 - Request cancelled
//	         Patterns: "context canceled"
//	RUN005 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Chart Errors (CHART001-CHART099)
//
//	CHART001 - Unknown column
//	           Patterns: "unknown column"
//	CHART002 - Y axis must be numeric
//	           Patterns: "not numeric"
//	CHART003 - Unknown chart type
//	           Patterns: "unknown chart kind"
//
// # History Errors (HIST001-HIST099)
//
//	HIST001 - Run history unavailable
//	          Patterns: "connection refused", "run history"
//	HIST002 - Run not found: Unknown or malformed run ID
//	          Patterns: "invalid run id", "run not found"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check the server log for the technical
// error logged with the same request ID.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Remove unused columns or rows and upload again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds the upload size limit",
			Action:  "Remove unused columns or rows and upload again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure the file is comma-separated with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save the file as UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a CSV or Excel file to upload",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file with a header row",
			Code:    "FILE005",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "This file type is not supported",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FILE006",
		},
	},
	{
		pattern: "invalid spreadsheet",
		msg: UserMessage{
			Message: "The spreadsheet could not be opened",
			Action:  "Re-save the workbook as .xlsx and try again",
			Code:    "FILE007",
		},
	},
	{
		pattern: "upload not found",
		msg: UserMessage{
			Message: "The previewed upload has expired",
			Action:  "Upload the file again",
			Code:    "FILE008",
		},
	},

	// Run errors
	{
		pattern: "too many cleaning runs",
		msg: UserMessage{
			Message: "System is busy cleaning other files",
			Action:  "Please wait a moment and try again",
			Code:    "RUN001",
		},
	},
	{
		pattern: "no cleaned table",
		msg: UserMessage{
			Message: "No cleaned data yet",
			Action:  "Upload a file and run the cleaning pipeline first",
			Code:    "RUN002",
		},
	},
	{
		pattern: "invalid numeric strategy",
		msg: UserMessage{
			Message: "Unknown numeric fill strategy",
			Action:  "Choose Median, Mean or Do Not Fill",
			Code:    "RUN003",
		},
	},
	{
		pattern: "invalid categorical strategy",
		msg: UserMessage{
			Message: "Unknown categorical fill strategy",
			Action:  "Choose Mode or Do Not Fill",
			Code:    "RUN003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "RUN004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "RUN005",
		},
	},

	// Chart errors
	{
		pattern: "unknown column",
		msg: UserMessage{
			Message: "Column not found in the cleaned data",
			Action:  "Pick a column from the list",
			Code:    "CHART001",
		},
	},
	{
		pattern: "not numeric",
		msg: UserMessage{
			Message: "The Y axis needs a numeric column",
			Action:  "Pick a numeric column for the Y axis",
			Code:    "CHART002",
		},
	},
	{
		pattern: "unknown chart kind",
		msg: UserMessage{
			Message: "Unknown chart type",
			Action:  "Choose scatter, line, bar or area",
			Code:    "CHART003",
		},
	},

	// History errors
	{
		pattern: "invalid run id",
		msg: UserMessage{
			Message: "That run ID is not valid",
			Action:  "Copy the run ID from the run list",
			Code:    "HIST002",
		},
	},
	{
		pattern: "run not found",
		msg: UserMessage{
			Message: "No run with that ID was found",
			Action:  "It may have been pruned; check the run list",
			Code:    "HIST002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Run history is unavailable",
			Action:  "Cleaning still works; history will return when the database is reachable",
			Code:    "HIST001",
		},
	},
	{
		pattern: "run history",
		msg: UserMessage{
			Message: "Run history is unavailable",
			Action:  "Please try again later",
			Code:    "HIST001",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first pattern match, or ERR000 when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
