package common

import (
	"errors"
	"fmt"
)

type Stage string

const (
	StageFetch     Stage = "fetch"
	StageTransform Stage = "transform"
	StageSubmit    Stage = "submit"
	StageRecord    Stage = "record"
)

type ErrorKind string

const (
	KindTimeout      ErrorKind = "timeout"
	KindConnection   ErrorKind = "connection"
	KindRequest      ErrorKind = "request"
	KindHTTPStatus   ErrorKind = "http_status"
	KindParse        ErrorKind = "parse"
	KindMissingField ErrorKind = "missing_field"
	KindWrite        ErrorKind = "write"
)

// SyncError is the failure of one pipeline stage. StatusCode and Body are
// only set for KindHTTPStatus (Body also for KindParse), Field only for
// KindMissingField.
type SyncError struct {
	Stage      Stage
	Kind       ErrorKind
	StatusCode int
	Body       string
	Field      string
	Reason     string
	Err        error
}

func (e *SyncError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("%s: request failed with status code %d, response body %s", e.Stage, e.StatusCode, e.Body)
	case KindMissingField:
		return fmt.Sprintf("%s: %s %s", e.Stage, e.Field, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Stage, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Kind)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Detail is the short description used in the sync log line.
func (e *SyncError) Detail() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection error"
	case KindRequest:
		return "request error"
	case KindParse:
		return "invalid JSON response"
	case KindMissingField:
		return fmt.Sprintf("%s %s", e.Field, e.Reason)
	case KindWrite:
		return "write error"
	}
	return string(e.Kind)
}

func IsKind(err error, stage Stage, kind ErrorKind) bool {
	var syncErr *SyncError
	if !errors.As(err, &syncErr) {
		return false
	}
	return syncErr.Stage == stage && syncErr.Kind == kind
}
