package recorder

import (
	"fmt"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/timeplus-io/chameleon/locsync/common"
)

const (
	TimeFormat     = "2006-01-02 15:04:05"
	UnknownError   = "Unknown error"
	unknownValue   = "?"
	defaultMaxSize = 10
)

// Recorder appends one line per sync run to an append only text file.
type Recorder struct {
	path   string
	writer *lumberjack.Logger
}

func NewRecorder(path string, maxSizeMB int) *Recorder {
	if maxSizeMB <= 0 {
		maxSizeMB = defaultMaxSize
	}
	return &Recorder{
		path: path,
		writer: &lumberjack.Logger{
			Filename: path,
			MaxSize:  maxSizeMB,
		},
	}
}

func (r *Recorder) Path() string {
	return r.path
}

// Format renders the line for outcome, without the trailing newline.
func Format(outcome common.SyncOutcome) string {
	timestamp := outcome.Timestamp.Format(TimeFormat)
	if outcome.Success {
		return fmt.Sprintf("[%s] SUCCESS: %s", timestamp, flatten(outcome.Location))
	}

	reason := flatten(outcome.FailureReason)
	if reason == "" {
		reason = UnknownError
	}
	return fmt.Sprintf("[%s] FAILED: %s", timestamp, reason)
}

// Record appends the outcome line. The file is opened and closed within the
// call; nothing is held between runs. The returned line is valid even when
// the write fails.
// The logger is shared by every call since lumberjack starts a rotation
// goroutine per logger that Close does not stop.
func (r *Recorder) Record(outcome common.SyncOutcome) (string, error) {
	line := Format(outcome)

	_, writeErr := r.writer.Write([]byte(line + "\n"))
	closeErr := r.writer.Close()

	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		return line, &common.SyncError{
			Stage: common.StageRecord,
			Kind:  common.KindWrite,
			Err:   fmt.Errorf("could not write to log file %s: %w", r.path, writeErr),
		}
	}
	return line, nil
}

// LocationOf renders the position of record for the success line, with "?"
// in place of a coordinate the record lacks.
func LocationOf(record common.SourceRecord) string {
	if record == nil {
		return "Unknown"
	}
	lat, lon := unknownValue, unknownValue
	if v, ok := record.Lookup("trackPoint", "position", "latitude"); ok && v != nil {
		lat = fmt.Sprint(v)
	}
	if v, ok := record.Lookup("trackPoint", "position", "longitude"); ok && v != nil {
		lon = fmt.Sprint(v)
	}
	return lat + "," + lon
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
