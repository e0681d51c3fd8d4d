package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/log"
	"github.com/timeplus-io/chameleon/locsync/metrics"
	"github.com/timeplus-io/chameleon/locsync/recorder"
	"github.com/timeplus-io/chameleon/locsync/sink"
	"github.com/timeplus-io/chameleon/locsync/source"
	"github.com/timeplus-io/chameleon/locsync/transform"
)

type State string

const (
	StateIdle         State = "idle"
	StateFetching     State = "fetching"
	StateTransforming State = "transforming"
	StateSubmitting   State = "submitting"
	StateRecording    State = "recording"
	StateDone         State = "done"
)

const (
	ReasonFetch     = "Failed to fetch data from GpsGate"
	ReasonTransform = "Failed to transform data"
	ReasonSubmit    = "Failed to send data to VP Desk"
)

// Result describes one run. Success alone decides the verdict; RecordErr is
// informational.
type Result struct {
	RunID     string
	Success   bool
	States    []State
	Payload   *common.SinkPayload
	Outcome   common.SyncOutcome
	Line      string
	Err       error
	RecordErr error
}

type Pipeline struct {
	source    source.Source
	converter *transform.Converter
	sink      sink.Sink
	recorder  *recorder.Recorder
	metrics   metrics.Metrics
	now       func() time.Time
}

func NewPipeline(src source.Source, converter *transform.Converter, snk sink.Sink, rec *recorder.Recorder, m metrics.Metrics) *Pipeline {
	if m == nil {
		m = metrics.NewManager()
	}
	return &Pipeline{
		source:    src,
		converter: converter,
		sink:      snk,
		recorder:  rec,
		metrics:   m,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for the outcome timestamp.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

type run struct {
	*Pipeline
	result *Result
	logger *logrus.Entry
}

func (r *run) enter(state State) {
	r.result.States = append(r.result.States, state)
	r.logger.WithField("state", state).Debug("pipeline state change")
}

// Run performs one fetch, transform, submit and record pass. Nothing is
// retried; a fetch or transform failure goes straight to recording.
func (p *Pipeline) Run(ctx context.Context) *Result {
	r := &run{
		Pipeline: p,
		result:   &Result{RunID: uuid.New().String()},
	}
	r.logger = log.Logger().WithField("run", r.result.RunID)
	r.enter(StateIdle)

	record, payload, err := r.sync(ctx)
	r.result.Payload = payload
	r.result.Err = err
	r.result.Success = err == nil

	r.enter(StateRecording)
	r.record(record, payload, err)

	r.metrics.Result(r.result.Success)
	r.enter(StateDone)
	return r.result
}

func (r *run) sync(ctx context.Context) (common.SourceRecord, *common.SinkPayload, error) {
	r.enter(StateFetching)
	start := time.Now()
	record, err := r.source.Read(ctx)
	r.metrics.ObserveStage(string(common.StageFetch), start)
	if err != nil {
		r.fail(common.StageFetch, err)
		return nil, nil, err
	}
	r.logger.WithField("stage", common.StageFetch).Info("data retrieved from GpsGate")

	r.enter(StateTransforming)
	start = time.Now()
	payload, err := r.converter.Convert(record)
	r.metrics.ObserveStage(string(common.StageTransform), start)
	if err != nil {
		r.fail(common.StageTransform, err)
		return record, nil, err
	}
	r.logger.WithField("stage", common.StageTransform).Infof("transformed coordinates to %s", payload.Attributes[0].EntityValue)
	if body, err := json.Marshal(payload); err == nil {
		r.logger.WithField("stage", common.StageTransform).Debugf("payload %s", body)
	}

	r.enter(StateSubmitting)
	start = time.Now()
	status, err := r.sink.Write(ctx, payload)
	r.metrics.ObserveStage(string(common.StageSubmit), start)
	if err != nil {
		r.fail(common.StageSubmit, err)
		return record, payload, err
	}
	r.logger.WithField("stage", common.StageSubmit).Infof("location updated in VP Desk (status: %d)", status)
	return record, payload, nil
}

func (r *run) fail(stage common.Stage, err error) {
	kind := "unknown"
	entry := r.logger.WithField("stage", stage)

	var syncErr *common.SyncError
	if errors.As(err, &syncErr) {
		kind = string(syncErr.Kind)
		entry = entry.WithField("kind", syncErr.Kind)
		if syncErr.Kind == common.KindHTTPStatus || syncErr.Kind == common.KindParse {
			entry = entry.WithField("response", syncErr.Body)
		}
	}
	r.metrics.Fail(string(stage), kind)
	entry.Errorf("stage failed: %s", err)
}

func (r *run) record(record common.SourceRecord, payload *common.SinkPayload, err error) {
	outcome := common.SyncOutcome{
		Success:   err == nil,
		Timestamp: r.now(),
	}
	if err == nil {
		if payload != nil && len(payload.Attributes) > 0 {
			outcome.Location = payload.Attributes[0].EntityValue
		} else {
			outcome.Location = recorder.LocationOf(record)
		}
	} else {
		outcome.FailureReason = FailureReason(err)
	}
	r.result.Outcome = outcome

	line, recordErr := r.recorder.Record(outcome)
	r.result.Line = line
	if recordErr != nil {
		r.result.RecordErr = recordErr
		r.metrics.Fail(string(common.StageRecord), string(common.KindWrite))
		r.logger.WithField("stage", common.StageRecord).Warnf("could not write to log file: %s", recordErr)
		return
	}
	r.logger.WithField("stage", common.StageRecord).Info(line)
}

// FailureReason is the sync log detail for a failed run.
func FailureReason(err error) string {
	var syncErr *common.SyncError
	if !errors.As(err, &syncErr) {
		return recorder.UnknownError
	}

	var prefix string
	switch syncErr.Stage {
	case common.StageFetch:
		prefix = ReasonFetch
	case common.StageTransform:
		prefix = ReasonTransform
	case common.StageSubmit:
		prefix = ReasonSubmit
	default:
		return recorder.UnknownError
	}
	return fmt.Sprintf("%s (%s)", prefix, syncErr.Detail())
}
