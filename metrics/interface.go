package metrics

import "time"

// Metrics collects the counters of one sync run.
type Metrics interface {
	ObserveStage(stage string, start time.Time)
	Fail(stage string, kind string)
	Result(success bool)
	Save(path string) error
}
