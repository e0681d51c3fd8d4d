package sink

import (
	"context"

	"github.com/timeplus-io/chameleon/locsync/common"
)

// Sink pushes a converted payload to its one target resource and returns the
// status the downstream answered with.
type Sink interface {
	Write(ctx context.Context, payload *common.SinkPayload) (int, error)
}
