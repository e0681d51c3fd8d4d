package source

import (
	"context"

	"github.com/timeplus-io/chameleon/locsync/common"
)

// Source reads the current upstream record of one tracked entity.
type Source interface {
	Read(ctx context.Context) (common.SourceRecord, error)
}
