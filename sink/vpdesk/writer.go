package vpdesk

import (
	"context"

	"github.com/timeplus-io/chameleon/locsync/common"
)

// Writer is a sink.Sink bound to one resource.
type Writer struct {
	client      *Client
	resourceUID string
}

func NewWriter(client *Client, resourceUID string) *Writer {
	return &Writer{
		client:      client,
		resourceUID: resourceUID,
	}
}

func (w *Writer) Write(ctx context.Context, payload *common.SinkPayload) (int, error) {
	return w.client.UpdateResource(ctx, w.resourceUID, payload)
}
