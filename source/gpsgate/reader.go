package gpsgate

import (
	"context"

	"github.com/timeplus-io/chameleon/locsync/common"
)

// Reader is a source.Source bound to one application user.
type Reader struct {
	client        *Client
	applicationID string
	userID        string
}

func NewReader(client *Client, applicationID string, userID string) *Reader {
	return &Reader{
		client:        client,
		applicationID: applicationID,
		userID:        userID,
	}
}

func (r *Reader) Read(ctx context.Context) (common.SourceRecord, error) {
	return r.client.FetchUser(ctx, r.applicationID, r.userID)
}
