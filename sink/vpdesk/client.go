package vpdesk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/log"
	"github.com/timeplus-io/chameleon/locsync/utils"
)

const ResourcesPath = "resources"

var successStatus = map[int]struct{}{
	http.StatusOK:        {},
	http.StatusCreated:   {},
	http.StatusNoContent: {},
}

type Client struct {
	address string
	apikey  string
	client  *http.Client
}

func NewClient(address string, apikey string, client *http.Client) *Client {
	return &Client{
		address: address,
		apikey:  apikey,
		client:  client,
	}
}

func IsSuccess(status int) bool {
	_, ok := successStatus[status]
	return ok
}

// UpdateResource overwrites the attributes in payload on one resource.
func (c *Client) UpdateResource(ctx context.Context, resourceUID string, payload *common.SinkPayload) (int, error) {
	target := fmt.Sprintf("%s/%s/%s", c.address, ResourcesPath, url.PathEscape(resourceUID))
	headers := map[string]string{
		"apikey": c.apikey,
		"Accept": "application/json",
	}

	logger := log.Stage(string(common.StageSubmit))
	logger.Infof("sending data to VP Desk %s", target)

	status, body, err := utils.HttpRequestWithHeader(ctx, common.StageSubmit, http.MethodPut, target, payload, c.client, headers)
	if err != nil {
		return status, err
	}

	if !IsSuccess(status) {
		return status, &common.SyncError{
			Stage:      common.StageSubmit,
			Kind:       common.KindHTTPStatus,
			StatusCode: status,
			Body:       string(body),
		}
	}

	if len(body) > 0 {
		logger.Debugf("VP Desk response %s", string(body))
	}
	return status, nil
}
