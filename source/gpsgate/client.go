package gpsgate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/log"
	"github.com/timeplus-io/chameleon/locsync/utils"
)

const (
	UsersPath = "applications/%s/users/%s"

	// IdentifierUserID makes the user path segment a user id rather than
	// e.g. a device id.
	IdentifierUserID = "UserId"
)

type Client struct {
	address string
	token   string
	client  *http.Client
}

func NewClient(address string, token string, client *http.Client) *Client {
	return &Client{
		address: address,
		token:   token,
		client:  client,
	}
}

func (c *Client) userURL(applicationID string, userID string) string {
	path := fmt.Sprintf(UsersPath, url.PathEscape(applicationID), url.PathEscape(userID))
	query := url.Values{"Identifier": []string{IdentifierUserID}}
	return fmt.Sprintf("%s/%s?%s", c.address, path, query.Encode())
}

// FetchUser returns the user document, track point included. Only a 200
// answer with a JSON object body is a success.
func (c *Client) FetchUser(ctx context.Context, applicationID string, userID string) (common.SourceRecord, error) {
	headers := map[string]string{
		"Authorization": c.token,
		"Accept":        "application/json",
	}

	target := c.userURL(applicationID, userID)
	log.Stage(string(common.StageFetch)).Infof("fetching user data from GpsGate %s", target)

	status, body, err := utils.HttpRequestWithHeader(ctx, common.StageFetch, http.MethodGet, target, nil, c.client, headers)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, &common.SyncError{
			Stage:      common.StageFetch,
			Kind:       common.KindHTTPStatus,
			StatusCode: status,
			Body:       string(body),
		}
	}

	record, err := decodeRecord(body)
	if err != nil {
		return nil, &common.SyncError{
			Stage: common.StageFetch,
			Kind:  common.KindParse,
			Body:  string(body),
			Err:   err,
		}
	}
	return record, nil
}

func decodeRecord(body []byte) (common.SourceRecord, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var record map[string]interface{}
	if err := decoder.Decode(&record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("response body is not a JSON object")
	}
	if decoder.More() {
		return nil, fmt.Errorf("unexpected data after the JSON object")
	}
	return common.SourceRecord(record), nil
}
