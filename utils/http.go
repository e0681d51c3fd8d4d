package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/log"
)

func NewDefaultHttpClient(timeout time.Duration) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 1
	t.MaxIdleConnsPerHost = 1

	return &http.Client{
		Timeout:   timeout,
		Transport: t,
	}
}

// HttpRequestWithHeader sends payload as JSON (or no body when payload is nil)
// and returns the status code and raw body. Unlike a plain client call it
// does not judge the status code; callers decide which codes are a success.
// A returned error is always a transport level *common.SyncError for stage.
func HttpRequestWithHeader(ctx context.Context, stage common.Stage, method string, url string, payload interface{}, client *http.Client, headers map[string]string) (int, []byte, error) {
	var body io.Reader
	if payload == nil {
		log.Logger().Debugf("send empty %s request to url %s", method, url)
	} else {
		jsonPostValue, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, &common.SyncError{Stage: stage, Kind: common.KindRequest, Err: err}
		}
		body = bytes.NewBuffer(jsonPostValue)
		log.Logger().Debugf("send %s request %s to url %s", method, string(jsonPostValue), url)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, &common.SyncError{Stage: stage, Kind: common.KindRequest, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for key := range headers {
		req.Header.Set(key, headers[key])
	}

	res, err := client.Do(req)
	if err != nil {
		return 0, nil, &common.SyncError{Stage: stage, Kind: ClassifyTransportError(err), Err: err}
	}

	defer res.Body.Close()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, &common.SyncError{Stage: stage, Kind: ClassifyTransportError(err), Err: err}
	}

	return res.StatusCode, resBody, nil
}

// ClassifyTransportError tells a timeout apart from any other failure to
// reach the server.
func ClassifyTransportError(err error) common.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return common.KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return common.KindTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return common.KindConnection
	}
	return common.KindRequest
}
