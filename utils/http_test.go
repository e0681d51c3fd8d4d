package utils_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("HttpRequestWithHeader", func() {
	var server *httptest.Server

	BeforeEach(func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("X-Content-Type", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusTeapot)
			fmt.Fprintf(w, "%s|%s", r.Header.Get("X-Custom"), body)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	It("returns any status with its body and sets headers", func() {
		status, body, err := utils.HttpRequestWithHeader(context.Background(), common.StageSubmit, http.MethodPut, server.URL, map[string]string{"a": "b"}, utils.NewDefaultHttpClient(time.Second), map[string]string{"X-Custom": "yes"})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(status).Should(Equal(http.StatusTeapot))
		Expect(string(body)).Should(Equal(`yes|{"a":"b"}`))
	})

	It("reports an unbuildable request", func() {
		_, _, err := utils.HttpRequestWithHeader(context.Background(), common.StageFetch, http.MethodGet, "http://[::1", nil, utils.NewDefaultHttpClient(time.Second), nil)
		Expect(common.IsKind(err, common.StageFetch, common.KindRequest)).Should(BeTrue())
	})

	It("reports an unsupported scheme as a request error", func() {
		_, _, err := utils.HttpRequestWithHeader(context.Background(), common.StageFetch, http.MethodGet, "ftp://example.com", nil, utils.NewDefaultHttpClient(time.Second), nil)
		Expect(common.IsKind(err, common.StageFetch, common.KindRequest)).Should(BeTrue())
	})
})

var _ = Describe("ClassifyTransportError", func() {
	It("classifies timeouts", func() {
		Expect(utils.ClassifyTransportError(context.DeadlineExceeded)).Should(Equal(common.KindTimeout))
		Expect(utils.ClassifyTransportError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded))).Should(Equal(common.KindTimeout))
	})

	It("classifies connection failures", func() {
		opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
		Expect(utils.ClassifyTransportError(opErr)).Should(Equal(common.KindConnection))
		Expect(utils.ClassifyTransportError(&net.DNSError{Err: "no such host", Name: "b167-s10"})).Should(Equal(common.KindConnection))
		Expect(utils.ClassifyTransportError(io.ErrUnexpectedEOF)).Should(Equal(common.KindConnection))
	})

	It("falls back to a request error", func() {
		Expect(utils.ClassifyTransportError(errors.New("boom"))).Should(Equal(common.KindRequest))
	})
})
