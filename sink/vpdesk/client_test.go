package vpdesk_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/timeplus-io/chameleon/locsync/common"
	"github.com/timeplus-io/chameleon/locsync/sink/vpdesk"
	"github.com/timeplus-io/chameleon/locsync/utils"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type captured struct {
	method  string
	path    string
	headers http.Header
	body    string
}

var _ = Describe("VP Desk client", func() {
	var (
		server   *httptest.Server
		status   int
		requests []captured
		client   *vpdesk.Client
		payload  *common.SinkPayload
	)

	BeforeEach(func() {
		status = http.StatusOK
		requests = nil
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			requests = append(requests, captured{method: r.Method, path: r.URL.Path, headers: r.Header.Clone(), body: string(body)})
			w.WriteHeader(status)
			if status != http.StatusNoContent {
				w.Write([]byte(`{"detail":"resource answer"}`))
			}
		}))
		client = vpdesk.NewClient(server.URL+"/vplanning/api/v2", "101d9a87", utils.NewDefaultHttpClient(2*time.Second))
		payload = &common.SinkPayload{
			ResourceModel: "Collaborateurs",
			Attributes: []common.Attribute{
				{EntityName: "Collaborateurs-Localisation", EntityValue: "45.1,5.7"},
			},
		}
	})

	AfterEach(func() {
		server.Close()
	})

	It("sends an authenticated PUT with the JSON payload", func() {
		code, err := client.UpdateResource(context.Background(), "CAB9-A6A7", payload)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(code).Should(Equal(http.StatusOK))

		Expect(requests).Should(HaveLen(1))
		req := requests[0]
		Expect(req.method).Should(Equal(http.MethodPut))
		Expect(req.path).Should(Equal("/vplanning/api/v2/resources/CAB9-A6A7"))
		Expect(req.headers.Get("apikey")).Should(Equal("101d9a87"))
		Expect(req.headers.Get("Authorization")).Should(BeEmpty())
		Expect(req.headers.Get("Content-Type")).Should(Equal("application/json"))
		Expect(req.body).Should(MatchJSON(`{"resourceModel":"Collaborateurs","attributes":[{"entityName":"Collaborateurs-Localisation","entityValue":"45.1,5.7"}]}`))
	})

	It("accepts 200, 201 and 204", func() {
		for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusNoContent} {
			status = code
			got, err := vpdesk.NewWriter(client, "CAB9").Write(context.Background(), payload)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(got).Should(Equal(code))
		}
	})

	It("rejects every other status with its body", func() {
		for _, code := range []int{http.StatusAccepted, http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError} {
			status = code
			got, err := client.UpdateResource(context.Background(), "CAB9", payload)
			Expect(got).Should(Equal(code))
			Expect(common.IsKind(err, common.StageSubmit, common.KindHTTPStatus)).Should(BeTrue())
			Expect(err.(*common.SyncError).StatusCode).Should(Equal(code))
			Expect(err.(*common.SyncError).Body).Should(ContainSubstring("resource answer"))
		}
	})

	It("reports an unreachable server as a connection error", func() {
		down := httptest.NewServer(http.NotFoundHandler())
		address := down.URL
		down.Close()

		_, err := vpdesk.NewClient(address, "k", utils.NewDefaultHttpClient(time.Second)).UpdateResource(context.Background(), "CAB9", payload)
		Expect(common.IsKind(err, common.StageSubmit, common.KindConnection)).Should(BeTrue())
	})

	It("reports a slow server as a timeout", func() {
		release := make(chan struct{})
		slowServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer slowServer.Close()
		defer close(release)

		_, err := vpdesk.NewClient(slowServer.URL, "k", utils.NewDefaultHttpClient(50*time.Millisecond)).UpdateResource(context.Background(), "CAB9", payload)
		Expect(common.IsKind(err, common.StageSubmit, common.KindTimeout)).Should(BeTrue())
	})

	It("knows its success statuses", func() {
		Expect(vpdesk.IsSuccess(http.StatusNoContent)).Should(BeTrue())
		Expect(vpdesk.IsSuccess(http.StatusAccepted)).Should(BeFalse())
	})
})
