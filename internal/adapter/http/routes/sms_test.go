package routes

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"sms_invoicer/internal/adapter/http/handlers"
	"sms_invoicer/internal/adapter/http/handlers/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestRouteTable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := gin.New()
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addTwilioRoutes(v1, handlers.NewTwilioHandler(mocks.NewMockISMSUseCase(ctrl), nil, "", nil))
	addBusinessRoutes(v1, handlers.NewBusinessHandler(mocks.NewMockIBusinessUseCase(ctrl)))
	addDocumentRoutes(v1, handlers.NewDocumentHandler(mocks.NewMockIDocumentUseCase(ctrl)))
	addClientRoutes(v1, handlers.NewClientHandler(mocks.NewMockIClientUseCase(ctrl)))
	addExportRoutes(v1, handlers.NewExportHandler(mocks.NewMockIExportUseCase(ctrl)))

	var got []string
	for _, ri := range r.Routes() {
		got = append(got, ri.Method+" "+ri.Path)
	}
	sort.Strings(got)

	want := []string{
		"GET /v1/businesses/:id",
		"GET /v1/businesses/:id/clients",
		"GET /v1/businesses/:id/exports/:type",
		"GET /v1/documents/:id",
		"GET /v1/documents/:id/pdf",
		"GET /v1/ping",
		"PATCH /v1/businesses/:id",
		"PATCH /v1/businesses/:id/clients/:clientId",
		"POST /v1/businesses",
		"POST /v1/businesses/:id/clients",
		"POST /v1/twilio/sms",
		"POST /v1/twilio/sms-status",
	}
	if len(got) != len(want) {
		t.Fatalf("expected routes %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected routes %v, got %v", want, got)
		}
	}
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	addPingRoutes(r.Group("/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != `{"message":"pong"}` {
		t.Fatalf("unexpected ping response: %d %s", w.Code, w.Body.String())
	}
}
