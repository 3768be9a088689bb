package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mediguide/internal/searchtrigger/service"
	"mediguide/internal/searchtrigger/transport"
	"mediguide/platform/logger"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine() *gin.Engine {
	engine := gin.New()
	New(service.New(logger.Discard())).RegisterRoutes(engine.Group("/search"))
	return engine
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) transport.NotificationResponse {
	t.Helper()
	var resp transport.NotificationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestTriggerQuery(t *testing.T) {
	tests := []struct {
		name     string
		pincode  string
		hospital string
		kind     string
		message  string
	}{
		{name: "both empty", kind: "warning", message: "Please enter city/pincode or hospital name!"},
		{name: "pincode", pincode: "560001", kind: "info", message: `Searching hospitals in "560001" with keyword ""`},
		{name: "hospital", hospital: "Apollo", kind: "info", message: `Searching hospitals in "" with keyword "Apollo"`},
		{name: "both", pincode: "560001", hospital: "Apollo", kind: "info", message: `Searching hospitals in "560001" with keyword "Apollo"`},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set("pincode", tt.pincode)
			q.Set("hospital", tt.hospital)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/trigger?"+q.Encode(), nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			resp := decode(t, rec)
			if resp.Kind != tt.kind || resp.Message != tt.message {
				t.Fatalf("unexpected response %+v", resp)
			}
		})
	}
}

func TestTriggerQueryWithoutParams(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/trigger", nil))

	if resp := decode(t, rec); resp.Kind != "warning" {
		t.Fatalf("expected warning, got %+v", resp)
	}
}

func TestTriggerJSON(t *testing.T) {
	engine := newEngine()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/search/trigger", strings.NewReader(`{"pincode":"560001","hospital":"Apollo"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	resp := decode(t, rec)
	if rec.Code != http.StatusOK || resp.Message != `Searching hospitals in "560001" with keyword "Apollo"` {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestTriggerJSONEmptyBodyWarns(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search/trigger", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp.Kind != "warning" {
		t.Fatalf("expected warning, got %+v", resp)
	}
}

func TestTriggerJSONMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search/trigger", strings.NewReader(`{"pincode":`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTriggerIsIdempotent(t *testing.T) {
	engine := newEngine()
	var bodies []string
	for range 2 {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/trigger?pincode=560001", nil))
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("expected identical responses, got %q and %q", bodies[0], bodies[1])
	}
}
