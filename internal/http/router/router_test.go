package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "mediguide/internal/http"
	"mediguide/platform/logger"

	"github.com/gin-gonic/gin"
)

type routerConfig struct{}

func (routerConfig) GetHTTPAddr() string        { return ":0" }
func (routerConfig) GetCORSAllowAll() bool      { return false }
func (routerConfig) GetCORSOrigins() []string   { return []string{"http://localhost:5000"} }
func (routerConfig) GetCORSAllowCreds() bool    { return true }
func (routerConfig) GetJWTAccessSecret() string { return "secret" }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type stubModule struct{}

func (stubModule) Name() string { return "stub" }

func (stubModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/public", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	ctx.Hospital.GET("/private", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(health apphttp.HealthChecker) *gin.Engine {
	return New(&apphttp.App{
		Config:  routerConfig{},
		Logger:  logger.Discard(),
		Health:  health,
		Modules: []apphttp.Module{stubModule{}},
	})
}

func serve(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	if rec := serve(newEngine(pinger{}), "/api/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected health 200, got %d", rec.Code)
	}
	if rec := serve(newEngine(pinger{}), "/api/ready"); rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d", rec.Code)
	}
	if rec := serve(newEngine(pinger{err: errors.New("down")}), "/api/ready"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected ready 503, got %d", rec.Code)
	}
}

func TestModuleGroups(t *testing.T) {
	engine := newEngine(nil)

	if rec := serve(engine, "/api/v1/public"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected public route 204, got %d", rec.Code)
	}
	if rec := serve(engine, "/api/v1/private"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected private route 401 without token, got %d", rec.Code)
	}
}

func TestSecurityHeadersAndRequestID(t *testing.T) {
	rec := serve(newEngine(nil), "/api/health")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}
}
