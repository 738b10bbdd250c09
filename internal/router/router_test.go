package router

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tidydo/api/handler"
	"github.com/fastygo/tidydo/internal/bootstrap"
	"github.com/fastygo/tidydo/internal/config"
	"github.com/fastygo/tidydo/internal/infrastructure/monitor"
	"github.com/fastygo/tidydo/internal/middleware"
	"github.com/fastygo/tidydo/repository/memory"
)

func newRouter(t *testing.T, secret string) fasthttp.RequestHandler {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	svc := bootstrap.Wire(store, &config.Config{}, nil, bootstrap.Options{})
	t.Cleanup(func() { _ = svc.Close() })
	if err := svc.State.Initialize(ctx, false); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	mon := monitor.New(store, config.BackendMemory, time.Minute, nil)
	mon.Refresh(ctx)

	handlers := Handlers{
		Category:   apiHandler.NewCategoryHandler(svc.Categories, svc.Items, nil, nil),
		Item:       apiHandler.NewItemHandler(svc.Items, nil, nil),
		SimpleItem: apiHandler.NewSimpleItemHandler(svc.SimpleItems, nil, nil),
		View:       apiHandler.NewViewHandler(svc.State, nil, nil),
		Report:     apiHandler.NewReportHandler(svc.Reports, nil, nil),
		Backup:     apiHandler.NewBackupHandler(svc.Backups, nil, nil),
		Settings:   apiHandler.NewSettingsHandler(svc.Settings, nil, nil),
		Health:     apiHandler.NewHealthHandler(mon, svc.State, nil, nil),
	}
	return New(handlers, middleware.JWTAuth(secret, "", nil)).Handler
}

func serve(h fasthttp.RequestHandler, method, uri string) *fasthttp.RequestCtx {
	var rc fasthttp.RequestCtx
	rc.Request.Header.SetMethod(method)
	rc.Request.SetRequestURI(uri)
	h(&rc)
	return &rc
}

func TestRoutes(t *testing.T) {
	h := newRouter(t, "")

	cases := []struct {
		method, uri string
		want        int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/v1/categories", http.StatusOK},
		{http.MethodGet, "/api/v1/items/stats", http.StatusOK},
		{http.MethodGet, "/api/v1/items/missing", http.StatusNotFound},
		{http.MethodGet, "/api/v1/view", http.StatusOK},
		{http.MethodGet, "/api/v1/reports?days=7", http.StatusOK},
		{http.MethodGet, "/api/v1/backup/stats", http.StatusOK},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
	}
	for _, tc := range cases {
		rc := serve(h, tc.method, tc.uri)
		if got := rc.Response.StatusCode(); got != tc.want {
			t.Errorf("%s %s = %d, want %d (%s)", tc.method, tc.uri, got, tc.want, rc.Response.Body())
		}
	}
}

func TestExportRouteIsNotShadowedByID(t *testing.T) {
	h := newRouter(t, "")
	rc := serve(h, http.MethodGet, "/api/v1/items/export?format=csv")
	if rc.Response.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d: %s", rc.Response.StatusCode(), rc.Response.Body())
	}
	if ct := string(rc.Response.Header.ContentType()); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
}

func TestAuthGuardsAPIButNotHealth(t *testing.T) {
	h := newRouter(t, "s3cret")
	if rc := serve(h, http.MethodGet, "/api/v1/items"); rc.Response.StatusCode() != http.StatusUnauthorized {
		t.Fatalf("items without token = %d", rc.Response.StatusCode())
	}
	if rc := serve(h, http.MethodGet, "/health"); rc.Response.StatusCode() != http.StatusOK {
		t.Fatalf("health = %d", rc.Response.StatusCode())
	}
}
