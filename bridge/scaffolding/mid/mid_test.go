package mid_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrazmi/taskboard/bridge/scaffolding/errs"
	"github.com/jrazmi/taskboard/bridge/scaffolding/mid"
	"github.com/jrazmi/taskboard/core/auth"
	"github.com/jrazmi/taskboard/infrastructure/web"
	"github.com/jrazmi/taskboard/sdk/logger"
)

func newHandler(h web.HandlerFunc, route ...web.Middleware) *web.WebHandler {
	log := logger.NewDiscard()
	wh := web.NewWebHandler(web.HandlerOptions{},
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Metrics(), mid.Panics()),
	)
	wh.GET("/thing", h, route...)
	return wh
}

func serve(wh http.Handler, req *http.Request) (int, map[string]any) {
	rec := httptest.NewRecorder()
	wh.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestErrorsRendersAppError(t *testing.T) {
	wh := newHandler(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.Newf(errs.NotFound, "Task not found")
	})

	code, body := serve(wh, httptest.NewRequest(http.MethodGet, "/thing", nil))
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
	if body["error"] != "Task not found" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorsMasksInternalDetail(t *testing.T) {
	wh := newHandler(func(ctx context.Context, r *http.Request) web.Encoder {
		return errs.New(errs.InternalOnlyLog, errors.New("db password is hunter2"))
	})

	code, body := serve(wh, httptest.NewRequest(http.MethodGet, "/thing", nil))
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
	if body["error"] != "Internal Server Error" {
		t.Errorf("body = %v", body)
	}
}

func TestErrorsLogLevelByStatus(t *testing.T) {
	tests := []struct {
		name  string
		err   *errs.Error
		level string
	}{
		{name: "unauthenticated", err: errs.Newf(errs.Unauthenticated, "Unauthorized"), level: "WARN"},
		{name: "not-found", err: errs.Newf(errs.NotFound, "Task not found"), level: "WARN"},
		{name: "invalid", err: errs.Newf(errs.InvalidArgument, "Invalid status"), level: "WARN"},
		{name: "internal", err: errs.Newf(errs.Internal, "boom"), level: "ERROR"},
		{name: "internal-only-log", err: errs.New(errs.InternalOnlyLog, errors.New("boom")), level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewDefault(logger.WithOutput(&buf))
			wh := web.NewWebHandler(web.HandlerOptions{}, web.WithGlobalMiddleware(mid.Errors(log)))
			wh.GET("/thing", func(ctx context.Context, r *http.Request) web.Encoder {
				return tt.err
			})

			serve(wh, httptest.NewRequest(http.MethodGet, "/thing", nil))

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("decode record: %v (%s)", err, buf.String())
			}
			if rec["level"] != tt.level {
				t.Errorf("level = %v, want %s", rec["level"], tt.level)
			}
		})
	}
}

func TestPanicsRecovered(t *testing.T) {
	wh := newHandler(func(ctx context.Context, r *http.Request) web.Encoder {
		panic("boom")
	})

	code, body := serve(wh, httptest.NewRequest(http.MethodGet, "/thing", nil))
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
	if body["error"] != "Internal Server Error" {
		t.Errorf("body = %v", body)
	}
}

func TestBearer(t *testing.T) {
	var seen auth.Identity
	wh := newHandler(func(ctx context.Context, r *http.Request) web.Encoder {
		id, err := mid.GetIdentity(ctx)
		if err != nil {
			return errs.New(errs.Internal, err)
		}
		seen = id
		return web.NewJSONResponse(map[string]bool{"ok": true})
	}, mid.Bearer(auth.NewPlaceholder()))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "wrong-scheme", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "empty-token", header: "Bearer   ", want: http.StatusUnauthorized},
		{name: "ok", header: "Bearer dXNlci0xOjE3MDAwMDAwMDAwMDA=", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/thing", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			code, body := serve(wh, req)
			if code != tt.want {
				t.Fatalf("status = %d, want %d", code, tt.want)
			}
			if tt.want == http.StatusUnauthorized && body["error"] != "Unauthorized" {
				t.Errorf("body = %v", body)
			}
		})
	}

	if seen.UserID != "user-1" {
		t.Errorf("identity user = %q, want user-1", seen.UserID)
	}
}
