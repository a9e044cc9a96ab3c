package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/group-scheduler/internal/auth"
)

func TestRequireSessionAttachesPrincipal(t *testing.T) {
	t.Parallel()

	validator := stubValidator{claims: &auth.Claims{UserID: "user-1", Email: "alice@example.com"}}
	var seen bool
	next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		principal, ok := PrincipalFromContext(req.Context())
		if !ok {
			t.Error("principal missing from context")
		}
		if principal.UserID != "user-1" || principal.Email != "alice@example.com" {
			t.Errorf("principal = %v", principal)
		}
		seen = true
	})

	handler := RequireSession(validator, nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !seen {
		t.Fatal("next handler was not invoked")
	}
}

func TestRequireSessionRejectsMissingToken(t *testing.T) {
	t.Parallel()

	handler := RequireSession(stubValidator{}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next handler should not run")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/groups", nil))

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestRequireSessionRejectsInvalidToken(t *testing.T) {
	t.Parallel()

	handler := RequireSession(stubValidator{err: auth.ErrInvalidToken}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/groups", nil)
	req.Header.Set("Authorization", "Bearer expired")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", recorder.Code)
	}
}

func TestRequestLoggerRecordsLifecycle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/groups", nil))

	output := buf.String()
	for _, want := range []string{"request started", "request completed", "status=418", "request_id=1"} {
		if !bytes.Contains([]byte(output), []byte(want)) {
			t.Errorf("log output missing %q:\n%s", want, output)
		}
	}
}

func TestMetricsRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/groups", want: "/groups"},
		{path: "/groups/abc-123", want: "/groups/{id}"},
		{path: "/groups/abc-123/members", want: "/groups/{id}/members"},
		{path: "/groups/abc-123/members/def-456", want: "/groups/{id}/members/{id}"},
		{path: "/groups/abc-123/calendar.ics", want: "/groups/{id}/calendar.ics"},
		{path: "/groups/join", want: "/groups/join"},
		{path: "/busy/xyz", want: "/busy/{id}"},
		{path: "/events/xyz", want: "/events/{id}"},
		{path: "/assistant/query", want: "/assistant/query"},
		{path: "/", want: "/"},
	}

	for _, tc := range tests {
		if got := metricsRoute(tc.path); got != tc.want {
			t.Errorf("metricsRoute(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
