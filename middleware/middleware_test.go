package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shaper-go/shaper/dsl"
	"github.com/shaper-go/shaper/middleware"
)

func handlerEchoName(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v, ok := middleware.ValidatedFromContext[map[string]any](r.Context())
		if !ok {
			t.Fatalf("expected validated body in context")
		}
		_, _ = w.Write([]byte(v["name"].(string)))
	})
}

func TestValidateJSON_PassesValidatedBody(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String().Min(1))
	h := middleware.ValidateJSON[map[string]any](s, handlerEchoName(t))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ann"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ann" {
		t.Fatalf("unexpected response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestValidateJSON_RejectsInvalidBody(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String().Min(1))
	h := middleware.ValidateJSON[map[string]any](s, handlerEchoName(t))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"issues"`) {
		t.Fatalf("expected issues payload, got %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"name"`) {
		t.Fatalf("expected path in payload, got %q", rec.Body.String())
	}
}

func TestValidateJSON_RejectsMalformedBody(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String())
	h := middleware.ValidateJSON[map[string]any](s, handlerEchoName(t))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"broken`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for malformed body, got %d", rec.Code)
	}
}
