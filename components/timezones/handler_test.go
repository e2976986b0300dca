package timezones

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type handlerResponse struct {
	Options []struct {
		Value string `json:"value"`
		Label string `json:"label"`
	} `json:"options"`
}

func serve(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, []string) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	if rec.Code != http.StatusOK || method == http.MethodHead {
		return rec, nil
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}

	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Options == nil {
		t.Fatalf("expected an options array, got null")
	}
	values := make([]string, 0, len(payload.Options))
	for _, opt := range payload.Options {
		values = append(values, opt.Value)
	}
	return rec, values
}

func TestHandler(t *testing.T) {
	zones := WithZones([]string{"America/Chicago", "America/New_York", "Europe/Paris", "UTC"})

	tests := []struct {
		name   string
		fns    []OptionFn
		method string
		target string
		code   int
		want   []string
	}{
		{
			name:   "empty query",
			fns:    []OptionFn{zones},
			method: http.MethodGet,
			target: "/options/timezones",
			code:   http.StatusOK,
			want:   []string{},
		},
		{
			name:   "limit clamped",
			fns:    []OptionFn{zones, WithMaxLimit(2)},
			method: http.MethodGet,
			target: "/options/timezones?q=America&limit=10",
			code:   http.StatusOK,
			want:   []string{"America/Chicago", "America/New_York"},
		},
		{
			name:   "custom params",
			fns:    []OptionFn{zones, WithSearchParam("search"), WithLimitParam("l")},
			method: http.MethodGet,
			target: "/options/timezones?search=utc&l=5",
			code:   http.StatusOK,
			want:   []string{"UTC"},
		},
		{
			name:   "negative limit",
			fns:    []OptionFn{zones},
			method: http.MethodGet,
			target: "/options/timezones?q=utc&limit=-1",
			code:   http.StatusOK,
			want:   []string{},
		},
		{
			name: "guard status",
			fns: []OptionFn{zones, WithGuard(func(r *http.Request) error {
				return StatusError{Code: http.StatusUnauthorized}
			})},
			method: http.MethodGet,
			target: "/options/timezones?q=utc",
			code:   http.StatusUnauthorized,
		},
		{
			name:   "method not allowed",
			fns:    []OptionFn{zones},
			method: http.MethodPost,
			target: "/options/timezones?q=utc",
			code:   http.StatusMethodNotAllowed,
		},
		{
			name:   "head has no body",
			fns:    []OptionFn{zones},
			method: http.MethodHead,
			target: "/options/timezones?q=utc",
			code:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, got := serve(t, Handler(tt.fns...), tt.method, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("expected status %d, got %d", tt.code, rec.Code)
			}
			if tt.want == nil {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("options mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
