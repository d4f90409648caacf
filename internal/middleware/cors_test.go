package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iotinerary/planner/internal/middleware"
)

const devOrigin = "http://localhost:5173"

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler(t *testing.T) {
	tests := []struct {
		name      string
		method    string
		path      string
		origin    string
		preflight string // Access-Control-Request-Method, empty for a simple request
		check     func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "allowed origin reads hubs",
			method: http.MethodGet, path: "/hubs", origin: devOrigin,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:   "foreign origin gets no grant",
			method: http.MethodGet, path: "/hubs", origin: "https://elsewhere.example",
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			},
		},
		{
			name:   "preflight before replacing a day's stops",
			method: http.MethodOptions, path: "/itineraries/abc/days/1/stops", origin: devOrigin,
			preflight: http.MethodPut,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Less(t, rec.Code, 300, "preflight answered with %d", rec.Code)
				assert.Equal(t, devOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
				assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
				assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
			},
		},
		{
			name:   "export file name is readable",
			method: http.MethodGet, path: "/itineraries/abc/export?format=csv", origin: devOrigin,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				exposed := rec.Header().Get("Access-Control-Expose-Headers")
				assert.Contains(t, exposed, "Content-Disposition")
				assert.Contains(t, exposed, "X-Request-Id")
			},
		},
	}

	h := middleware.NewCORSHandler([]string{devOrigin})(okHandler)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Origin", tc.origin)
			if tc.preflight != "" {
				req.Header.Set("Access-Control-Request-Method", tc.preflight)
				req.Header.Set("Access-Control-Request-Headers", "content-type")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			tc.check(t, rec)
		})
	}
}
