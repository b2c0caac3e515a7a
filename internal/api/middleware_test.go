package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutMiddleware_TimeoutBodyIsJSON(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})

	rec := httptest.NewRecorder()
	timeoutMiddleware(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/due", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, timeoutBody, rec.Body.String())
}

func TestTimeoutMiddleware_HandlerHeadersWin(t *testing.T) {
	fast := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	timeoutMiddleware(time.Second)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/due", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", rec.Body.String())
}

func TestItemIDParam_Unescapes(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "plain", path: "/items/2:255", want: "2:255"},
		{name: "escaped colon", path: "/items/2%3A255", want: "2:255"},
		{name: "escaped percent", path: "/items/2%253A255", want: "2%3A255"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			var gotErr error
			r := chi.NewRouter()
			r.Get("/items/{itemId}", func(w http.ResponseWriter, r *http.Request) {
				got, gotErr = itemIDParam(r)
			})
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}
