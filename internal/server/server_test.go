package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arenawatch/position-watcher/internal/watcher"
	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthz(t *testing.T) {
	status := watcher.Status{Cycles: 3, LastCycle: time.Now().UTC()}
	mux := NewMux(func() watcher.Status { return status })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	status.LastError = "upstream down"
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatus(t *testing.T) {
	mux := NewMux(func() watcher.Status {
		return watcher.Status{Cycles: 7, Events: 2}
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got watcher.Status
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 7, got.Cycles)
	assert.Equal(t, 2, got.Events)
}
