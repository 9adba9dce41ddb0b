package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() model.NewPositionEvent {
	return model.NewPositionEvent{
		AccountID: "deepseek-v3",
		Symbol:    "BTCUSDT",
		Position: model.Position{
			EntryOID:   "42",
			EntryPrice: 50000,
			Quantity:   0.1,
			Leverage:   10,
			EntryTime:  1700000000,
		},
	}
}

func TestDiscordNotifierPostsEmbed(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, logger.Nop{})
	require.NoError(t, n.Notify(context.Background(), testEvent()))

	payload := string(body)
	assert.Contains(t, payload, "deepseek-v3")
	assert.Contains(t, payload, "BTCUSDT")
	assert.Contains(t, payload, "50000")
}

func TestDiscordNotifierCancelledContext(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := NewDiscordNotifier(srv.URL, logger.Nop{})
	err := n.Notify(ctx, testEvent())
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestDiscordNotifierWebhookError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL, logger.Nop{})
	assert.Error(t, n.Notify(context.Background(), testEvent()))
}
