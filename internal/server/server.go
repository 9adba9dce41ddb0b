package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/arenawatch/position-watcher/internal/watcher"
	"github.com/bytedance/sonic"
)

// HTTPServer serves the optional status endpoints. The watcher runs
// fine without it; it only reads loop snapshots.
type HTTPServer struct {
	s *http.Server
}

func NewHTTPServer(ctx context.Context, port string, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		s: &http.Server{
			Handler:           handler,
			Addr:              ":" + port,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(listener net.Listener) context.Context {
				return ctx
			},
		},
	}
}

func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error)
	go func() {
		errCh <- s.s.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		return s.s.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// NewMux wires the status endpoints: /healthz answers 200 while the
// last cycle succeeded and 503 otherwise, /status dumps the loop
// snapshot as JSON.
func NewMux(status func() watcher.Status) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		st := status()
		if st.LastError != "" {
			http.Error(w, st.LastError, http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		data, err := sonic.Marshal(status())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})

	return mux
}
