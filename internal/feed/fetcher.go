package feed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/arenawatch/position-watcher/internal/config"
	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
	"github.com/bytedance/sonic"
	"resty.dev/v3"
)

// Fetcher pulls the current positions payload from the upstream
// endpoint. Transient network failures are retried with a fixed wait in
// between; anything else propagates immediately.
type Fetcher struct {
	c   *resty.Client
	cfg config.APIConfig

	logger logger.Logger
}

func NewFetcher(cfg config.APIConfig, logger logger.Logger) *Fetcher {
	client := resty.New().
		SetLogger(logger)

	return &Fetcher{
		c:      client,
		cfg:    cfg,
		logger: logger,
	}
}

// Fetch performs up to cfg.RetryAttempts attempts. Only retryable
// failures consume attempts; the wait between them is cfg.RetryWait,
// interruptible through ctx.
func (f *Fetcher) Fetch(ctx context.Context) (model.RawPayload, error) {
	var lastErr error
	for attempt := 1; attempt <= f.cfg.RetryAttempts; attempt++ {
		payload, err := f.fetchOnce(ctx)
		if err == nil {
			return payload, nil
		}
		if !IsRetryable(err) {
			return model.RawPayload{}, err
		}

		lastErr = err
		if attempt == f.cfg.RetryAttempts {
			break
		}

		f.logger.Warnf("%s: fetch attempt %d/%d failed, retrying in %s", err, attempt, f.cfg.RetryAttempts, f.cfg.RetryWait)
		select {
		case <-ctx.Done():
			return model.RawPayload{}, ctx.Err()
		case <-time.After(f.cfg.RetryWait):
		}
	}

	return model.RawPayload{}, fmt.Errorf("%w: fetch failed after %d attempts", lastErr, f.cfg.RetryAttempts)
}

// Ping is the advisory startup connectivity check: a single attempt, no
// retries.
func (f *Fetcher) Ping(ctx context.Context) error {
	_, err := f.fetchOnce(ctx)
	return err
}

func (f *Fetcher) fetchOnce(ctx context.Context) (model.RawPayload, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	resp, err := f.c.R().
		SetContext(reqCtx).
		Get(f.cfg.URL)
	if err != nil {
		return model.RawPayload{}, fmt.Errorf("%w: can't request positions", err)
	}
	defer resp.Body.Close()

	f.logger.Debugf("got response %s status: %s, %s", resp.Request.URL, resp.Status(), resp.Duration())

	if resp.IsError() {
		return model.RawPayload{}, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status())
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.RawPayload{}, fmt.Errorf("%w: can't read positions body", err)
	}

	var payload model.RawPayload
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return model.RawPayload{}, fmt.Errorf("%w: can't unmarshal positions payload", err)
	}

	return payload, nil
}
