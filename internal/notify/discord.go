package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/arenawatch/position-watcher/internal/logger"
	"github.com/arenawatch/position-watcher/internal/model"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const _embedColorGreen = 0x2ECC71

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp"`
}

type webhookMessage struct {
	Embeds []webhookEmbed `json:"embeds"`
}

// DiscordNotifier posts one embed per new position to a Discord
// webhook, paced under the webhook rate limit.
type DiscordNotifier struct {
	c          *resty.Client
	webhookURL string

	rateLimiter ratelimit.Limiter // 30 req/min per webhook

	logger logger.Logger
}

func NewDiscordNotifier(webhookURL string, logger logger.Logger) *DiscordNotifier {
	client := resty.New().
		SetLogger(logger)

	return &DiscordNotifier{
		c:           client,
		webhookURL:  webhookURL,
		rateLimiter: ratelimit.New(30, ratelimit.Per(1*time.Minute)),
		logger:      logger,
	}
}

func (n *DiscordNotifier) Notify(ctx context.Context, event model.NewPositionEvent) error {
	p := event.Position
	entryTime := time.Unix(p.EntryTime, 0).UTC()

	msg := webhookMessage{
		Embeds: []webhookEmbed{{
			Title: fmt.Sprintf("New position: %s %s", event.AccountID, event.Symbol),
			Description: fmt.Sprintf(
				"**Side**: %s\n**Entry price**: %v\n**Quantity**: %v\n**Leverage**: %vx\n**Oid**: %s\n**Opened**: %s",
				p.Side, p.EntryPrice, p.Quantity, p.Leverage, p.EntryOID, entryTime.Format(time.RFC3339),
			),
			Color:     _embedColorGreen,
			Timestamp: entryTime.Format(time.RFC3339),
		}},
	}

	// Take blocks without watching ctx, so bail out first
	if err := ctx.Err(); err != nil {
		return err
	}
	n.rateLimiter.Take()
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := n.c.R().
		SetContext(ctx).
		SetBody(msg).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("%w: can't post webhook", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("webhook request error: %s", resp.Status())
	}

	n.logger.Debugf("webhook delivered for oid %s: %s", p.EntryOID, resp.Status())
	return nil
}
