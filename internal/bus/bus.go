// Package bus wraps the NATS connection. Muse publishes one event per
// completed run and listens for trend snapshot updates; both sides are
// optional and the service runs fine with no bus configured.
package bus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	// SubjectGenerated carries one RunEvent per completed campaign run.
	SubjectGenerated = "swarm.muse.generated"
	// SubjectTrendsUpdated carries the full replacement trend snapshot.
	SubjectTrendsUpdated = "swarm.trends.updated"
)

// RunEvent is emitted after every successful generation so downstream
// services (analytics, the portfolio archive) can react without polling.
type RunEvent struct {
	RunID        uuid.UUID `json:"run_id"`
	Brand        string    `json:"brand"`
	Industry     string    `json:"industry"`
	CampaignName string    `json:"campaign_name"`
	BraveryScore float64   `json:"bravery_score"`
	OverallScore int       `json:"overall_score"`
	DurationMS   int64     `json:"duration_ms"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
