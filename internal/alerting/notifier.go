package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pointpair/internal/logging"
)

// Discovery event names carried on notifications.
const (
	EventPairsDiscovered = "pairs_discovered"
	EventNoPairsFound    = "no_pairs_found"
)

// Notification summarises one discovery outcome for operators.
type Notification struct {
	Building              string    `json:"building"`
	Event                 string    `json:"event"`
	PairCount             int       `json:"pair_count"`
	InstanceCol           string    `json:"instance_col,omitempty"`
	SingleInstanceSensors []string  `json:"single_instance_sensors,omitempty"`
	Message               string    `json:"message"`
	Timestamp             time.Time `json:"timestamp"`
}

// Notifier delivers discovery notifications.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// WebhookNotifier posts notifications to a configured HTTP endpoint.
type WebhookNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookNotifier constructs a webhook notifier.
func NewWebhookNotifier(url string, timeout time.Duration, logger zerolog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logging.Component(logger, "alert_webhook"),
	}
}

// Notify posts the notification as JSON.
func (n *WebhookNotifier) Notify(ctx context.Context, note Notification) error {
	if note.Message == "" {
		note.Message = renderMessage(note)
	}
	if note.Timestamp.IsZero() {
		note.Timestamp = time.Now().UTC()
	}

	body, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	n.logger.Info().
		Str("building", note.Building).
		Str("event", note.Event).
		Int("pairs", note.PairCount).
		Msg("notification delivered")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[pointpair] ")
	switch note.Event {
	case EventNoPairsFound:
		fmt.Fprintf(&builder, "%s: no sensor pairs found; configure pairs manually", note.Building)
	default:
		fmt.Fprintf(&builder, "%s: discovered %d sensor pair(s)", note.Building, note.PairCount)
		if note.InstanceCol != "" {
			fmt.Fprintf(&builder, " via instance column %s", note.InstanceCol)
		}
	}
	if len(note.SingleInstanceSensors) > 0 {
		fmt.Fprintf(&builder, "; single-instance sensors: %s", strings.Join(note.SingleInstanceSensors, ", "))
	}
	return builder.String()
}

var _ Notifier = (*WebhookNotifier)(nil)
