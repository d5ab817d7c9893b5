// Package push implements the best-effort notification adjunct: a device
// token for the delivery service, and a receiver that hands foreground
// messages to a display handler. Nothing here may fail login or CRUD.
package push

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
	"github.com/weathersafe/admin-console/internal/api/metrics"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

// Registrar provides the delivery token that identifies this console install
// to the push service. The token is minted once and persisted beside the
// session file; on any platform error the registrar reports "no token" and
// the caller proceeds without one.
type Registrar struct {
	path    string
	enabled bool
	log     zerolog.Logger
}

func NewRegistrar(path string, enabled bool, log zerolog.Logger) *Registrar {
	return &Registrar{path: path, enabled: enabled, log: log}
}

// DeliveryToken returns the install's delivery token, or "" when push is
// disabled or the token cannot be read or minted.
func (r *Registrar) DeliveryToken(ctx context.Context) string {
	if !r.enabled {
		return ""
	}

	raw, err := os.ReadFile(r.path)
	if err == nil {
		if token := strings.TrimSpace(string(raw)); token != "" {
			return token
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		r.log.Warn().Err(err).Msg("push: could not read delivery token")
		return ""
	}

	token := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		r.log.Warn().Err(err).Msg("push: could not create token dir")
		return ""
	}
	if err := os.WriteFile(r.path, []byte(token), 0o600); err != nil {
		r.log.Warn().Err(err).Msg("push: could not persist delivery token")
		return ""
	}
	return token
}

const messageBuffer = 64

// Receiver polls the notifications feed while the console runs and delivers
// unseen entries to the registered handler through a buffered channel, so a
// slow terminal never blocks the poll loop.
type Receiver struct {
	client   *api.Client
	interval time.Duration
	handler  func(ports.PushMessage)
	messages chan ports.PushMessage
	seen     map[string]struct{}
	log      zerolog.Logger
}

func NewReceiver(client *api.Client, interval time.Duration, log zerolog.Logger) *Receiver {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Receiver{
		client:   client,
		interval: interval,
		messages: make(chan ports.PushMessage, messageBuffer),
		seen:     make(map[string]struct{}),
		log:      log,
	}
}

// OnMessage registers the display handler. The handler only renders; it must
// never mutate session or screen state.
func (r *Receiver) OnMessage(handler func(ports.PushMessage)) {
	r.handler = handler
}

// Start launches the poll and delivery loops. Both stop when ctx is
// cancelled. Poll failures are logged and retried on the next tick; they are
// never surfaced to the operator.
func (r *Receiver) Start(ctx context.Context) {
	go r.poll(ctx)
	go r.deliver(ctx)
}

func (r *Receiver) poll(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			items, err := r.client.Notifications(ctx)
			if err != nil {
				r.log.Debug().Err(err).Msg("push: poll failed")
				continue
			}
			for _, n := range items {
				if _, ok := r.seen[n.ID]; ok {
					continue
				}
				r.seen[n.ID] = struct{}{}
				select {
				case r.messages <- ports.PushMessage{Title: n.Title, Body: n.Body}:
				default:
					// Buffer full: drop rather than stall the poll.
				}
			}
		}
	}
}

func (r *Receiver) deliver(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-r.messages:
			if r.handler == nil {
				continue
			}
			metrics.PushMessagesTotal.Inc()
			r.handler(msg)
		}
	}
}
