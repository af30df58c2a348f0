package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"connectfood/internal/core/domain/model/donation"
	"connectfood/internal/core/domain/model/kernel"

	"github.com/coder/websocket"
)

const (
	defaultSendQueueSize = 32
	defaultWriteTimeout  = 5 * time.Second
	defaultPingInterval  = 30 * time.Second
)

// ActorFunc returns the authenticated caller of a subscription request.
type ActorFunc func(ctx context.Context) (kernel.Actor, bool)

// Hub streams lifecycle events to WebSocket subscribers. Each subscriber only
// receives the events its actor is concerned with (see
// donation.LifecycleEvent.Concerns) and may narrow the stream further to one
// donation with the donationId query parameter. Subscribers that cannot keep
// up lose events instead of slowing the others.
type Hub struct {
	actorFrom      ActorFunc
	logger         *slog.Logger
	originPatterns []string
	sendQueueSize  int
	writeTimeout   time.Duration
	pingInterval   time.Duration

	mu          sync.RWMutex
	subscribers map[*subscriber]struct{}
}

type HubOption func(*Hub)

// WithOriginPatterns allows cross-origin browser connections from hosts
// matching patterns (see websocket.AcceptOptions.OriginPatterns).
func WithOriginPatterns(patterns ...string) HubOption {
	return func(h *Hub) {
		h.originPatterns = append(h.originPatterns, patterns...)
	}
}

func WithPingInterval(d time.Duration) HubOption {
	return func(h *Hub) {
		if d > 0 {
			h.pingInterval = d
		}
	}
}

func NewHub(actorFrom ActorFunc, logger *slog.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		actorFrom:     actorFrom,
		logger:        logger.With("component", "events_hub"),
		sendQueueSize: defaultSendQueueSize,
		writeTimeout:  defaultWriteTimeout,
		pingInterval:  defaultPingInterval,
		subscribers:   make(map[*subscriber]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type subscriber struct {
	actor      kernel.Actor
	donationID *kernel.UUID
	send       chan []byte
}

func (s *subscriber) wants(event donation.LifecycleEvent) bool {
	if s.donationID != nil && !s.donationID.IsEqual(event.DonationID) {
		return false
	}
	return event.Concerns(s.actor)
}

// Deliver implements Sink.
func (h *Hub) Deliver(ctx context.Context, event donation.LifecycleEvent) {
	payload, err := json.Marshal(NewMessage(event))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode event", "event_id", event.ID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for s := range h.subscribers {
		if !s.wants(event) {
			continue
		}
		select {
		case s.send <- payload:
		default:
			h.logger.WarnContext(ctx, "subscriber is lagging, event dropped", "event_id", event.ID)
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// ServeHTTP upgrades the request and streams events until the peer goes away.
// Messages sent by the peer are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actorFrom(r.Context())
	if !ok || actor.Validate() != nil {
		http.Error(w, "subscriber is not identified", http.StatusUnauthorized)
		return
	}

	var filter *kernel.UUID
	if raw := r.URL.Query().Get("donationId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			http.Error(w, "donationId must be a UUID", http.StatusBadRequest)
			return
		}
		filter = &id
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		h.logger.InfoContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	sub := &subscriber{actor: actor, donationID: filter, send: make(chan []byte, h.sendQueueSize)}
	h.add(sub)
	defer h.remove(sub)

	ctx := conn.CloseRead(r.Context())
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		case payload := <-sub.send:
			if err := h.write(ctx, conn, payload); err != nil {
				h.logger.InfoContext(ctx, "websocket write failed", "close_status", websocket.CloseStatus(err), "error", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, h.writeTimeout)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				h.logger.InfoContext(ctx, "websocket ping failed", "error", err)
				return
			}
		}
	}
}

func (h *Hub) write(parent context.Context, conn *websocket.Conn, payload []byte) error {
	ctx, cancel := context.WithTimeout(parent, h.writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}

func (h *Hub) add(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[s] = struct{}{}
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, s)
}
