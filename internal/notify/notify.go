// server/internal/notify/notify.go
package notify

import (
	"encoding/json"
	"log"
	"time"

	"gesla-logistics-api-server/internal/socket"

	"github.com/google/uuid"
)

// Notification is the payload pushed to the back-office notification feed.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"` // "created", "status_change", "fiscal_blocked"
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Sink receives published notifications. Delivery is best-effort.
type Sink interface {
	Publish(n Notification)
}

// Service fans notifications out to every registered sink. It never
// returns an error: a lost notification must not affect the state change
// that produced it.
type Service struct {
	sinks []Sink
}

func NewService(sinks ...Sink) *Service {
	return &Service{sinks: sinks}
}

func (s *Service) AddNotification(n Notification) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	for _, sink := range s.sinks {
		sink.Publish(n)
	}
}

// HubSink pushes notifications to every connected WebSocket client.
type HubSink struct {
	Hub *socket.Hub
}

func (h *HubSink) Publish(n Notification) {
	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("Failed to marshal notification %s: %v", n.ID, err)
		return
	}
	h.Hub.Broadcast(payload)
}

// LogSink writes notifications to the server log. Registered by default so
// a headless deployment still leaves a trace.
type LogSink struct{}

func (LogSink) Publish(n Notification) {
	log.Printf("notification [%s] %s: %s", n.Type, n.Title, n.Description)
}
