package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
	"github.com/segmentio/kafka-go"
)

// Event types published to staff
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventApplicationSubmitted = "application.submitted"
	EventContactReceived      = "contact.received"
)

// RoleKey is the melody session key holding the connected user's role
const RoleKey = "role"

// Event is one staff notification
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	At      time.Time   `json:"at"`
}

type Service interface {
	Publish(ctx context.Context, event Event) error
}

// MelodyService pushes events to websocket sessions whose role passes minRole
type MelodyService struct {
	m       *melody.Melody
	minRole int
}

func NewMelodyService(m *melody.Melody, minRole int) *MelodyService {
	return &MelodyService{m: m, minRole: minRole}
}

func (s *MelodyService) Publish(_ context.Context, event Event) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		role, ok := session.Get(RoleKey)
		if !ok {
			return false
		}
		r, ok := role.(int)
		return ok && r >= s.minRole
	})
}

// MessageWriter is the part of kafka.Writer the service needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultPublishTimeout bounds how long a request waits on the broker
const DefaultPublishTimeout = 2 * time.Second

// KafkaService publishes events keyed by type so one type stays ordered
type KafkaService struct {
	writer  MessageWriter
	timeout time.Duration
}

// NewKafkaWriter builds the writer used by KafkaService
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 50 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
	}
}

func NewKafkaService(writer MessageWriter) *KafkaService {
	return &KafkaService{writer: writer, timeout: DefaultPublishTimeout}
}

// WithTimeout changes the per-event publish deadline
func (s *KafkaService) WithTimeout(d time.Duration) *KafkaService {
	if d > 0 {
		s.timeout = d
	}
	return s
}

func (s *KafkaService) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: payload,
		Time:  event.At,
	})
}

func (s *KafkaService) Close() error {
	return s.writer.Close()
}

// Multi fans an event out to every service and joins their errors
type Multi []Service

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Noop drops every event
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string) *MessageBuilder {
	return &MessageBuilder{event: Event{Type: eventType}}
}

func (b *MessageBuilder) Message(format string, args ...interface{}) *MessageBuilder {
	b.event.Message = fmt.Sprintf(format, args...)
	return b
}

func (b *MessageBuilder) Data(data interface{}) *MessageBuilder {
	b.event.Data = data
	return b
}

func (b *MessageBuilder) At(t time.Time) *MessageBuilder {
	b.event.At = t
	return b
}

func (b *MessageBuilder) Build() Event {
	if b.event.At.IsZero() {
		b.event.At = time.Now().UTC()
	}
	return b.event
}
