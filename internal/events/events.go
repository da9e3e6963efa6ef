package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nsqio/go-nsq"
)

const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// Change is the message body published after a record is written.
type Change struct {
	Type string    `json:"type"`
	ID   int64     `json:"id"`
	At   time.Time `json:"at"`
}

// Producer is satisfied by *nsq.Producer.
type Producer interface {
	Publish(topic string, body []byte) error
}

// Notifier publishes record changes on a best-effort basis.
// A failed publish is logged and swallowed; the write it describes has already happened.
type Notifier struct {
	producer Producer
	now      func() time.Time
}

func NewNotifier(p Producer) *Notifier {
	if p == nil {
		p = NoopProducer{}
	}
	return &Notifier{producer: p, now: time.Now}
}

func (n *Notifier) Notify(ctx context.Context, topic, kind string, id int64) {
	body, err := json.Marshal(Change{Type: kind, ID: id, At: n.now().UTC()})
	if err != nil {
		slog.WarnContext(ctx, "failed to encode change event", "topic", topic, "error", err)
		return
	}
	if err := n.producer.Publish(topic, body); err != nil {
		slog.WarnContext(ctx, "failed to publish change event", "topic", topic, "type", kind, "id", id, "error", err)
	}
}

// NoopProducer drops every message. Used when events are disabled.
type NoopProducer struct{}

func (NoopProducer) Publish(topic string, body []byte) error {
	return nil
}

// NewNSQProducer connects a producer to nsqd at addr.
func NewNSQProducer(addr string) (*nsq.Producer, error) {
	cfg := nsq.NewConfig()
	producer, err := nsq.NewProducer(addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("nsq producer error: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)
	return producer, nil
}

var _ Producer = (*nsq.Producer)(nil)
var _ Producer = NoopProducer{}
