package activity

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	kafkaBufferSize   = 256
	kafkaWriteTimeout = 10 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, messages ...kafka.Message) error
	Close() error
}

// KafkaTracker publishes events from a background goroutine. Events arriving
// while the buffer is full are dropped.
type KafkaTracker struct {
	writer  messageWriter
	events  chan Event
	done    chan struct{}
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

func NewKafkaTracker(brokers []string, topic string) *KafkaTracker {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return newKafkaTracker(writer, kafkaBufferSize)
}

func newKafkaTracker(writer messageWriter, bufferSize int) *KafkaTracker {
	tracker := &KafkaTracker{
		writer:  writer,
		events:  make(chan Event, bufferSize),
		done:    make(chan struct{}),
		timeout: kafkaWriteTimeout,
	}
	go tracker.run()
	return tracker
}

func (tracker *KafkaTracker) Track(event Event) {
	tracker.mu.RLock()
	defer tracker.mu.RUnlock()
	if tracker.closed {
		return
	}

	select {
	case tracker.events <- event:
	default:
		log.Printf("activity: drop %s event, buffer full", event.Type)
	}
}

func (tracker *KafkaTracker) run() {
	defer close(tracker.done)
	for event := range tracker.events {
		tracker.publish(event)
	}
}

func (tracker *KafkaTracker) publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("activity: encode %s event failed: %v", event.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), tracker.timeout)
	defer cancel()

	message := kafka.Message{Key: []byte(event.Type), Value: payload}
	if err := tracker.writer.WriteMessages(ctx, message); err != nil {
		log.Printf("activity: publish %s event failed: %v", event.Type, err)
	}
}

// Close drains buffered events and closes the writer.
func (tracker *KafkaTracker) Close() error {
	tracker.mu.Lock()
	if tracker.closed {
		tracker.mu.Unlock()
		return nil
	}
	tracker.closed = true
	close(tracker.events)
	tracker.mu.Unlock()

	<-tracker.done
	return tracker.writer.Close()
}
