package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	publishTimeout = 5 * time.Second
	publishBuffer  = 256
)

// kafkaWriter is the slice of *kafka.Writer the sink uses.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes every event to a topic, keyed by recipient, so
// other consumers (push gateways, analytics) can react to the same
// stream the websocket hub serves live. Publishing happens on a single
// background goroutine; PushToUser only enqueues and never waits on the
// broker. When the queue is full the event is dropped and logged.
type KafkaSink struct {
	writer kafkaWriter
	queue  chan kafka.Message
	stop   chan struct{}
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	log    *zap.SugaredLogger
}

func NewKafkaSink(brokers []string, topic string, log *zap.SugaredLogger) *KafkaSink {
	w := kafka.NewWriter(kafka.WriterConfig{Brokers: brokers, Topic: topic, Balancer: &kafka.LeastBytes{}})
	return newKafkaSink(w, log)
}

func newKafkaSink(w kafkaWriter, log *zap.SugaredLogger) *KafkaSink {
	ctx, cancel := context.WithCancel(context.Background())
	k := &KafkaSink{
		writer: w,
		queue:  make(chan kafka.Message, publishBuffer),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
	go k.run()
	return k
}

func (k *KafkaSink) PushToUser(userID string, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		k.log.Errorw("marshaling event failed", "type", ev.Type, "error", err)
		return
	}
	msg := kafka.Message{Key: []byte(userID), Value: b, Time: time.Now()}
	select {
	case <-k.stop:
	case k.queue <- msg:
	default:
		k.log.Warnw("dropping event, publish queue full", "user", userID, "type", ev.Type)
	}
}

func (k *KafkaSink) run() {
	defer close(k.done)
	for {
		select {
		case <-k.stop:
			return
		case msg := <-k.queue:
			ctx, cancel := context.WithTimeout(k.ctx, publishTimeout)
			if err := k.writer.WriteMessages(ctx, msg); err != nil {
				k.log.Errorw("publishing event failed", "user", string(msg.Key), "error", err)
			}
			cancel()
		}
	}
}

// Close stops the publisher, aborting an in-flight write, and closes the
// writer. Events still queued are dropped.
func (k *KafkaSink) Close() error {
	close(k.stop)
	k.cancel()
	<-k.done
	return k.writer.Close()
}
