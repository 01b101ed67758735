package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stallWriter blocks every write until release is closed.
type stallWriter struct {
	release chan struct{}

	mu      sync.Mutex
	written []kafka.Message
}

func newStallWriter() *stallWriter {
	return &stallWriter{release: make(chan struct{})}
}

func (w *stallWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	select {
	case <-w.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	w.mu.Lock()
	w.written = append(w.written, msgs...)
	w.mu.Unlock()
	return nil
}

func (w *stallWriter) Close() error { return nil }

func (w *stallWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.written)
}

func TestKafkaSinkPushNeverWaitsOnBroker(t *testing.T) {
	w := newStallWriter()
	k := newKafkaSink(w, zap.NewNop().Sugar())
	defer k.Close()

	start := time.Now()
	for i := 0; i < publishBuffer+10; i++ {
		k.PushToUser("tenant-1", Event{Type: EventNewSwipe})
	}
	assert.Less(t, time.Since(start), time.Second,
		"pushing must not wait on a stalled broker, even past the queue size")
}

func TestKafkaSinkDeliversQueuedEvents(t *testing.T) {
	w := newStallWriter()
	k := newKafkaSink(w, zap.NewNop().Sugar())
	defer k.Close()

	k.PushToUser("tenant-1", Event{Type: EventNewMessage, Content: "hi"})
	close(w.release)

	require.Eventually(t, func() bool { return w.count() == 1 }, time.Second, 10*time.Millisecond)
	w.mu.Lock()
	defer w.mu.Unlock()
	assert.Equal(t, "tenant-1", string(w.written[0].Key))
}

func TestKafkaSinkCloseStopsPublisher(t *testing.T) {
	w := newStallWriter()
	close(w.release)
	k := newKafkaSink(w, zap.NewNop().Sugar())

	require.NoError(t, k.Close())
	// pushing after close must neither block nor panic
	k.PushToUser("tenant-1", Event{Type: EventNewSwipe})
}
