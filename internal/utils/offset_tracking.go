package utils

import (
	"sync"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// OffsetTracker remembers the highest-offset message per partition of the
// records currently buffered, so a consumer can commit exactly the work a
// flushed batch covered.
type OffsetTracker struct {
	mu     sync.Mutex
	latest map[int32]*kafka.Message
}

func NewOffsetTracker() *OffsetTracker {
	return &OffsetTracker{latest: make(map[int32]*kafka.Message)}
}

func (t *OffsetTracker) Track(msg *kafka.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	partition := msg.TopicPartition.Partition
	if prev, ok := t.latest[partition]; ok && prev.TopicPartition.Offset >= msg.TopicPartition.Offset {
		return
	}
	t.latest[partition] = msg
}

// Flush returns the tracked messages and resets the tracker.
func (t *OffsetTracker) Flush() []*kafka.Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	msgs := make([]*kafka.Message, 0, len(t.latest))
	for _, msg := range t.latest {
		msgs = append(msgs, msg)
	}
	t.latest = make(map[int32]*kafka.Message)
	return msgs
}
