package queue

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryPublishConsume(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := NewInMemory(4)
	if err := q.Publish(ctx, Message{Type: TypeSnapshot, Body: []byte(`[{"id":1}]`)}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	messages, err := q.Consume(ctx)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}

	select {
	case msg := <-messages:
		if msg.Type != TypeSnapshot {
			t.Errorf("type = %q", msg.Type)
		}
		if string(msg.Body) != `[{"id":1}]` {
			t.Errorf("body = %q", msg.Body)
		}
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestFraming(t *testing.T) {
	// Bodies may contain the separator; only the first one delimits.
	msg := Message{Type: TypeSnapshot, Body: []byte("a|b|c")}
	got := deserialize(serialize(msg))
	if got.Type != msg.Type || string(got.Body) != string(msg.Body) {
		t.Fatalf("round trip = %+v", got)
	}

	bare := deserialize("no-separator")
	if bare.Type != "" || string(bare.Body) != "no-separator" {
		t.Fatalf("bare = %+v", bare)
	}
}
