package attendance

import (
	"context"
	"encoding/json"
	"log"

	"attendease/internal/kv"
	"attendease/internal/queue"
)

// RecordsKey is the durable-storage key holding the serialized collection.
const RecordsKey = "attendanceRecords"

// Sink receives a full snapshot of the collection after every mutation.
// Writes are fire-and-forget: failures are logged, never surfaced.
type Sink interface {
	Save(records []Record)
}

type discardSink struct{}

func (discardSink) Save([]Record) {}

// KVSink writes snapshots straight to durable storage.
type KVSink struct {
	KV kv.Store
}

func (s KVSink) Save(records []Record) {
	raw, err := json.Marshal(records)
	if err != nil {
		log.Printf("snapshot marshal failed: %v", err)
		return
	}
	if err := s.KV.Set(context.Background(), RecordsKey, string(raw)); err != nil {
		log.Printf("snapshot write failed: %v", err)
	}
}

// QueueSink hands snapshots to the queue so the persister goroutine does the
// durable write off the request path.
type QueueSink struct {
	Queue queue.Queue
}

func (s QueueSink) Save(records []Record) {
	raw, err := json.Marshal(records)
	if err != nil {
		log.Printf("snapshot marshal failed: %v", err)
		return
	}
	if err := s.Queue.Publish(context.Background(), queue.Message{Type: queue.TypeSnapshot, Body: raw}); err != nil {
		log.Printf("snapshot publish failed: %v", err)
	}
}

// RunPersister drains snapshot messages into durable storage until the
// context is cancelled. Later snapshots supersede earlier ones, so a lost
// write is repaired by the next mutation.
func RunPersister(ctx context.Context, q queue.Queue, store kv.Store) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			if msg.Type != queue.TypeSnapshot {
				continue
			}
			if err := store.Set(ctx, RecordsKey, string(msg.Body)); err != nil {
				log.Printf("snapshot write failed: %v", err)
			}
		}
	}()
	return nil
}

// LoadRecords reads the persisted collection. ok is false when durable
// storage has no prior state and the caller should fall back to seed data.
func LoadRecords(ctx context.Context, store kv.Store) ([]Record, bool, error) {
	raw, ok, err := store.Get(ctx, RecordsKey)
	if err != nil || !ok {
		return nil, false, err
	}
	var records []Record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}
