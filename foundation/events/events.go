// Package events allows for the registering and receiving of the ledger's
// audit records: transfers, rebases, and observer changes.
package events

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Set of record kinds published by the ledger.
const (
	KindTransfer = "transfer"
	KindRebase   = "rebase"
	KindObserver = "observer"
)

// Record is the envelope for a single audit record.
type Record struct {
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive the ledger's audit records.
type Events struct {
	m  map[string]chan []byte
	mu sync.RWMutex
}

// New constructs an events for registering and receiving records.
func New() *Events {
	return &Events{
		m: make(map[string]chan []byte),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive records marshaled as JSON.
func (evt *Events) Acquire(id string) chan []byte {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	// A record is dropped if the receiver is not ready, so this buffer
	// gives slow websocket writers time to catch up.
	const recordBuffer = 100

	evt.m[id] = make(chan []byte, recordBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Publish marshals a record and signals it to every registered channel.
// Publish will not block waiting for a receiver on any given channel.
func (evt *Events) Publish(kind string, data any) {
	record, err := json.Marshal(Record{
		Kind: kind,
		At:   time.Now().UTC(),
		Data: data,
	})
	if err != nil {
		return
	}

	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- record:
		default:
		}
	}
}
