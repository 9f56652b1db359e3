package client

import (
	"context"
	"fmt"
	"sync"
)

// fakeTransport is an in-memory Transport for protocol tests. Reads serve
// canned values, writes invoke an optional hook, and Notify injects
// notifications into subscriptions.
type fakeTransport struct {
	mu        sync.Mutex
	connected bool
	present   map[uint16]bool
	readData  map[uint16][]byte
	writes    map[uint16][][]byte
	subs      map[uint16]NotifyHandler
	onWrite   func(uuid uint16, data []byte) error
	onDrop    DisconnectHandler
}

var _ Transport = (*fakeTransport)(nil)

func newFakeTransport(chars ...uint16) *fakeTransport {
	t := &fakeTransport{
		present:  make(map[uint16]bool),
		readData: make(map[uint16][]byte),
		writes:   make(map[uint16][][]byte),
		subs:     make(map[uint16]NotifyHandler),
	}
	for _, c := range chars {
		t.present[c] = true
	}
	return t
}

func (t *fakeTransport) setRead(uuid uint16, data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.present[uuid] = true
	t.readData[uuid] = data
}

func (t *fakeTransport) notify(uuid uint16, data []byte) {
	t.mu.Lock()
	fn := t.subs[uuid]
	t.mu.Unlock()
	if fn != nil {
		fn(data)
	}
}

func (t *fakeTransport) writtenTo(uuid uint16) [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.writes[uuid]))
	copy(out, t.writes[uuid])
	return out
}

func (t *fakeTransport) drop() {
	t.mu.Lock()
	t.connected = false
	fn := t.onDrop
	t.mu.Unlock()
	if fn != nil {
		fn(ErrDisconnected)
	}
}

func (t *fakeTransport) Connect(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = true
	return nil
}

func (t *fakeTransport) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.connected = false
	return nil
}

func (t *fakeTransport) Connected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *fakeTransport) HasCharacteristic(uuid uint16) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.present[uuid]
}

func (t *fakeTransport) Read(ctx context.Context, uuid uint16) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.present[uuid] {
		return nil, fmt.Errorf("%w: %#04x", ErrCharacteristicNotFound, uuid)
	}
	return t.readData[uuid], nil
}

func (t *fakeTransport) Write(ctx context.Context, uuid uint16, data []byte) error {
	t.mu.Lock()
	if !t.present[uuid] {
		t.mu.Unlock()
		return fmt.Errorf("%w: %#04x", ErrCharacteristicNotFound, uuid)
	}
	t.writes[uuid] = append(t.writes[uuid], data)
	hook := t.onWrite
	t.mu.Unlock()

	if hook != nil {
		return hook(uuid, data)
	}
	return nil
}

func (t *fakeTransport) Subscribe(ctx context.Context, uuid uint16, fn NotifyHandler) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.present[uuid] {
		return fmt.Errorf("%w: %#04x", ErrCharacteristicNotFound, uuid)
	}
	t.subs[uuid] = fn
	return nil
}

func (t *fakeTransport) Unsubscribe(ctx context.Context, uuid uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, uuid)
	return nil
}

func (t *fakeTransport) SetDisconnectHandler(fn DisconnectHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDrop = fn
}

// eventRecorder collects events delivered to a session callback.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) callback(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *eventRecorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}
