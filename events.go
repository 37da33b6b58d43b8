package pluton

import "fmt"

// Event names a typed notification carried by an EventBus.
type Event[T any] struct {
	name string
}

// NewEvent declares an event whose payload is T.
func NewEvent[T any](name string) Event[T] {
	return Event[T]{name: name}
}

// Name returns the event's name.
func (e Event[T]) Name() string {
	return e.name
}

// Built-in events.
var (
	// CameraChanged fires whenever the camera's current or target state moves.
	CameraChanged = NewEvent[CameraState]("camera:changed")
	// CommitStart fires before the engine runs draw callbacks.
	CommitStart = NewEvent[struct{}]("engine:commit-start")
	// CommitEnd fires after every draw callback of a commit has returned.
	CommitEnd = NewEvent[struct{}]("engine:commit-end")
)

type listener struct {
	id      uint32
	fn      func(any)
	removed bool
}

// EventBus is a synchronous publish/subscribe channel. A panicking listener
// is logged and skipped; the remaining listeners still run.
type EventBus struct {
	listeners map[string][]*listener
	nextID    uint32
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[string][]*listener)}
}

// On registers fn for ev and returns a function that removes it.
func On[T any](b *EventBus, ev Event[T], fn func(T)) (off func()) {
	b.nextID++
	l := &listener{
		id: b.nextID,
		fn: func(data any) { fn(data.(T)) },
	}
	b.listeners[ev.name] = append(b.listeners[ev.name], l)
	return func() { b.remove(ev.name, l.id) }
}

// Emit delivers data to every listener of ev in registration order.
func Emit[T any](b *EventBus, ev Event[T], data T) {
	ls := b.listeners[ev.name]
	if len(ls) == 0 {
		return
	}
	snapshot := make([]*listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if l.removed {
			continue
		}
		b.dispatch(ev.name, l, data)
	}
}

func (b *EventBus) dispatch(name string, l *listener, data any) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			logger.Error("event listener failed", "event", name, "listener", l.id, "err", err)
		}
	}()
	l.fn(data)
}

func (b *EventBus) remove(name string, id uint32) {
	ls := b.listeners[name]
	for i := range ls {
		if ls[i].id == id {
			ls[i].removed = true
			copy(ls[i:], ls[i+1:])
			ls[len(ls)-1] = nil
			b.listeners[name] = ls[:len(ls)-1]
			return
		}
	}
}

// Len returns the number of listeners registered under name.
func (b *EventBus) Len(name string) int {
	return len(b.listeners[name])
}

// Clear drops every listener.
func (b *EventBus) Clear() {
	for _, ls := range b.listeners {
		for _, l := range ls {
			l.removed = true
		}
	}
	b.listeners = make(map[string][]*listener)
}
