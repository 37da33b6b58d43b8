package pluton

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

var testEvent = NewEvent[int]("test:event")

func TestEventBusOrder(t *testing.T) {
	bus := NewEventBus()
	var got []int
	On(bus, testEvent, func(v int) { got = append(got, v*10+1) })
	On(bus, testEvent, func(v int) { got = append(got, v*10+2) })
	Emit(bus, testEvent, 4)

	if len(got) != 2 || got[0] != 41 || got[1] != 42 {
		t.Errorf("got %v, want [41 42]", got)
	}
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	off := On(bus, testEvent, func(int) { calls++ })
	Emit(bus, testEvent, 0)
	off()
	off()
	Emit(bus, testEvent, 0)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if n := bus.Len(testEvent.Name()); n != 0 {
		t.Errorf("Len = %d, want 0", n)
	}
}

func TestEventBusUnsubscribeDuringEmit(t *testing.T) {
	bus := NewEventBus()
	var second func()
	secondCalls := 0
	On(bus, testEvent, func(int) { second() })
	second = On(bus, testEvent, func(int) { secondCalls++ })

	Emit(bus, testEvent, 0)
	if secondCalls != 0 {
		t.Errorf("listener removed mid-emit ran %d times", secondCalls)
	}
}

func TestEventBusListenerPanic(t *testing.T) {
	SetLogger(log.New(io.Discard))
	defer SetLogger(nil)

	bus := NewEventBus()
	ran := false
	On(bus, testEvent, func(int) { panic("boom") })
	On(bus, testEvent, func(int) { ran = true })
	Emit(bus, testEvent, 0)

	if !ran {
		t.Error("listener after a panicking one did not run")
	}
}

func TestEventBusClear(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	On(bus, testEvent, func(int) { calls++ })
	On(bus, CommitEnd, func(struct{}) { calls++ })
	bus.Clear()
	Emit(bus, testEvent, 0)
	Emit(bus, CommitEnd, struct{}{})

	if calls != 0 {
		t.Errorf("calls after Clear = %d, want 0", calls)
	}
}
