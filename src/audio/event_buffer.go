package audio

import (
	"runtime"
	"sync/atomic"
	"time"
)

type eventKind uint8

const (
	eventNoteOn eventKind = iota
	eventRetune
	eventGateOff
)

// event is a note transition sent from the control side to the audio thread.
type event struct {
	kind     eventKind
	note     int
	velocity int
}

const (
	eventBufferSize  = 256
	defaultEventWait = 20 * time.Millisecond
)

// eventBuffer is a lock-free single-producer single-consumer queue. A full
// queue makes the producer wait up to maxWait for the consumer, after which
// the event is dropped. The consumer never blocks.
type eventBuffer struct {
	events      []event
	read, write atomic.Uint32
	maxWait     time.Duration
	waits       atomic.Uint64
	drops       atomic.Uint64
}

func newEventBuffer(size int) *eventBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer{events: make([]event, size), maxWait: defaultEventWait}
}

// push reports whether ev was queued. The queue is only drained while an
// output stream is running.
func (b *eventBuffer) push(ev event) bool {
	if b.full() {
		b.waits.Add(1)
		deadline := time.Now().Add(b.maxWait)
		for b.full() {
			if time.Now().After(deadline) {
				b.drops.Add(1)
				return false
			}
			runtime.Gosched()
		}
	}
	write := b.write.Load()
	b.events[write%uint32(len(b.events))] = ev
	b.write.Store(write + 1)
	return true
}

func (b *eventBuffer) full() bool {
	return b.write.Load()-b.read.Load() == uint32(len(b.events))
}

// drain hands every queued event to f in order.
func (b *eventBuffer) drain(f func(event)) {
	read := b.read.Load()
	write := b.write.Load()
	for read != write {
		f(b.events[read%uint32(len(b.events))])
		read++
	}
	b.read.Store(read)
}
