// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package event

import (
	"slices"

	"github.com/gviegas/ares/internal/bitvec"
)

// Subscription identifies a subscriber of a
// Dispatcher.
// The zero value identifies no subscriber.
type Subscription struct {
	slot int
	gen  uint64
}

type subscriber struct {
	filter Type
	fn     func(Event)
	gen    uint64
}

// Dispatcher delivers events to subscribers.
// The zero value is ready for use.
// It is not safe for concurrent use.
type Dispatcher struct {
	slots bitvec.V[uint32]
	subs  []subscriber
	order []int
	gen   uint64
}

// Subscribe registers fn to be called with every
// dispatched event whose type is in filter.
func (d *Dispatcher) Subscribe(filter Type, fn func(Event)) Subscription {
	if fn == nil {
		panic("event.Dispatcher.Subscribe: nil func")
	}
	slot := d.slots.Alloc()
	if n := d.slots.Len(); n > len(d.subs) {
		d.subs = append(d.subs, make([]subscriber, n-len(d.subs))...)
	}
	d.gen++
	d.subs[slot] = subscriber{filter, fn, d.gen}
	d.order = append(d.order, slot)
	return Subscription{slot, d.gen}
}

func (d *Dispatcher) live(s Subscription) bool {
	return s.gen != 0 && s.slot < len(d.subs) && d.subs[s.slot].gen == s.gen
}

// Unsubscribe removes the subscriber identified by s.
// Unsubscribing more than once has no effect.
func (d *Dispatcher) Unsubscribe(s Subscription) {
	if !d.live(s) {
		return
	}
	d.subs[s.slot] = subscriber{}
	d.slots.Unset(s.slot)
	if i := slices.Index(d.order, s.slot); i >= 0 {
		d.order = slices.Delete(d.order, i, i+1)
	}
}

// Len returns the number of subscribers.
func (d *Dispatcher) Len() int { return len(d.order) }

// Dispatch calls every subscriber whose filter matches
// e, in subscription order.
// Subscribers removed by a callback during Dispatch
// are not called; subscribers added are called from
// the next Dispatch on.
func (d *Dispatcher) Dispatch(e Event) {
	t := e.Type()
	subs := make([]Subscription, len(d.order))
	for i, slot := range d.order {
		subs[i] = Subscription{slot, d.subs[slot].gen}
	}
	for _, s := range subs {
		if !d.live(s) {
			continue
		}
		if x := d.subs[s.slot]; t.Matches(x.filter) {
			x.fn(e)
		}
	}
}

// Source is the interface of an event producer, such
// as a window.
type Source interface {
	// IsOpen reports whether the source can produce
	// further events.
	IsOpen() bool

	// Poll collects the events that the platform has
	// produced since the last call.
	Poll()

	// Next removes and returns the next collected
	// event. It returns false when there are none.
	Next() (Event, bool)
}

// Process polls src and dispatches all of its
// pending events.
// It returns false if src is closed.
func (d *Dispatcher) Process(src Source) bool {
	if !src.IsOpen() {
		return false
	}
	src.Poll()
	for {
		e, ok := src.Next()
		if !ok {
			return true
		}
		d.Dispatch(e)
	}
}

// Queue is a FIFO of events that implements the
// Next method of Source.
// The zero value is an empty queue.
type Queue struct {
	evs []Event
}

// Push appends e to q.
func (q *Queue) Push(e Event) { q.evs = append(q.evs, e) }

// Next removes and returns the first event of q.
func (q *Queue) Next() (Event, bool) {
	if len(q.evs) == 0 {
		return nil, false
	}
	e := q.evs[0]
	q.evs[0] = nil
	q.evs = q.evs[1:]
	return e, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.evs) }
