package host

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/therealmysteryman/udi-milight-pg3/common"
)

const queueSize = 64

// ErrQueueFull is returned by TryPost when Run is not keeping up
var ErrQueueFull = errors.New(`Event queue full`)

// Runtime delivers host events to the subscribed handlers.  Posted events and
// poll ticks are handled one at a time by Run, so handlers never run
// concurrently with each other.
type Runtime struct {
	shortPoll time.Duration
	longPoll  time.Duration
	handlers  map[EventType][]Handler
	queue     chan Event
	done      chan struct{}
	running   bool
	log       common.Logger
	sync.RWMutex
}

// NewRuntime returns a Runtime polling on the given intervals, zero intervals
// use the defaults
func NewRuntime(shortPoll, longPoll time.Duration, logger common.Logger) *Runtime {
	if shortPoll <= 0 {
		shortPoll = common.DefaultShortPoll
	}
	if longPoll <= 0 {
		longPoll = common.DefaultLongPoll
	}
	return &Runtime{
		shortPoll: shortPoll,
		longPoll:  longPoll,
		handlers:  make(map[EventType][]Handler),
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
		log:       common.LoggerOrStub(logger),
	}
}

// Subscribe registers h for events of type t, handlers run in registration
// order
func (r *Runtime) Subscribe(t EventType, h Handler) {
	r.Lock()
	r.handlers[t] = append(r.handlers[t], h)
	r.Unlock()
}

// Dispatch synchronously delivers ev to every handler subscribed to its type
func (r *Runtime) Dispatch(ev Event) error {
	r.RLock()
	handlers := make([]Handler, len(r.handlers[ev.Type]))
	copy(handlers, r.handlers[ev.Type])
	r.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ev); err != nil {
			r.log.Debugf("Handler for %s event failed: %v", ev.Type, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Post queues ev for delivery by Run
func (r *Runtime) Post(ev Event) error {
	select {
	case <-r.done:
		return common.ErrClosed
	default:
	}
	select {
	case r.queue <- ev:
		return nil
	case <-r.done:
		return common.ErrClosed
	}
}

// TryPost queues ev like Post, but returns ErrQueueFull instead of waiting
// for room in the queue
func (r *Runtime) TryPost(ev Event) error {
	select {
	case <-r.done:
		return common.ErrClosed
	default:
	}
	select {
	case r.queue <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers EventStart, then posted events and polls until ctx is done,
// then delivers EventStop.  Run may only be called once.
func (r *Runtime) Run(ctx context.Context) error {
	r.Lock()
	if r.running {
		r.Unlock()
		return common.ErrDuplicate
	}
	r.running = true
	r.Unlock()

	short := time.NewTicker(r.shortPoll)
	defer short.Stop()
	long := time.NewTicker(r.longPoll)
	defer long.Stop()

	_ = r.Dispatch(Event{Type: EventStart})
	for {
		select {
		case <-ctx.Done():
			close(r.done)
			r.log.Debugf("Runtime stopping: %v", ctx.Err())
			return r.Dispatch(Event{Type: EventStop})
		case ev := <-r.queue:
			_ = r.Dispatch(ev)
		case <-short.C:
			_ = r.Dispatch(Event{Type: EventPoll, Poll: ShortPoll})
		case <-long.C:
			_ = r.Dispatch(Event{Type: EventPoll, Poll: LongPoll})
		}
	}
}
