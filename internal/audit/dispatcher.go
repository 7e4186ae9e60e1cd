package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Event struct {
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
	At       time.Time
}

// Sink stores or forwards audit events.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to its sinks on a background goroutine so that
// audit never slows down or fails a request. A nil *Dispatcher drops events.
type Dispatcher struct {
	log   *zap.Logger
	sinks []Sink
	queue chan Event
	done  sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		sinks: sinks,
		queue: make(chan Event, 256),
	}

	d.done.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.done.Done()
	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Write(ctx, ev); err != nil {
				d.log.Warn("audit sink failed",
					zap.String("action", ev.Action),
					zap.Error(err),
				)
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.once.Do(func() { close(d.queue) })
	d.done.Wait()
}
