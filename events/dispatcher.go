package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// EventName is the unique name of a domain event
type EventName string

// Event is anything the services announce, 0 .. n listeners may react
type Event interface {
	Name() EventName
}

// EventListener reacts to a single event name
type EventListener interface {
	ForEvent() EventName
	Handle(ctx context.Context, ev Event) error
}

// Dispatcher fans events out to their registered listeners, delivery is
// synchronous and in registration order
type Dispatcher struct {
	log       *zap.Logger
	listeners map[EventName][]EventListener
}

// NewDispatcher returns an empty dispatcher
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		log:       log,
		listeners: make(map[EventName][]EventListener),
	}
}

// Register adds listeners, registration is not synchronized and happens
// once during startup
func (d *Dispatcher) Register(listener ...EventListener) {
	for _, l := range listener {
		d.log.Debug("registering event listener", zap.String("event", string(l.ForEvent())))
		d.listeners[l.ForEvent()] = append(d.listeners[l.ForEvent()], l)
	}
}

// a listener must never take the request down with it, errors and
// panics end up in the log and the remaining listeners still run
func (d *Dispatcher) deliver(ctx context.Context, l EventListener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("recovered from panicing event listener",
				zap.Any("recoverer", r),
				zap.String("event", string(ev.Name())),
				zap.String("event_listener", fmt.Sprintf("%T", l)))
		}
	}()
	if err := l.Handle(ctx, ev); err != nil {
		d.log.Error("event listener returned error",
			zap.String("event_listener", fmt.Sprintf("%T", l)),
			zap.Error(err),
			zap.String("event", string(ev.Name())))
	}
}

// Dispatch hands the event to every listener registered for its name
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) {
	registered, ok := d.listeners[event.Name()]
	if !ok {
		d.log.Info("no event listener for event", zap.String("event", string(event.Name())))
		return
	}
	for _, l := range registered {
		d.deliver(ctx, l, event)
	}
}
