package eventengine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkalio/shopcore-backend/internal/eventengine/event"
)

type Publisher interface {
	Publish(event *event.Event) error
}

type Subscriber interface {
	Subscribe(toEventName event.EventName, subscriber *event.Subscriber) error
}

type RegisterPublisher interface {
	Publisher
	RegisterEvents(eventNames ...event.EventName)
}

type SubscribeRegisterPublisher interface {
	Subscriber
	RegisterPublisher
}

type subscribers struct {
	names      []event.SubscriberName
	addressChs []chan<- any
}

type EventEngineConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
}

// eventEngine is a single-goroutine fan-out broker. Registration and
// subscription happen during server wiring, before the first Publish, so
// the events map is read-only once traffic starts.
type eventEngine struct {
	*EventEngineConfig

	mu            sync.Mutex // guards events during wiring
	eventEngineCh chan *event.Event
	events        map[event.EventName]*subscribers
}

func NewEventEngine(cfg *EventEngineConfig) SubscribeRegisterPublisher {
	if cfg == nil || cfg.DoneCh == nil || cfg.InternalSrvWG == nil {
		panic("eventengine: config, DoneCh and InternalSrvWG are required")
	}

	e := &eventEngine{
		EventEngineConfig: cfg,
		events:            make(map[event.EventName]*subscribers, 20),
		eventEngineCh:     make(chan *event.Event, 20),
	}

	e.InternalSrvWG.Add(1)
	go e.listen()

	return e
}

func (e *eventEngine) listen() {
	defer e.InternalSrvWG.Done()

	slog.Info("event engine is listening")

	for {
		select {
		case <-e.DoneCh:
			close(e.eventEngineCh)

			// drain what publishers managed to enqueue before shutdown
			for ev := range e.eventEngineCh {
				e.broadcast(ev)
			}

			e.closeSubscriberChannels()
			slog.Info("event engine has shut down")
			return

		case ev, isOpened := <-e.eventEngineCh:
			if !isOpened {
				return
			}

			e.broadcast(ev)
		}
	}
}

func (e *eventEngine) broadcast(ev *event.Event) {
	subs, exists := e.events[ev.Name]
	if !exists {
		slog.Warn(
			"event has no registration, dropping",
			"event", string(ev.Name),
		)
		return
	}

	for i, addressCh := range subs.addressChs {
		if addressCh == nil {
			slog.Warn(
				"subscriber addressCh is nil, check its event handler",
				"subscriber", string(subs.names[i]),
			)
			continue
		}

		addressCh <- ev.Payload
	}
}

// RegisterEvents adds the events a publisher can publish to the engine.
//
// IMPORTANT: Register an event before you try to publish or subscribe to it.
func (e *eventEngine) RegisterEvents(eventNames ...event.EventName) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, eventName := range eventNames {
		if _, exists := e.events[eventName]; exists {
			continue
		}

		e.events[eventName] = &subscribers{}
	}
}

func (e *eventEngine) Subscribe(toEventName event.EventName, newSubscriber *event.Subscriber) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	subs, ok := e.events[toEventName]
	if !ok {
		return fmt.Errorf(
			"event '%v' not found: the publishing service must call RegisterEvents before anyone subscribes",
			toEventName,
		)
	}

	subs.names = append(subs.names, newSubscriber.Name)
	subs.addressChs = append(subs.addressChs, newSubscriber.AddressCh)

	return nil
}

func (e *eventEngine) Publish(ev *event.Event) error {
	if _, exists := e.events[ev.Name]; !exists {
		return fmt.Errorf(
			"event '%v' not found: the publishing service must call RegisterEvents first",
			ev.Name,
		)
	}

	e.eventEngineCh <- ev

	return nil
}

func (e *eventEngine) closeSubscriberChannels() {
	closed := make(map[chan<- any]bool)

	for _, subs := range e.events {
		for _, addressCh := range subs.addressChs {
			if addressCh == nil || closed[addressCh] {
				continue
			}

			close(addressCh)
			closed[addressCh] = true
		}
	}
}
