package catalog

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mkalio/shopcore-backend/internal/eventengine"
	"github.com/mkalio/shopcore-backend/internal/eventengine/event"
	"github.com/mkalio/shopcore-backend/internal/metrics"
)

// subscriberName is the name of this event handler.
const subscriberName event.SubscriberName = "handler_event.catalog"

type HandlerEventsConfig struct {
	DoneCh        <-chan struct{}
	InternalSrvWG *sync.WaitGroup
	EventEngine   eventengine.SubscribeRegisterPublisher
	Metrics       *metrics.ServerMetrics // optional
	AddressChSize uint16
}

// handlerEvents watches checkout commits for products running low and
// raises restock alerts. It runs on its own goroutine until the server's
// done channel closes.
type handlerEvents struct {
	*HandlerEventsConfig
	addressCh chan any
}

func NewHandlerEvents(cfg *HandlerEventsConfig) *handlerEvents {
	if cfg.AddressChSize == 0 {
		cfg.AddressChSize = 10
	}

	if cfg.DoneCh == nil || cfg.InternalSrvWG == nil || cfg.EventEngine == nil {
		panic("catalog handlerEvents: DoneCh, InternalSrvWG and EventEngine are required")
	}

	he := &handlerEvents{
		HandlerEventsConfig: cfg,
		addressCh:           make(chan any, cfg.AddressChSize),
	}

	he.addSubscriptions()

	he.InternalSrvWG.Add(1)
	go he.listen()

	return he
}

func (h *handlerEvents) listen() {
	defer h.InternalSrvWG.Done()

	slog.Info("catalog event handler is listening", "subscriber", string(subscriberName))

	// a for-select is not used here because the event engine closes the
	// addressCh on shutdown
	for newEvent := range h.addressCh {
		switch ne := newEvent.(type) {
		case *event.StockDepletedEvent:
			h.stockDepletedEventHandler(ne)

		default:
			slog.Warn(
				"received unknown event type",
				"subscriber", string(subscriberName),
				"type", fmt.Sprintf("%T", ne),
			)
		}
	}

	slog.Info("catalog event handler has shut down", "subscriber", string(subscriberName))
}

func (h *handlerEvents) stockDepletedEventHandler(newEvent *event.StockDepletedEvent) {
	slog.Warn(
		"product stock at or below restock threshold",
		"product_id", newEvent.ProductID,
		"available", newEvent.Available,
		"threshold", newEvent.Threshold,
	)

	if h.Metrics != nil {
		h.Metrics.RestockAlerts.Inc()
	}
}

// addSubscriptions registers and subscribes to every event this handler
// listens for. Registration is idempotent, so it does not matter whether
// the publishing service wired up first.
func (h *handlerEvents) addSubscriptions() {
	subscribeToEventNames := [1]event.EventName{
		event.StockDepletedEventName,
	}

	for _, eventName := range subscribeToEventNames {
		h.EventEngine.RegisterEvents(eventName)

		err := h.EventEngine.Subscribe(
			eventName,
			&event.Subscriber{
				Name:      subscriberName,
				AddressCh: h.addressCh,
			},
		)
		if err != nil {
			panic(err)
		}
	}
}
