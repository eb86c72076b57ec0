package event

const StockDepletedEventName EventName = "stock.depleted"

// StockDepletedEvent is published when a committed checkout leaves a
// product at or below its restock threshold.
type StockDepletedEvent struct {
	ProductID int64
	Available int64
	Threshold int64
}

func (e *StockDepletedEvent) GetEventName() EventName {
	return StockDepletedEventName
}
