package event

import "github.com/shopspring/decimal"

const OrderCreatedEventName EventName = "order.created"

type OrderCreatedEvent struct {
	OrderID int64
	UserID  int64
	Total   decimal.Decimal
}

func (e *OrderCreatedEvent) GetEventName() EventName {
	return OrderCreatedEventName
}
