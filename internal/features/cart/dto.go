package cart

import "github.com/shopspring/decimal"

// Requests

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gt=0"`
}

// Responses

type CartDTO struct {
	UserID int64           `json:"user_id"`
	Items  []*CartLine     `json:"items"`
	Total  decimal.Decimal `json:"total"`
}

func toCartDTO(c *Cart) *CartDTO {
	items := c.Lines
	if items == nil {
		items = []*CartLine{}
	}

	return &CartDTO{
		UserID: c.UserID,
		Items:  items,
		Total:  c.Total(),
	}
}
