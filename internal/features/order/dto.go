package order

// Requests

type CreateOrderRequest struct {
	UserID      int64  `json:"user_id" validate:"required,gt=0"`
	PromotionID *int64 `json:"promotion_id" validate:"omitempty,gt=0"`
}
