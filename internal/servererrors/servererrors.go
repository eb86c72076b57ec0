package servererrors

import "errors"

// Sentinel errors returned by services and stores. Handlers match on these
// with [errors.Is] and map them to transport status codes.
var (
	ErrInvalidRequestPayload = errors.New("invalid request payload")
	ErrValidationFailed      = errors.New("validation failed")
	ErrURLParam              = errors.New("invalid url parameter")

	ErrUnauthorized       = errors.New("authentication required")
	ErrNoBearerToken      = errors.New("missing bearer token")
	ErrForbidden          = errors.New("access to this resource is forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product already exists")
	ErrProductHasReserved   = errors.New("product has reserved stock")
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrOrderNotFound        = errors.New("order not found")

	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")

	// ErrInvariantViolation marks internal logic errors, e.g. a commit that
	// exceeds the reserved count. It is never reachable through a valid
	// external call sequence.
	ErrInvariantViolation = errors.New("internal invariant violation")
)

type ServerError struct {
	StatusCode int
	message    string
	Errors     any // optional field-level details, e.g. validation errors
}

func New(statusCode int, message string, errs any) *ServerError {
	return &ServerError{
		StatusCode: statusCode,
		message:    message,
		Errors:     errs,
	}
}

func (e *ServerError) Error() string {
	return e.message
}
