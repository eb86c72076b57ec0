package order

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mkalio/shopcore-backend/internal/handlerutils"
	"github.com/mkalio/shopcore-backend/internal/middlewares"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
	"github.com/mkalio/shopcore-backend/internal/validate"
)

type servicer interface {
	createOrder(ctx context.Context, userID int64, promotionID *int64) (*Order, error)
	getOrder(ctx context.Context, orderID int64) (*Order, error)
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(orderService servicer, middleware middleware) *handler {
	return &handler{
		service:    orderService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/orders",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createOrderHandler,
				"user",
			),
		),
	)

	router.Get(
		"/orders/{orderID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getOrderHandler,
				"user",
			),
		),
	)
}

func (h *handler) createOrderHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	var payload *CreateOrderRequest
	if err := handlerutils.ParseJSON(r, &payload); err != nil {
		return servererrors.New(
			http.StatusBadRequest,
			servererrors.ErrInvalidRequestPayload.Error(),
			nil,
		)
	}

	if fieldErrors := validate.StructFields(payload); fieldErrors != nil {
		return servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrValidationFailed.Error(),
			fieldErrors,
		)
	}

	identity := middlewares.GetIdentityFromContext(r.Context())
	if !identity.Owns(payload.UserID) {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrForbidden.Error(),
			nil,
		)
	}

	order, err := h.service.createOrder(r.Context(), payload.UserID, payload.PromotionID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrEmptyCart):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrEmptyCart.Error(),
				nil,
			)

		default:
			// including invariant violations: those are bugs, reported
			// as internal errors and logged by the error middleware
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"order created",
		order,
	)
}

func (h *handler) getOrderHandler(w http.ResponseWriter, r *http.Request) error {
	orderID, err := handlerutils.ParseIDParam(r, "orderID")
	if err != nil {
		return err
	}

	order, err := h.service.getOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrOrderNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrOrderNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	identity := middlewares.GetIdentityFromContext(r.Context())
	if !identity.Owns(order.UserID) {
		return servererrors.New(
			http.StatusForbidden,
			servererrors.ErrForbidden.Error(),
			nil,
		)
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"order found",
		order,
	)
}
