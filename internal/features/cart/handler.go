package cart

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
	addItem(ctx context.Context, userID, productID, quantity int64) (*CartDTO, error)
	removeItem(ctx context.Context, userID, productID int64) (*CartDTO, error)
	getCart(ctx context.Context, userID int64) *CartDTO
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(cartService servicer, middleware middleware) *handler {
	return &handler{
		service:    cartService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/cart/{userID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getCartHandler,
				"user",
			),
		),
	)

	router.Post(
		"/cart/{userID}/items",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.addItemHandler,
				"user",
			),
		),
	)

	router.Delete(
		"/cart/{userID}/items/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.removeItemHandler,
				"user",
			),
		),
	)
}

// requireCartOwner enforces that non-admin callers only reach their own
// cart.
func requireCartOwner(r *http.Request) (int64, error) {
	userID, err := handlerutils.ParseIDParam(r, "userID")
	if err != nil {
		return 0, err
	}

	identity := middlewares.GetIdentityFromContext(r.Context())
	if !identity.Owns(userID) {
		return 0, servererrors.New(
			http.StatusForbidden,
			servererrors.ErrForbidden.Error(),
			nil,
		)
	}

	return userID, nil
}

func (h *handler) getCartHandler(w http.ResponseWriter, r *http.Request) error {
	userID, err := requireCartOwner(r)
	if err != nil {
		return err
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"cart retrieved",
		h.service.getCart(r.Context(), userID),
	)
}

func (h *handler) addItemHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	userID, err := requireCartOwner(r)
	if err != nil {
		return err
	}

	var payload *AddItemRequest
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

	cart, err := h.service.addItem(r.Context(), userID, payload.ProductID, payload.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInsufficientStock):
			return servererrors.New(
				http.StatusBadRequest,
				servererrors.ErrInsufficientStock.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrInvalidQuantity):
			return servererrors.New(
				http.StatusUnprocessableEntity,
				servererrors.ErrInvalidQuantity.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item added to cart",
		cart,
	)
}

func (h *handler) removeItemHandler(w http.ResponseWriter, r *http.Request) error {
	userID, err := requireCartOwner(r)
	if err != nil {
		return err
	}

	productID, err := handlerutils.ParseIDParam(r, "productID")
	if err != nil {
		return err
	}

	cart, err := h.service.removeItem(r.Context(), userID, productID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrCartItemNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrCartItemNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"item removed from cart",
		cart,
	)
}
