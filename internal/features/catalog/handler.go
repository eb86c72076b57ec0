package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mkalio/shopcore-backend/internal/handlerutils"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
	"github.com/mkalio/shopcore-backend/internal/validate"
)

type servicer interface {
	createProduct(ctx context.Context, newProduct *CreateProductRequest) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID int64, update *UpdateProductRequest) (*ProductDTO, error)
	deleteProduct(ctx context.Context, productID int64) error
	getProduct(ctx context.Context, productID int64) (*ProductDTO, error)
	getAllProducts(ctx context.Context, category string) []*ProductDTO
}

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	service    servicer
	middleware middleware
}

func NewHandler(catalogService servicer, middleware middleware) *handler {
	return &handler{
		service:    catalogService,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllProductsHandler,
				"user",
			),
		),
	)

	router.Get(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getProductHandler,
				"user",
			),
		),
	)

	// admin routes
	router.Post(
		"/products",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.createProductHandler,
				"admin",
			),
		),
	)

	router.Put(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.updateProductHandler,
				"admin",
			),
		),
	)

	router.Delete(
		"/products/{productID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.deleteProductHandler,
				"admin",
			),
		),
	)
}

func (h *handler) createProductHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	var payload *CreateProductRequest
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

	product, err := h.service.createProduct(r.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductAlreadyExists):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductAlreadyExists.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusCreated,
		"product created",
		product,
	)
}

func (h *handler) updateProductHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	productID, err := handlerutils.ParseIDParam(r, "productID")
	if err != nil {
		return err
	}

	var payload *UpdateProductRequest
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

	product, err := h.service.UpdateProduct(r.Context(), productID, payload)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrProductHasReserved):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductHasReserved.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product updated",
		product,
	)
}

func (h *handler) deleteProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.ParseIDParam(r, "productID")
	if err != nil {
		return err
	}

	if err := h.service.deleteProduct(r.Context(), productID); err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		case errors.Is(err, servererrors.ErrProductHasReserved):
			return servererrors.New(
				http.StatusConflict,
				servererrors.ErrProductHasReserved.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product deleted",
		nil,
	)
}

func (h *handler) getProductHandler(w http.ResponseWriter, r *http.Request) error {
	productID, err := handlerutils.ParseIDParam(r, "productID")
	if err != nil {
		return err
	}

	product, err := h.service.getProduct(r.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrProductNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrProductNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"product found",
		product,
	)
}

func (h *handler) getAllProductsHandler(w http.ResponseWriter, r *http.Request) error {
	category := r.URL.Query().Get("category")

	products := h.service.getAllProducts(r.Context(), category)

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all products retrieved",
		GetAllProductsResponse{
			Products: products,
			Count:    len(products),
		},
	)
}
