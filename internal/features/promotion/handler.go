package promotion

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mkalio/shopcore-backend/internal/handlerutils"
	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

type middleware interface {
	AuthWithContext(h handlerutils.APIHandler, requiredRole string) handlerutils.APIHandler
}

type handler struct {
	store      *Store
	middleware middleware
}

func NewHandler(promotionStore *Store, middleware middleware) *handler {
	return &handler{
		store:      promotionStore,
		middleware: middleware,
	}
}

func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Get(
		"/promotions",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getAllPromotionsHandler,
				"user",
			),
		),
	)

	router.Get(
		"/promotions/{promotionID}",
		handlerutils.MakeHandler(
			h.middleware.AuthWithContext(
				h.getPromotionHandler,
				"user",
			),
		),
	)
}

func (h *handler) getAllPromotionsHandler(w http.ResponseWriter, r *http.Request) error {
	promotions := h.store.FindAll()

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"all promotions retrieved",
		map[string]any{
			"promotions": promotions,
			"count":      len(promotions),
		},
	)
}

func (h *handler) getPromotionHandler(w http.ResponseWriter, r *http.Request) error {
	promotionID, err := handlerutils.ParseIDParam(r, "promotionID")
	if err != nil {
		return err
	}

	promotion, err := h.store.FindByID(promotionID)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrPromotionNotFound):
			return servererrors.New(
				http.StatusNotFound,
				servererrors.ErrPromotionNotFound.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"promotion found",
		promotion,
	)
}
