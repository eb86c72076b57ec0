package user

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
	login(ctx context.Context, username, password string) (*LoginResponse, error)
}

type handler struct {
	service servicer
}

func NewHandler(userService servicer) *handler {
	return &handler{
		service: userService,
	}
}

// RegisterRoutes mounts the login endpoint. It is the only unguarded
// route in the API.
func (h *handler) RegisterRoutes(router *chi.Mux) {
	router.Post(
		"/auth/login",
		handlerutils.MakeHandler(h.loginHandler),
	)
}

func (h *handler) loginHandler(w http.ResponseWriter, r *http.Request) error {
	defer r.Body.Close()

	var payload *LoginRequest
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

	loginResponse, err := h.service.login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, servererrors.ErrInvalidCredentials):
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrInvalidCredentials.Error(),
				nil,
			)

		default:
			return err
		}
	}

	return handlerutils.WriteSuccessJSON(
		w,
		http.StatusOK,
		"login successful",
		loginResponse,
	)
}
