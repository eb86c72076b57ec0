package handlerutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// APIHandler is an http handler that returns an error instead of writing
// error responses itself, so error handling lives in one place.
type APIHandler func(w http.ResponseWriter, r *http.Request) error

type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// MakeHandler wraps an [APIHandler] into a [http.HandlerFunc] with
// centralized error logging and status mapping. Anything that is not a
// [servererrors.ServerError] is treated as an internal error and hidden
// from the client.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			slog.Warn(
				"request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", serverError.StatusCode,
				"error", serverError.Error(),
			)

			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		slog.Error(
			"request failed with internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)

		WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}

func ParseJSON(r *http.Request, payload any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}

	return json.NewDecoder(r.Body).Decode(payload)
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(v)
}

func WriteSuccessJSON(w http.ResponseWriter, statusCode int, message string, data any) error {
	return WriteJSON(
		w,
		statusCode,
		successResponse{
			Status:  "success",
			Message: message,
			Data:    data,
		},
	)
}

func WriteErrorJSON(w http.ResponseWriter, statusCode int, message string, errs any) {
	// the error from encoding an error response is not actionable
	_ = WriteJSON(
		w,
		statusCode,
		errorResponse{
			Status:  "error",
			Message: message,
			Errors:  errs,
		},
	)
}
