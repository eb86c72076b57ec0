package handlerutils

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/mkalio/shopcore-backend/internal/servererrors"
)

// ParseIDParam reads a positive int64 identifier from a chi URL
// parameter. Every identifier in this API is a positive integer.
func ParseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, servererrors.New(
			http.StatusUnprocessableEntity,
			servererrors.ErrURLParam.Error(),
			nil,
		)
	}

	return id, nil
}
