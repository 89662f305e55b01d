package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/cinebase/cinebase/internal/services"
	"github.com/cinebase/cinebase/internal/tmdb"
	appErrors "github.com/cinebase/cinebase/pkg/errors"
	"github.com/cinebase/cinebase/pkg/response"
)

// respondServiceError translates service layer errors into API responses.
// Upstream provider failures are surfaced as a gateway error so callers can
// tell them apart from local faults.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case err == nil:
		response.Error(c, appErrors.ErrInternalServer)
	case errors.Is(err, services.ErrInvalidWindow),
		errors.Is(err, services.ErrInvalidKind),
		errors.Is(err, services.ErrEmptyQuery):
		response.Error(c, appErrors.NewBadRequest(err.Error()))
	case errors.Is(err, services.ErrItemNotFound):
		response.Error(c, appErrors.ErrNotFound)
	case tmdb.IsUpstreamError(err):
		response.Error(c, appErrors.ErrUpstreamUnavailable.WithInternal(err))
	default:
		response.Error(c, appErrors.Wrap(err, "request failed"))
	}
}
