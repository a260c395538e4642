package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/clubfeed/models"
	"github.com/use-agent/clubfeed/service"
)

// Clubs returns a handler for GET /api/v1/clubs.
//
// The body is a bare JSON array of clubs; an empty directory is [].
// A fresh snapshot is served directly; a stale one is refreshed first,
// which can take as long as one full page render.
func Clubs(svc *service.Clubs) gin.HandlerFunc {
	return func(c *gin.Context) {
		clubs, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, clubs)
	}
}

// respondError maps a ScrapeError to the correct HTTP status code and writes
// a structured JSON error response.
func respondError(c *gin.Context, err error) {
	scrapeErr := models.AsScrapeError(err)
	c.JSON(mapErrorToStatus(scrapeErr), models.ErrorResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.ScrapeError) int {
	switch e.Code {
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNavigation:
		return http.StatusBadGateway // 502
	case models.ErrCodeBrowserCrash:
		return http.StatusServiceUnavailable // 503
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
