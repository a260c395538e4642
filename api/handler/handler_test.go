package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/clubfeed/models"
	"github.com/use-agent/clubfeed/service"
)

type stubCache struct {
	clubs []models.Club
	err   error
	stats models.SnapshotStats
}

func (s *stubCache) Records(context.Context) ([]models.Club, error) { return s.clubs, s.err }
func (s *stubCache) Stats() models.SnapshotStats                    { return s.stats }

func serve(t *testing.T, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestClubs_OK(t *testing.T) {
	stub := &stubCache{clubs: []models.Club{{
		Name:        "Chess Club",
		Description: "We play chess.",
		URL:         "https://x/chess",
		Image:       "https://x/img1.png",
	}}}

	w := serve(t, Clubs(service.NewClubs(stub)))

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{
		"name": "Chess Club",
		"description": "We play chess.",
		"url": "https://x/chess",
		"image": "https://x/img1.png"
	}]`, w.Body.String())
}

func TestClubs_EmptyIsArray(t *testing.T) {
	w := serve(t, Clubs(service.NewClubs(&stubCache{})))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestClubs_ErrorStatusMapping(t *testing.T) {
	cases := map[string]int{
		models.ErrCodeTimeout:      http.StatusGatewayTimeout,
		models.ErrCodeNavigation:   http.StatusBadGateway,
		models.ErrCodeBrowserCrash: http.StatusServiceUnavailable,
		models.ErrCodeCacheIO:      http.StatusInternalServerError,
	}
	for code, status := range cases {
		t.Run(code, func(t *testing.T) {
			stub := &stubCache{err: models.NewScrapeError(code, "failed", nil)}
			w := serve(t, Clubs(service.NewClubs(stub)))

			require.Equal(t, status, w.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, code, body.Error.Code)
		})
	}
}

func TestHealth(t *testing.T) {
	fresh := &stubCache{stats: models.SnapshotStats{Records: 12, Stale: false}}
	w := serve(t, Health(service.NewClubs(fresh), time.Now()))
	require.Equal(t, http.StatusOK, w.Code)

	var body models.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body.Status)
	require.Equal(t, 12, body.Snapshot.Records)
	require.Equal(t, Version, body.Version)

	stale := &stubCache{stats: models.SnapshotStats{Stale: true}}
	w = serve(t, Health(service.NewClubs(stale), time.Now()))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "degraded", body.Status)
}
