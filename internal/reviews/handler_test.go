package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/utils"
)

type memReviews struct {
	stored []models.Review
	err    error
}

func (m *memReviews) Create(_ context.Context, rv *models.Review) error {
	if m.err != nil {
		return m.err
	}
	rv.ID = int64(len(m.stored) + 1)
	m.stored = append(m.stored, *rv)
	return nil
}

// averages mirrors the SQL aggregate over one party's stored reviews.
func (m *memReviews) averages(partyID int64) models.RatingAverages {
	var count int64
	var music, drinks, vibes float64
	for _, rv := range m.stored {
		if rv.PartyID != partyID {
			continue
		}
		count++
		music += float64(*rv.Music)
		drinks += float64(*rv.Drinks)
		vibes += float64(*rv.Vibes)
	}
	if count == 0 {
		return FormatAverages(0, nil, nil, nil)
	}
	n := float64(count)
	music, drinks, vibes = music/n, drinks/n, vibes/n
	return FormatAverages(count, &music, &drinks, &vibes)
}

type titleFinder []models.PartyWithHost

func (f titleFinder) ListByTitle(_ context.Context, title string) ([]models.PartyWithHost, error) {
	var out []models.PartyWithHost
	for _, p := range f {
		if p.Party.Title == title {
			out = append(out, p)
		}
	}
	return out, nil
}

var launches = titleFinder{
	{Party: models.Party{ID: 5, Title: "Launch"}},
	{Party: models.Party{ID: 8, Title: "Launch"}},
	{Party: models.Party{ID: 9, Title: "Afterparty"}},
}

func newReviewRouter(store Creator, loggedIn bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterValidations(); err != nil {
		panic(err)
	}
	h := NewHandler(store, launches, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if loggedIn {
			c.Set(middleware.ContextUserID, int64(3))
		}
		c.Next()
	})
	r.POST("/parties/:title", h.Submit)
	r.POST("/parties/:title/:index", h.Submit)
	return r
}

func post(r *gin.Engine, path, body, contentType string) (*httptest.ResponseRecorder, response.Body) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var b response.Body
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	return w, b
}

func TestSubmitReview(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	w, body := post(r, "/parties/Launch/1", `{"music":4,"drinks":2,"vibes":5,"comment":"loud"}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, MsgReviewed, body.Message)
	require.Equal(t, "/parties", body.Redirect)

	require.Len(t, store.stored, 1)
	rv := store.stored[0]
	require.Equal(t, int64(8), rv.PartyID)
	require.Equal(t, int64(3), rv.ReviewerID)
	require.Equal(t, "loud", rv.Comment)
}

func TestSubmitReviewFormEncoded(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	w, _ := post(r, "/parties/Afterparty", "music=1&drinks=1&vibes=1", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, int64(9), store.stored[0].PartyID)
	require.Empty(t, store.stored[0].Comment)
}

func TestSubmitAveragesPerParty(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	for _, body := range []string{`{"music":4,"drinks":2,"vibes":5}`, `{"music":2,"drinks":4,"vibes":3}`} {
		w, _ := post(r, "/parties/Launch", body, "application/json")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w, _ := post(r, "/parties/Afterparty", `{"music":1,"drinks":1,"vibes":1}`, "application/json")
	require.Equal(t, http.StatusCreated, w.Code)

	require.Equal(t, models.RatingAverages{Music: "3.00", Drinks: "3.00", Vibes: "4.00", Count: 2}, store.averages(5))
	require.Equal(t, "N/A", store.averages(8).Music)
}

func TestSubmitAllowsRepeatReviews(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	for i := 0; i < 2; i++ {
		w, _ := post(r, "/parties/Launch", `{"music":3,"drinks":3,"vibes":3}`, "application/json")
		require.Equal(t, http.StatusCreated, w.Code)
	}
	require.Len(t, store.stored, 2)
}

func TestSubmitRejectsOutOfRange(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	w, body := post(r, "/parties/Launch", `{"music":6,"drinks":0,"vibes":3}`, "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, body.Error, "music: rating")
	require.Contains(t, body.Error, "drinks: required")
	require.Empty(t, store.stored)
}

func TestSubmitUnknownParty(t *testing.T) {
	store := &memReviews{}
	r := newReviewRouter(store, true)

	for _, path := range []string{"/parties/Nope", "/parties/Launch/2"} {
		w, body := post(r, path, `{"music":3,"drinks":3,"vibes":3}`, "application/json")
		require.Equal(t, http.StatusNotFound, w.Code, path)
		require.Equal(t, "/parties", body.Redirect, path)
	}
	require.Empty(t, store.stored)
}

func TestSubmitRequiresLogin(t *testing.T) {
	r := newReviewRouter(&memReviews{}, false)

	w, body := post(r, "/parties/Launch", `{"music":3,"drinks":3,"vibes":3}`, "application/json")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/login", body.Redirect)
}

func TestSubmitStoreError(t *testing.T) {
	r := newReviewRouter(&memReviews{err: errors.New("fk")}, true)

	w, _ := post(r, "/parties/Launch", `{"music":3,"drinks":3,"vibes":3}`, "application/json")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
