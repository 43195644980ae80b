package parties

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/utils"
)

const (
	MsgAdded    = "Party added!"
	MsgNotFound = "The party you're looking for doesn't exist."
	MsgInPast   = "Event cannot be in the past!"
)

// Store is the party persistence the handler needs.
type Store interface {
	Create(ctx context.Context, p *models.Party) error
	Upcoming(ctx context.Context, today time.Time, limit int) ([]models.PartyWithHost, error)
	Past(ctx context.Context, today time.Time) ([]models.PartyWithHost, error)
	ListByTitle(ctx context.Context, title string) ([]models.PartyWithHost, error)
}

// ReviewReader provides the reviews shown on a party page.
type ReviewReader interface {
	ListByParty(ctx context.Context, partyID int64) ([]models.ReviewWithReviewer, error)
	AverageRatings(ctx context.Context, partyID int64) (models.RatingAverages, error)
}

// HostRequest is the body for POST /host.
type HostRequest struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Date        string  `json:"date" form:"date" binding:"required,datetime=2006-01-02"`
	Time        string  `json:"time" form:"time" binding:"required,datetime=15:04"`
	Duration    float64 `json:"duration" form:"duration" binding:"required,gt=0"`
	Location    string  `json:"location" form:"location" binding:"required"`
	Description string  `json:"description" form:"description" binding:"required"`
	ImgURL      string  `json:"img_url" form:"img_url" binding:"required,url"`
}

// Listing is the GET /parties payload.
type Listing struct {
	Upcoming []models.PartyWithHostView `json:"upcoming"`
	Past     []models.PartyWithHostView `json:"past"`
}

// Detail is a party page.
type Detail struct {
	Party      models.PartyView            `json:"party"`
	Host       models.Organization         `json:"host"`
	Reviews    []models.ReviewWithReviewer `json:"reviews"`
	Averages   models.RatingAverages       `json:"averages"`
	IsPast     bool                        `json:"is_past"`
	ReviewForm models.Form                 `json:"review_form"`
}

// Handler handles party HTTP endpoints.
type Handler struct {
	parties       Store
	reviews       ReviewReader
	homepageLimit int
	logger        *zap.Logger
	now           func() time.Time
}

// NewHandler creates a parties handler. homepageLimit bounds the homepage listing.
func NewHandler(parties Store, reviews ReviewReader, homepageLimit int, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{parties: parties, reviews: reviews, homepageLimit: homepageLimit, logger: logger, now: time.Now}
}

func (h *Handler) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func views(list []models.PartyWithHost) []models.PartyWithHostView {
	out := make([]models.PartyWithHostView, 0, len(list))
	for _, p := range list {
		out = append(out, p.View())
	}
	return out
}

// Home handles GET /: the next few upcoming parties with their hosts.
func (h *Handler) Home(c *gin.Context) {
	list, err := h.parties.Upcoming(c.Request.Context(), h.today(), h.homepageLimit)
	if err != nil {
		h.logger.Error("homepage parties", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	response.OK(c, views(list))
}

// List handles GET /parties.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	today := h.today()
	upcoming, err := h.parties.Upcoming(ctx, today, 0)
	if err != nil {
		h.logger.Error("upcoming parties", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	past, err := h.parties.Past(ctx, today)
	if err != nil {
		h.logger.Error("past parties", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	response.OK(c, Listing{Upcoming: views(upcoming), Past: views(past)})
}

// Get handles GET /parties/:title[/:index].
func (h *Handler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	party, ok := Resolve(c, h.parties, h.logger)
	if !ok {
		return
	}
	reviews, err := h.reviews.ListByParty(ctx, party.Party.ID)
	if err != nil {
		h.logger.Error("party reviews", zap.Int64("party_id", party.Party.ID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	averages, err := h.reviews.AverageRatings(ctx, party.Party.ID)
	if err != nil {
		h.logger.Error("party averages", zap.Int64("party_id", party.Party.ID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	response.OK(c, Detail{
		Party:      party.Party.View(),
		Host:       party.Host,
		Reviews:    reviews,
		Averages:   averages,
		IsPast:     party.Party.Date.Format(models.DateLayout) < h.today().Format(models.DateLayout),
		ReviewForm: reviewForm,
	})
}

// Finder looks parties up by title.
type Finder interface {
	ListByTitle(ctx context.Context, title string) ([]models.PartyWithHost, error)
}

// Resolve picks the party addressed by the :title and optional :index route params.
// It writes the not-found or error response itself and reports false in that case.
func Resolve(c *gin.Context, parties Finder, logger *zap.Logger) (models.PartyWithHost, bool) {
	index, ok := utils.ParseIndex(c.Param("index"))
	if !ok {
		response.NotFound(c, MsgNotFound, "/parties")
		return models.PartyWithHost{}, false
	}
	title := c.Param("title")
	matches, err := parties.ListByTitle(c.Request.Context(), title)
	if err != nil {
		logger.Error("parties by title", zap.String("title", title), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return models.PartyWithHost{}, false
	}
	party, ok := utils.Nth(matches, index)
	if !ok {
		response.NotFound(c, MsgNotFound, "/parties")
		return models.PartyWithHost{}, false
	}
	return party, true
}

// HostForm handles GET /host.
func (h *Handler) HostForm(c *gin.Context) {
	response.OK(c, hostForm)
}

// Host handles POST /host. The caller must own an organization.
func (h *Handler) Host(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Please log in to access this page.")
		return
	}
	var req HostRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	now := h.now()
	date, err := time.ParseInLocation(models.DateLayout, req.Date, now.Location())
	if err != nil {
		response.BadRequest(c, "date: datetime="+models.DateLayout)
		return
	}
	start, err := time.ParseInLocation(models.TimeLayout, req.Time, now.Location())
	if err != nil {
		response.BadRequest(c, "time: datetime="+models.TimeLayout)
		return
	}
	if inPast(date, start, now) {
		response.BadRequest(c, "date: "+MsgInPast)
		return
	}

	p := &models.Party{
		Title:       req.Title,
		Date:        date,
		StartTime:   start.Format(models.TimeLayout),
		Duration:    req.Duration,
		Location:    req.Location,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		HostID:      userID,
	}
	if err := h.parties.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("host party", zap.Int64("host_id", userID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	h.logger.Info("party hosted", zap.Int64("party_id", p.ID), zap.Int64("host_id", userID))
	response.Created(c, p.View(), MsgAdded, "/")
}

// inPast reports whether a party on date starting at clock time start has already begun.
func inPast(date, start, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return true
	}
	if date.After(today) {
		return false
	}
	startAt := time.Date(now.Year(), now.Month(), now.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
	return startAt.Before(now)
}
