package reviews

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/internal/parties"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/utils"
)

// MsgReviewed is the notice after a review is stored.
const MsgReviewed = "Party reviewed!"

// SubmitRequest is the body for POST /parties/:title[/:index].
type SubmitRequest struct {
	Music   int    `json:"music" form:"music" binding:"required,rating"`
	Drinks  int    `json:"drinks" form:"drinks" binding:"required,rating"`
	Vibes   int    `json:"vibes" form:"vibes" binding:"required,rating"`
	Comment string `json:"comment" form:"comment"`
}

// Creator stores reviews.
type Creator interface {
	Create(ctx context.Context, rv *models.Review) error
}

// Handler handles review submission.
type Handler struct {
	reviews Creator
	parties parties.Finder
	logger  *zap.Logger
}

// NewHandler creates a reviews handler.
func NewHandler(reviews Creator, finder parties.Finder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{reviews: reviews, parties: finder, logger: logger}
}

// Submit handles POST /parties/:title[/:index]. Any logged-in user may review, any number of times.
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "Please log in to access this page.")
		return
	}
	var req SubmitRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, utils.ValidationMessage(err))
		return
	}
	party, ok := parties.Resolve(c, h.parties, h.logger)
	if !ok {
		return
	}

	rv := &models.Review{
		Music:      &req.Music,
		Drinks:     &req.Drinks,
		Vibes:      &req.Vibes,
		Comment:    req.Comment,
		ReviewerID: userID,
		PartyID:    party.Party.ID,
	}
	if err := h.reviews.Create(c.Request.Context(), rv); err != nil {
		h.logger.Error("create review", zap.Int64("party_id", party.Party.ID), zap.Int64("reviewer_id", userID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	response.Created(c, rv, MsgReviewed, "/parties")
}
