package organizations

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/utils"
)

// MsgNotFound is the notice for an unknown organization name or index.
const MsgNotFound = "The organization you're looking for doesn't exist."

// Store is the organization persistence the handler needs.
type Store interface {
	List(ctx context.Context) ([]models.OrganizationWithEmail, error)
	ListByName(ctx context.Context, name string) ([]models.OrganizationWithEmail, error)
}

// PartyLister lists parties hosted by an organization owner, newest date first.
type PartyLister interface {
	ListByHost(ctx context.Context, hostID int64) ([]models.Party, error)
}

// Detail is an organization page: the org, its owner email and its parties.
type Detail struct {
	Organization models.Organization `json:"organization"`
	Email        string              `json:"email"`
	Parties      []models.PartyView  `json:"parties"`
}

// Handler handles organization HTTP endpoints.
type Handler struct {
	orgs    Store
	parties PartyLister
	logger  *zap.Logger
}

// NewHandler creates an organizations handler.
func NewHandler(orgs Store, parties PartyLister, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{orgs: orgs, parties: parties, logger: logger}
}

// List handles GET /organizations.
func (h *Handler) List(c *gin.Context) {
	list, err := h.orgs.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list organizations", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	response.OK(c, list)
}

// Get handles GET /organizations/:name[/:index].
func (h *Handler) Get(c *gin.Context) {
	index, ok := utils.ParseIndex(c.Param("index"))
	if !ok {
		response.NotFound(c, MsgNotFound, "/organizations")
		return
	}
	ctx := c.Request.Context()
	name := c.Param("name")
	matches, err := h.orgs.ListByName(ctx, name)
	if err != nil {
		h.logger.Error("list organizations by name", zap.String("name", name), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	org, ok := utils.Nth(matches, index)
	if !ok {
		response.NotFound(c, MsgNotFound, "/organizations")
		return
	}

	parties, err := h.parties.ListByHost(ctx, org.UserID)
	if err != nil {
		h.logger.Error("list parties by host", zap.Int64("org_id", org.ID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	views := make([]models.PartyView, 0, len(parties))
	for _, p := range parties {
		views = append(views, p.View())
	}
	response.OK(c, Detail{Organization: org.Organization, Email: org.Email, Parties: views})
}
