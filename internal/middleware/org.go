package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/pkg/response"
)

// MsgOrganizationsOnly is the notice for non-organization callers of org-only pages.
const MsgOrganizationsOnly = "That page is restricted to organizations accounts only!"

// OrganizationChecker reports whether the user owns an organization.
type OrganizationChecker interface {
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
}

// RequireOrganization allows only callers that own an organization. Call after JWT.
// Membership is checked against the store on every request, not trusted from the token.
func RequireOrganization(orgs OrganizationChecker, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			response.Unauthorized(c, "Please log in to access this page.")
			c.Abort()
			return
		}
		isOrg, err := orgs.ExistsForUser(c.Request.Context(), userID)
		if err != nil {
			logger.Error("check organization", zap.Int64("user_id", userID), zap.Error(err))
			response.Internal(c, response.MsgInternal)
			c.Abort()
			return
		}
		if !isOrg {
			response.Forbidden(c, MsgOrganizationsOnly)
			c.Abort()
			return
		}
		c.Next()
	}
}
