package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/fomo-events/backend/internal/auth"
	"github.com/fomo-events/backend/pkg/response"
)

const (
	// ContextUserID is the key for user ID (int64) in gin context.
	ContextUserID = "user_id"
	// ContextUserIsOrg is the key for the session's is_org flag in gin context.
	ContextUserIsOrg = "user_is_org"
	// ContextUserEmail is the key for user email in gin context.
	ContextUserEmail = "user_email"
	// ContextSessionID is the key for the session's jti in gin context.
	ContextSessionID = "session_id"
)

// SessionChecker reports whether a session was logged out.
type SessionChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Sessions resolves the caller's session from the bearer header or the session cookie.
type Sessions struct {
	JWT        *auth.JWTService
	Revoked    SessionChecker
	CookieName string
}

func (s Sessions) resolve(c *gin.Context) (*auth.Claims, error) {
	token := auth.TokenFromRequest(c, s.CookieName)
	if token == "" {
		return nil, auth.ErrInvalidToken
	}
	claims, err := s.JWT.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.Revoked != nil {
		revoked, err := s.Revoked.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, auth.ErrInvalidToken
		}
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUserIsOrg, claims.IsOrg)
	c.Set(ContextUserEmail, claims.Email)
	c.Set(ContextSessionID, claims.ID)
}

// JWT returns a middleware that requires a live session and sets user claims in context.
func JWT(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := s.resolve(c)
		if errors.Is(err, auth.ErrInvalidToken) {
			response.Unauthorized(c, "Please log in to access this page.")
			c.Abort()
			return
		}
		if err != nil {
			response.Internal(c, response.MsgInternal)
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth sets user claims when a live session is present and never rejects.
func OptionalAuth(s Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := s.resolve(c); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RedirectAuthenticated sends logged-in callers to the given location. Use after OptionalAuth.
func RedirectAuthenticated(to string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); ok {
			response.Conflict(c, "You are already logged in.", to)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
