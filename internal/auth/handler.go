package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/models"
	"github.com/fomo-events/backend/pkg/response"
	"github.com/fomo-events/backend/pkg/utils"
)

const (
	MsgEmailTaken      = "A user/organization with that email already exists. Log in instead."
	MsgRegistered      = "Successful registration."
	MsgUnknownEmail    = "User with that email does not exist."
	MsgWrongPassword   = "Password incorrect. Try again."
	MsgLoggedOut       = "You have logged out successfully."
	MsgUnknownUserType = "Unknown account type."
)

// RegisterRequest is the body for POST /register/user.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterOrgRequest is the body for POST /register/org.
type RegisterOrgRequest struct {
	RegisterRequest
	ImgURL      string `json:"img_url" form:"img_url" binding:"required,url"`
	Description string `json:"description" form:"description" binding:"required"`
}

// LoginRequest is the body for POST /login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse is the auth response with the session token.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// UserStore is the persistence the auth handler needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Register(ctx context.Context, p RegisterParams) (*models.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(plain, hashed string) bool
}

// SessionRevoker records logged-out sessions.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// Handler handles registration, login and logout.
type Handler struct {
	users    UserStore
	hasher   PasswordHasher
	jwt      *JWTService
	sessions SessionRevoker
	cookie   CookieConfig
	logger   *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(users UserStore, hasher PasswordHasher, jwt *JWTService, sessions SessionRevoker, cookie CookieConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{users: users, hasher: hasher, jwt: jwt, sessions: sessions, cookie: cookie, logger: logger}
}

func userTypeParam(c *gin.Context) (string, bool) {
	t := c.Param("user_type")
	if t == "" {
		t = UserTypeUser
	}
	return t, t == UserTypeUser || t == UserTypeOrg
}

// RegisterForm handles GET /register[/:user_type].
func (h *Handler) RegisterForm(c *gin.Context) {
	userType, ok := userTypeParam(c)
	if !ok {
		response.NotFound(c, MsgUnknownUserType, "/register/user")
		return
	}
	if userType == UserTypeOrg {
		response.OK(c, orgRegisterForm)
		return
	}
	response.OK(c, userRegisterForm)
}

// Register handles POST /register[/:user_type].
func (h *Handler) Register(c *gin.Context) {
	userType, ok := userTypeParam(c)
	if !ok {
		response.NotFound(c, MsgUnknownUserType, "/register/user")
		return
	}

	var (
		params   RegisterParams
		password string
	)
	if userType == UserTypeOrg {
		var req RegisterOrgRequest
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, utils.ValidationMessage(err))
			return
		}
		params = RegisterParams{Email: req.Email, Name: req.Name, Org: &OrgParams{Description: req.Description, ImgURL: req.ImgURL}}
		password = req.Password
	} else {
		var req RegisterRequest
		if err := c.ShouldBind(&req); err != nil {
			response.BadRequest(c, utils.ValidationMessage(err))
			return
		}
		params = RegisterParams{Email: req.Email, Name: req.Name}
		password = req.Password
	}

	retry := "/register/" + userType
	ctx := c.Request.Context()
	_, err := h.users.GetByEmail(ctx, params.Email)
	if err == nil {
		response.Conflict(c, MsgEmailTaken, retry)
		return
	}
	if !errors.Is(err, ErrUserNotFound) {
		h.logger.Error("lookup email", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}

	hash, err := h.hasher.Hash(password)
	if err != nil {
		h.logger.Error("hash password", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	params.PasswordHash = hash

	user, err := h.users.Register(ctx, params)
	if errors.Is(err, ErrEmailTaken) {
		response.Conflict(c, MsgEmailTaken, retry)
		return
	}
	if err != nil {
		h.logger.Error("register", zap.String("user_type", userType), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}

	token, ok := h.startSession(c, user)
	if !ok {
		return
	}
	h.logger.Info("registered", zap.Int64("user_id", user.ID), zap.Bool("is_org", user.IsOrg))
	response.Created(c, TokenResponse{Token: token, User: user.ToPublic()}, MsgRegistered, "/")
}

// LoginForm handles GET /login.
func (h *Handler) LoginForm(c *gin.Context) {
	response.OK(c, loginForm)
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, utils.ValidationMessage(err))
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, ErrUserNotFound) {
		response.Unauthorized(c, MsgUnknownEmail)
		return
	}
	if err != nil {
		h.logger.Error("lookup email", zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return
	}
	if !h.hasher.Check(req.Password, user.Password) {
		response.Unauthorized(c, MsgWrongPassword)
		return
	}

	token, ok := h.startSession(c, user)
	if !ok {
		return
	}
	response.Notice(c, TokenResponse{Token: token, User: user.ToPublic()}, "Welcome, "+user.Name+".", "/")
}

// Logout handles GET /logout. It succeeds whether or not a session is present.
func (h *Handler) Logout(c *gin.Context) {
	if token := TokenFromRequest(c, h.cookie.Name); token != "" {
		if claims, err := h.jwt.Validate(token); err == nil {
			if err := h.sessions.Revoke(c.Request.Context(), claims.ID, claims.Remaining(time.Now())); err != nil {
				h.logger.Warn("revoke session", zap.Int64("user_id", claims.UserID), zap.Error(err))
			}
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Notice(c, nil, MsgLoggedOut, "/")
}

func (h *Handler) startSession(c *gin.Context, user *models.User) (string, bool) {
	token, err := h.jwt.Generate(user.ID, user.Email, user.IsOrg)
	if err != nil {
		h.logger.Error("generate token", zap.Int64("user_id", user.ID), zap.Error(err))
		response.Internal(c, response.MsgInternal)
		return "", false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.jwt.TTL().Seconds()), "/", "", h.cookie.Secure, true)
	return token, true
}

// TokenFromRequest returns the session token from the Authorization bearer header or the session cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	token, err := c.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return token
}
