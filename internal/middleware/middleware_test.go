package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fomo-events/backend/internal/auth"
	"github.com/fomo-events/backend/pkg/response"
)

type fakeRevoked map[string]bool

func (f fakeRevoked) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "broken" {
		return false, errors.New("redis down")
	}
	return f[jti], nil
}

type fakeOrgs struct {
	owners map[int64]bool
	err    error
}

func (f fakeOrgs) ExistsForUser(_ context.Context, userID int64) (bool, error) {
	return f.owners[userID], f.err
}

func testSessions() Sessions {
	return Sessions{JWT: auth.NewJWTService("mw-secret", 1), Revoked: fakeRevoked{}, CookieName: "fomo_session"}
}

func serve(r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, response.Body) {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var b response.Body
	_ = json.Unmarshal(w.Body.Bytes(), &b)
	return w, b
}

func whoami(c *gin.Context) {
	id, _ := UserID(c)
	c.JSON(http.StatusOK, gin.H{"id": id, "is_org": c.GetBool(ContextUserIsOrg), "email": c.GetString(ContextUserEmail)})
}

func TestJWTRejectsMissingSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", JWT(testSessions()), whoami)

	w, body := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/login", body.Redirect)
}

func TestJWTAcceptsCookieAndBearer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testSessions()
	r := gin.New()
	r.GET("/", JWT(s), whoami)
	token, err := s.JWT.Generate(12, "acme@example.com", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "fomo_session", Value: token})
	w, _ := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":12,"is_org":true,"email":"acme@example.com"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, _ = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestJWTRejectsRevokedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testSessions()
	token, err := s.JWT.Generate(12, "acme@example.com", true)
	require.NoError(t, err)
	claims, err := s.JWT.Validate(token)
	require.NoError(t, err)
	s.Revoked = fakeRevoked{claims.ID: true}

	r := gin.New()
	r.GET("/", JWT(s), whoami)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, body := serve(r, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "/login", body.Redirect)
}

func TestJWTRejectsGarbage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", JWT(testSessions()), whoami)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w, _ := serve(r, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuthAndRedirectAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testSessions()
	r := gin.New()
	r.GET("/login", OptionalAuth(s), RedirectAuthenticated("/"), func(c *gin.Context) {
		response.OK(c, "form")
	})

	w, _ := serve(r, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Authorization", "Bearer junk")
	w, _ = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	token, err := s.JWT.Generate(3, "u@example.com", false)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, body := serve(r, req)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "/", body.Redirect)
}

func TestRequireOrganization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testSessions()
	orgs := fakeOrgs{owners: map[int64]bool{1: true}}
	r := gin.New()
	r.GET("/host", JWT(s), RequireOrganization(orgs, nil), whoami)

	orgToken, err := s.JWT.Generate(1, "acme@example.com", true)
	require.NoError(t, err)
	userToken, err := s.JWT.Generate(2, "una@example.com", false)
	require.NoError(t, err)
	forgedToken, err := s.JWT.Generate(3, "fake@example.com", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/host", nil)
	req.Header.Set("Authorization", "Bearer "+orgToken)
	w, _ := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	for _, token := range []string{userToken, forgedToken} {
		req = httptest.NewRequest(http.MethodGet, "/host", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w, body := serve(r, req)
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, MsgOrganizationsOnly, body.Message)
		require.Equal(t, "/", body.Redirect)
	}
}

func TestRequireOrganizationStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := testSessions()
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.GET("/host", JWT(s), RequireOrganization(fakeOrgs{err: errors.New("db down")}, zap.New(core)), whoami)
	token, err := s.JWT.Generate(1, "acme@example.com", true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/host", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, _ := serve(r, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("check organization").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, int64(1), fields["user_id"])
	require.Equal(t, "db down", fields["error"])
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w, _ := serve(r, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w, _ = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoggerRecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/parties", func(c *gin.Context) {
		c.Set(ContextUserID, int64(9))
		c.Status(http.StatusOK)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/parties", nil))
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/parties", fields["path"])
	require.Equal(t, int64(200), fields["status"])
	require.Equal(t, int64(9), fields["user_id"])
}
