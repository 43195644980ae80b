package main

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fomo-events/backend/internal/auth"
	"github.com/fomo-events/backend/internal/images"
	"github.com/fomo-events/backend/internal/middleware"
	"github.com/fomo-events/backend/internal/organizations"
	"github.com/fomo-events/backend/internal/parties"
	"github.com/fomo-events/backend/internal/reviews"
	"github.com/fomo-events/backend/pkg/response"
)

type routes struct {
	sessions      middleware.Sessions
	orgs          middleware.OrganizationChecker
	auth          *auth.Handler
	organizations *organizations.Handler
	parties       *parties.Handler
	reviews       *reviews.Handler
	images        *images.Handler
	corsOrigins   string
	logger        *zap.Logger
}

func newRouter(r routes) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(r.corsOrigins))
	router.Use(middleware.Logger(r.logger))

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Anonymous only: logged-in callers are sent home.
	guest := router.Group("")
	guest.Use(middleware.OptionalAuth(r.sessions), middleware.RedirectAuthenticated("/"))
	{
		guest.GET("/register", r.auth.RegisterForm)
		guest.POST("/register", r.auth.Register)
		guest.GET("/register/:user_type", r.auth.RegisterForm)
		guest.POST("/register/:user_type", r.auth.Register)
		guest.GET("/login", r.auth.LoginForm)
		guest.POST("/login", r.auth.Login)
	}

	router.GET("/logout", r.auth.Logout)

	api := router.Group("")
	api.Use(middleware.JWT(r.sessions))
	{
		api.GET("/", r.parties.Home)

		api.GET("/organizations", r.organizations.List)
		api.GET("/organizations/:name", r.organizations.Get)
		api.GET("/organizations/:name/:index", r.organizations.Get)

		api.GET("/parties", r.parties.List)
		api.GET("/parties/:title", r.parties.Get)
		api.GET("/parties/:title/:index", r.parties.Get)
		api.POST("/parties/:title", r.reviews.Submit)
		api.POST("/parties/:title/:index", r.reviews.Submit)

		api.POST("/images", r.images.Upload)
		api.POST("/images/upload-url", r.images.UploadURL)

		host := api.Group("/host")
		host.Use(middleware.RequireOrganization(r.orgs, r.logger))
		{
			host.GET("", r.parties.HostForm)
			host.POST("", r.parties.Host)
		}
	}

	return router
}
