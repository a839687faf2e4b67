package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/user-profile-service/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/user-profile-service/internal/middleware" // import middleware for the session token gate and caching
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance: the health check and the static file route
// serving uploaded profile images.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	// The health endpoint can be used by load balancers or monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
	// Uploaded images are served as plain static files, mirroring the
	// paths stored on the user records.
	e.Static("/uploads", uploadDir)
}

// RegisterAuth registers the auth and profile routes.  Registration, login
// and the public profile lookup are open; every mutating endpoint sits
// behind the JWTAuth gate so the subject is always resolved from a
// verified token before any handler logic runs.  The profile lookup is
// wrapped in the Redis read cache when one is configured.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, cache *middleware.ProfileCache, jwtSecret string) {
	g := e.Group("/auth")

	// Open endpoints: no session required.
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Profile lookup by email is intentionally public (directory-style
	// lookup, matching the mobile client); only the cache middleware
	// applies here.
	g.GET("/profile/:email", a.GetProfile, cache.Middleware())

	// Gated endpoints: the middleware verifies the bearer token and puts
	// the subject id in the context before these handlers run.
	gate := middleware.JWTAuth(jwtSecret)
	g.PUT("/profile", a.UpdateProfile, gate)
	g.POST("/upload-profile-image", a.UploadProfileImage, gate)
	g.DELETE("/profile-image", a.DeleteProfileImage, gate)
}
