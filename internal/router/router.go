package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/studyhive/seatbook/internal/config"
	"github.com/studyhive/seatbook/internal/handler"
	"github.com/studyhive/seatbook/internal/middleware"
	"github.com/studyhive/seatbook/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(repository.RoleMember, repository.RoleAdmin))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the member-facing booking routes.  The
// availability endpoint carries the Redis response cache (short TTL)
// and the whole group sits behind the token-bucket limiter.
func RegisterBooking(e *echo.Echo, jwtSecret string, rdb *redis.Client,
	av *handler.AvailabilityHandler, bk *handler.BookingHandler) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleMember, repository.RoleAdmin))
	g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	g.GET("/availability", av.Get, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	g.POST("/bookings", bk.Create)
	g.POST("/memberships", bk.CreateMembership)
	g.GET("/my-bookings", bk.MyBookings)
}

// RegisterAdmin registers the front-desk routes under /v1/admin,
// restricted to the ADMIN role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	ab *handler.AdminBookingHandler, as *handler.AdminSeatHandler, st *handler.AdminStatsHandler) {

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleAdmin))

	g.GET("/bookings", ab.List)
	g.POST("/bookings/:id/approve", ab.Approve)
	g.POST("/bookings/:id/payment", ab.Payment)
	g.POST("/bookings/:id/release", ab.Release)
	g.GET("/bookings/:id/transactions", ab.Transactions)
	g.GET("/waitlist", ab.WaitlistList)

	g.GET("/stats", st.Dashboard)

	g.POST("/seats", as.Ensure)
	g.GET("/seats", as.List)
}
