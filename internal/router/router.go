// Package router wires the HTTP surface: which paths exist, which are
// public, and which sit behind JWT auth or the admin role.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/handler"
	"github.com/wlong0711/sporthall/internal/middleware"
	"github.com/wlong0711/sporthall/internal/model"
)

// RegisterRoutes registers routes that need no handler state.
// Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth mounts the auth endpoints under /api/auth.  Only /me
// requires a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.GET("/verifyemail/:token", a.VerifyEmail)
	g.POST("/login", a.Login)
	g.POST("/forgotpassword", a.ForgotPassword)
	g.PUT("/resetpassword/:token", a.ResetPassword)
	g.GET("/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterBookings mounts the booking endpoints under /api/bookings.
// Everything requires a token; the cross-user listing additionally
// requires the admin role.
func RegisterBookings(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/api/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.POST("", b.Create)
	g.GET("/my-bookings", b.MyBookings)
	g.GET("", b.ListAll, middleware.RequireRole(model.RoleAdmin))
	g.PUT("/:id/cancel", b.Cancel)
}

// RegisterCourts mounts the court endpoints under /api/courts.  The
// listings are public and cached; creation is admin only.
func RegisterCourts(e *echo.Echo, h *handler.CourtHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/courts")
	g.GET("", h.List, cache)
	g.GET("/available", h.Available, cache)
	g.POST("", h.Create, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
}

// RegisterAvailability mounts the override endpoints under
// /api/availability.  Reading is public and cached; writing is admin
// only.
func RegisterAvailability(e *echo.Echo, h *handler.AvailabilityHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/availability")
	g.GET("", h.Get, cache)
	g.POST("", h.Set, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
	g.DELETE("/:id", h.Delete, middleware.JWTAuth(jwtSecret), middleware.RequireRole(model.RoleAdmin))
}
