package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/cinema-ticketing/internal/handler"    // handlers implementing the endpoint logic
	"github.com/iliyamo/cinema-ticketing/internal/middleware" // JWT authentication and role enforcement
	"github.com/iliyamo/cinema-ticketing/internal/reservation"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probes hit this endpoint to verify
	// that the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication routes under /v1/auth.
// Register, login and refresh do not require an existing session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token: the presented token is revoked
	// and a new pair is issued.
	g.POST("/refresh", a.Refresh)
}

// Catalog groups the handlers for the public browse surface.
type Catalog struct {
	Films      *handler.FilmHandler
	Rooms      *handler.RoomHandler
	Seats      *handler.SeatHandler
	Screenings *handler.ScreeningHandler
}

// RegisterCatalog registers the read-only catalog endpoints.  These are
// public so guests can browse films and screenings before registering.
// The optional cache middleware is applied to the GET routes only.
func RegisterCatalog(e *echo.Echo, cat Catalog, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("/films", cat.Films.List)
	g.GET("/films/:id", cat.Films.Get)
	g.GET("/rooms", cat.Rooms.List)
	g.GET("/rooms/:id", cat.Rooms.Get)
	g.GET("/rooms/:id/seats", cat.Rooms.ListSeats)
	g.GET("/seats/:id", cat.Seats.Get)
	g.GET("/screenings", cat.Screenings.List)
	g.GET("/screenings/:id", cat.Screenings.Get)
	// Seat availability is derived from committed reservations, so it is
	// registered outside the cache group to always reflect fresh state.
	e.GET("/v1/screenings/:id/seats", cat.Screenings.Seats)
}

// RegisterAdmin registers the catalog write endpoints.  All of them
// require a valid access token carrying the ADMIN role.
func RegisterAdmin(e *echo.Echo, cat Catalog, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(reservation.RoleAdmin))

	g.POST("/films", cat.Films.Create)
	g.PUT("/films/:id", cat.Films.Update)
	g.DELETE("/films/:id", cat.Films.Delete)

	g.POST("/rooms", cat.Rooms.Create)
	g.PUT("/rooms/:id", cat.Rooms.Update)
	g.DELETE("/rooms/:id", cat.Rooms.Delete)

	g.POST("/seats", cat.Seats.Create)
	g.DELETE("/seats/:id", cat.Seats.Delete)

	g.POST("/screenings", cat.Screenings.Create)
	g.PUT("/screenings/:id", cat.Screenings.Update)
	g.DELETE("/screenings/:id", cat.Screenings.Delete)
}

// RegisterUsers registers the user-management endpoints.  All of them
// require authentication; the admin-only rules for listing and deleting
// are enforced inside the handler. The static /profile and /password
// routes coexist with /:id because Echo matches static segments first.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1/users")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(reservation.RoleAdmin, reservation.RoleCustomer))
	g.GET("", u.List)
	g.GET("/:id", u.Get)
	g.DELETE("/:id", u.Delete)
	g.PUT("/profile", u.UpdateProfile)
	g.PUT("/password", u.UpdatePassword)
}

// RegisterReservations registers the booking endpoints.  Any
// authenticated user may book and read; deletion stays admin-only and
// the ownership rules are enforced inside the access layer, so the
// route-level role check only filters out unknown roles.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(reservation.RoleAdmin, reservation.RoleCustomer))
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.DELETE("/:id", r.Delete)
}
