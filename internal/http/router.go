package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/auth"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/rateLimit"
)

func SetupRouter(h *Handlers, authSvc *auth.Service, logger observability.Logger, rl *rateLimit.RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(AuthMiddleware(authSvc))
	r.Use(RateLimitMiddleware(rl))

	r.Post("/v1/auth/register", h.Register)
	r.Post("/v1/auth/login", h.Login)
	r.With(RequireAuth).Post("/v1/auth/logout", h.Logout)
	r.With(RequireAuth).Get("/v1/auth/me", h.Me)

	r.Get("/v1/movies", h.ListMovies)
	r.Get("/v1/movies/search", h.SearchMovies)
	r.Get("/v1/movies/{id}", h.GetMovie)
	r.Get("/v1/movies/{id}/recommendations", h.Recommendations)
	r.Get("/v1/movies/{id}/showtimes", h.Showtimes)
	r.Get("/v1/movies/{id}/seats", h.SeatMap)

	r.Route("/v1/bookings", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Post("/", h.ConfirmBooking)
		r.Get("/", h.BookingHistory)
		r.Delete("/{movieID}", h.CancelBooking)
		r.Post("/{movieID}/release", h.ReleaseSeats)
	})

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}
