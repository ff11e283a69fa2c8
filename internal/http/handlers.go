package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/auth"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/booking"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/catalog"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/config"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/domain"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/idempotency"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/seatmap"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/showtimes"
)

type Handlers struct {
	cfg     *config.Config
	authSvc *auth.Service
	repo    *booking.Repository
	movies  *catalog.Client
	idemp   *idempotency.Idempotency
	logger  observability.Logger
	seatIDs map[string]struct{}
}

func NewHandlers(cfg *config.Config, authSvc *auth.Service, repo *booking.Repository, movies *catalog.Client, idemp *idempotency.Idempotency, logger observability.Logger) *Handlers {
	return &Handlers{
		cfg:     cfg,
		authSvc: authSvc,
		repo:    repo,
		movies:  movies,
		idemp:   idemp,
		logger:  logger,
		seatIDs: seatmap.IDSet(cfg.SeatRows, cfg.SeatCols, cfg.HiddenRowLetters()),
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := h.authSvc.Register(r.Context(), req.Username, req.Email, req.Phone, req.Password)
	if errors.Is(err, domain.ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, domain.ErrEmailTaken) {
		http.Error(w, "email already registered", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user_id": u.ID})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, domain.ErrBadCredentials) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	if err := h.authSvc.SignOut(r.Context(), *identity); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the profile behind the authenticated identity.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	u, err := h.authSvc.Profile(r.Context(), identity.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  u.ID,
		"username": u.Username,
		"email":    u.Email,
		"phone":    u.Phone,
	})
}

func (h *Handlers) ListMovies(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "popular"
	}
	page, err := h.movies.List(r.Context(), category, pageParam(r))
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}
	page, err := h.movies.Search(r.Context(), query, pageParam(r))
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.movies.Movie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "movie not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (h *Handlers) Recommendations(w http.ResponseWriter, r *http.Request) {
	page, err := h.movies.Recommendations(r.Context(), chi.URLParam(r, "id"), pageParam(r))
	if err != nil {
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Showtimes returns the candidate dates and the fixed time slots the client
// picks from.
func (h *Handlers) Showtimes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"movie_id": chi.URLParam(r, "id"),
		"dates":    showtimes.Window(time.Now(), h.cfg.WindowDays),
		"slots":    showtimes.Slots(),
	})
}

type seatView struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

type rowView struct {
	Letter string     `json:"letter"`
	Seats  []seatView `json:"seats"`
}

// SeatMap renders the grid for a show with per-seat status for the caller.
func (h *Handlers) SeatMap(w http.ResponseWriter, r *http.Request) {
	show := domain.Show{
		MovieID: chi.URLParam(r, "id"),
		Date:    r.URL.Query().Get("date"),
		Time:    r.URL.Query().Get("time"),
	}
	if show.Date == "" || show.Time == "" {
		http.Error(w, "date and time are required", http.StatusBadRequest)
		return
	}

	sess := booking.NewSession(h.repo, h.movies, IdentityFrom(r.Context()), show, h.seatIDs, h.cfg.TicketPrice, h.logger)
	sess.Load(r.Context())

	grid := seatmap.Generate(h.cfg.SeatRows, h.cfg.SeatCols, h.cfg.HiddenRowLetters())
	rows := make([]rowView, 0, len(grid))
	for _, row := range grid {
		rv := rowView{Letter: string(row.Letter)}
		for _, seat := range row.Seats {
			rv.Seats = append(rv.Seats, seatView{
				ID:       seat.ID,
				Category: string(seat.Category),
				Status:   string(sess.Status(seat.ID)),
			})
		}
		rows = append(rows, rv)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"title":        sess.Title(),
		"date":         show.Date,
		"time":         show.Time,
		"ticket_price": h.cfg.TicketPrice,
		"rows":         rows,
	})
}

// ConfirmBooking runs a full selection session server-side: load, apply the
// requested seats, confirm. An Idempotency-Key header makes retries safe
// against duplicate history entries.
func (h *Handlers) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	key := r.Header.Get("Idempotency-Key")
	existing, err := h.idemp.Get(r.Context(), key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(existing.Status)
		w.Write(existing.Result)
		return
	}

	var req struct {
		MovieID string   `json:"movie_id"`
		Date    string   `json:"date"`
		Time    string   `json:"time"`
		Seats   []string `json:"seats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.MovieID == "" || req.Date == "" || req.Time == "" {
		http.Error(w, "movie_id, date and time are required", http.StatusBadRequest)
		return
	}

	show := domain.Show{MovieID: req.MovieID, Date: req.Date, Time: req.Time}
	sess := booking.NewSession(h.repo, h.movies, IdentityFrom(r.Context()), show, h.seatIDs, h.cfg.TicketPrice, h.logger)
	sess.Load(r.Context())
	for _, seat := range req.Seats {
		if err := sess.Select(seat); err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, domain.ErrSeatBooked):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
	}

	entry, err := sess.Confirm(r.Context())
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		http.Error(w, "no bookable seats selected", http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrUnauthenticated):
		w.Header().Set("Location", "/login")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	case errors.Is(err, domain.ErrVersionConflict):
		http.Error(w, "booking conflicts with a concurrent update, try again", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"movie_id":    entry.ShowID,
		"title":       entry.Title,
		"date":        entry.Date,
		"time":        entry.Time,
		"seats":       entry.Seats,
		"total_price": entry.TotalPrice,
		"redirect":    "/dashboard",
	}
	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(data)

	h.idemp.Set(r.Context(), key, idempotency.Response{Status: http.StatusCreated, Result: data})
}

func (h *Handlers) BookingHistory(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	history, err := h.repo.History(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	entries := make([]map[string]interface{}, 0, len(history.Bookings))
	for _, e := range history.Bookings {
		entries = append(entries, map[string]interface{}{
			"movie_id":    e.ShowID,
			"title":       e.Title,
			"date":        e.Date,
			"time":        e.Time,
			"seats":       e.Seats,
			"total_price": e.TotalPrice,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookings": entries})
}

// CancelBooking removes the history entries for a show. Seats stay occupied
// in the show record; ReleaseSeats is the separate opt-in for freeing them.
func (h *Handlers) CancelBooking(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())
	removed, err := h.repo.CancelHistory(r.Context(), identity.UserID, chi.URLParam(r, "movieID"))
	if errors.Is(err, domain.ErrVersionConflict) {
		http.Error(w, "conflict, try again", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if removed == 0 {
		http.Error(w, "no booking for this movie", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"removed": removed})
}

func (h *Handlers) ReleaseSeats(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	var req struct {
		Seats []string `json:"seats"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Seats) == 0 {
		http.Error(w, "no seats given", http.StatusBadRequest)
		return
	}
	for _, seat := range req.Seats {
		if _, ok := h.seatIDs[seat]; !ok {
			http.Error(w, "unknown seat id "+seat, http.StatusBadRequest)
			return
		}
	}

	err := h.repo.ReleaseSeats(r.Context(), identity.UserID, chi.URLParam(r, "movieID"), req.Seats)
	if errors.Is(err, domain.ErrNotFound) {
		http.Error(w, "no booking for this movie", http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrVersionConflict) {
		http.Error(w, "conflict, try again", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
