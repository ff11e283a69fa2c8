package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr             string
	MongoURI         string
	MongoDB          string
	RedisAddr        string
	RabbitURL        string
	CatalogBaseURL   string
	CatalogSearchURL string
	CatalogAPIKey    string
	JWTSecret        string
	SessionTTL       time.Duration
	TicketPrice      int64
	SeatRows         int
	SeatCols         int
	HiddenRows       string
	WindowDays       int
	OTLPEndpoint     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionTTL, _ := time.ParseDuration(os.Getenv("SESSION_TTL"))
	if sessionTTL == 0 {
		sessionTTL = 24 * time.Hour
	}

	return &Config{
		Addr:             envOr("ADDR", ":8080"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          envOr("MONGO_DB", "mtb"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RabbitURL:        os.Getenv("RABBIT_URL"),
		CatalogBaseURL:   envOr("MOVIE_BASE_URL", "https://api.themoviedb.org/3/movie"),
		CatalogSearchURL: envOr("MOVIE_SEARCH_URL", "https://api.themoviedb.org/3/search/movie"),
		CatalogAPIKey:    os.Getenv("MOVIE_API_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		SessionTTL:       sessionTTL,
		TicketPrice:      envInt64("TICKET_PRICE", 200),
		SeatRows:         envInt("SEAT_ROWS", 10),
		SeatCols:         envInt("SEAT_COLS", 10),
		HiddenRows:       envOr("HIDDEN_ROWS", "CH"),
		WindowDays:       envInt("SHOWTIME_WINDOW_DAYS", 6),
		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

// HiddenRowLetters decodes HIDDEN_ROWS ("CH") into individual row letters.
func (c *Config) HiddenRowLetters() []rune {
	return []rune(c.HiddenRows)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil && v > 0 {
		return v
	}
	return def
}
