package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/mongo"
	redisadapter "github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/redis"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/auth"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/booking"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/catalog"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/config"
	httphandler "github.com/Bhushan1137/Movie-Ticket-Booking/internal/http"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/idempotency"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/rateLimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdown, err := observability.SetupOTel(context.Background(), cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdown()

	logger := observability.NewLogger()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDB)

	showStore := mongoadapter.NewShowBookingStore(db, logger)
	historyStore := mongoadapter.NewHistoryStore(db, logger)
	userStore := mongoadapter.NewUserStore(db, logger)
	if err := userStore.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
	sessions := redisadapter.NewSessions(redisClient)
	idemp := idempotency.NewIdempotency(redisadapter.NewConfirmCache(redisClient), time.Hour)
	rl := rateLimit.NewRateLimiter(redisClient)

	authSvc := auth.NewService(userStore, sessions, cfg.JWTSecret, cfg.SessionTTL, logger)
	movies := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogSearchURL, cfg.CatalogAPIKey, logger)
	repo := booking.NewRepository(showStore, historyStore, logger)

	handlers := httphandler.NewHandlers(cfg, authSvc, repo, movies, idemp, logger)
	r := httphandler.SetupRouter(handlers, authSvc, logger, rl)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
