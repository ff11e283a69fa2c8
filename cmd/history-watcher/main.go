package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/mongo"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/adapters/rabbit"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/config"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/events"
	"github.com/Bhushan1137/Movie-Ticket-Booking/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	watcher := mongoadapter.NewHistoryWatcher(mongoClient.Database(cfg.MongoDB), logger)

	conn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()
	rabbitPub, err := rabbit.NewPublisher(conn)
	if err != nil {
		log.Fatalf("failed to create publisher: %v", err)
	}

	pub := events.NewPublisher(watcher, rabbitPub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown watcher ...")
		cancel()
	}()

	if err := pub.Run(ctx); err != nil && err != context.Canceled {
		log.Fatalf("watcher stopped: %v", err)
	}
	logger.Info("Watcher exiting")
}
