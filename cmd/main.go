package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/registration/internal/address"
	"github.com/eaglebank/registration/internal/command"
	"github.com/eaglebank/registration/internal/config"
	"github.com/eaglebank/registration/internal/gateway"
	"github.com/eaglebank/registration/internal/handler"
	"github.com/eaglebank/registration/internal/notification"
	"github.com/eaglebank/registration/internal/query"
	"github.com/eaglebank/registration/internal/repository"
	"github.com/eaglebank/registration/shared/events"
	"github.com/eaglebank/registration/shared/middleware"
	redisClient "github.com/eaglebank/registration/shared/redis"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis connection (event stream + optional user store)
	var redis *redisClient.Client
	if cfg.NeedsRedis() {
		redis, err = redisClient.NewClient(ctx, cfg.RedisAddr, "", 0)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redis.Close()
	}

	var store repository.UserStore
	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
		pgRepo := repository.NewPostgresUserRepository(db)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}
		store = pgRepo
	case config.StoreRedis:
		store = repository.NewRedisUserRepository(redis.Client)
	default:
		store = repository.NewInMemoryUserRepository()
	}

	// --- notification wiring ---
	deps := notification.ChannelDeps{Logger: log.Default()}
	if redis != nil {
		deps.Publisher = events.NewPublisher(redis.Client)
	}

	hubKinds, _ := cfg.HubChannelKinds()
	hub, err := notification.SetupHub(hubKinds, deps)
	if err != nil {
		log.Fatalf("Failed to set up notification hub: %v", err)
	}

	directKind, _ := cfg.DirectChannelKind()
	direct, err := notification.NewChannel(directKind, deps)
	if err != nil {
		log.Fatalf("Failed to set up direct notification channel: %v", err)
	}
	log.Printf("Notification hub channels=%v, direct channel=%s", hubKinds, directKind)

	resolver := address.NewResolver(
		gateway.NewCorreiosGateway(cfg.PrimaryUnknownCodes...),
		gateway.NewMyCepGateway(cfg.SecondaryUnknownCodes...),
	)

	commandSvc := command.NewRegistrationCommandService(store, resolver, hub, direct)
	querySvc := query.NewUserQueryService(store)

	userHandler := handler.NewUserHandler(commandSvc, querySvc)

	// Setup router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggingMiddleware())
	userHandler.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "store": cfg.StoreBackend})
	})

	if cfg.StreamEvents {
		go func() {
			subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
				Group:    cfg.EventGroup,
				Consumer: cfg.EventConsumer,
				Stream:   events.UserEventsStream,
				Handler:  commandSvc.HandleUserEvent,
			})
			if err := subscriber.Start(ctx); err != nil {
				log.Printf("Subscriber stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Printf("Registration service starting on port %s (store=%s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
