package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/DuongTranDang1004/SEPM/internal/auth"
	"github.com/DuongTranDang1004/SEPM/internal/config"
	"github.com/DuongTranDang1004/SEPM/internal/handlers"
	"github.com/DuongTranDang1004/SEPM/internal/logger"
	"github.com/DuongTranDang1004/SEPM/internal/media"
	"github.com/DuongTranDang1004/SEPM/internal/middleware"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/notify"
	mongorepo "github.com/DuongTranDang1004/SEPM/internal/repository/mongo"
	"github.com/DuongTranDang1004/SEPM/internal/services"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Env == "development")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("mongo indexes: %v", err)
	}
	repos := mongorepo.New(db)

	// blob store: S3 when a bucket is configured, in-memory otherwise
	var blobs interface {
		storage.BlobStore
		storage.Signer
	}
	if cfg.S3.Bucket != "" {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3.Region, cfg.S3.Bucket, cfg.S3.Endpoint)
		if err != nil {
			log.Fatalf("s3 init: %v", err)
		}
		blobs = s3Store
	} else {
		log.Warn("no s3 bucket configured, keeping uploads in memory")
		blobs = storage.NewMemoryStore(fmt.Sprintf("http://localhost:%d/blobs", cfg.App.Port))
	}
	coord := media.NewCoordinator(blobs, log)

	// push transports
	hub := notify.NewHub(log)
	var sink notify.Sink = hub
	var kafkaSink *notify.KafkaSink
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink = notify.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		sink = notify.MultiSink{hub, kafkaSink}
	}

	tokens := auth.NewManager(cfg.JWT.Secret, cfg.TokenTTL)

	authSvc := services.NewAuthService(repos.Tenants, repos.Landlords, repos.Accounts, coord, tokens, log)
	accountSvc := services.NewAccountService(repos.Accounts, log)
	swipeSvc := services.NewSwipeService(repos.Tenants, repos.Swipes, repos.Matches, repos.Conversations, sink, log)
	tenantSvc := services.NewTenantService(repos.Tenants, repos.Rooms, repos.Bookmarks, coord, log)
	landlordSvc := services.NewLandlordService(repos.Landlords, repos.Rooms, coord, log)
	roomSvc := services.NewRoomService(repos.Rooms)
	convSvc := services.NewConversationService(repos.Conversations, repos.Messages, repos.Accounts, coord, sink, log)

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    120 * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	api := app.Group("/api/v1")
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()
		limiter := middleware.NewRateLimiter(rdb, "rl", cfg.Redis.RateLimit, cfg.RateWindow, log)
		api.Use(limiter.ByUser())
	}

	handlers.NewAuthHandler(authSvc, log).Register(api)

	authed := api.Group("", middleware.Auth(tokens))
	handlers.NewAccountHandler(accountSvc, log).Register(authed)
	handlers.NewRoomHandler(roomSvc, log).Register(authed)
	handlers.NewConversationHandler(convSvc, log).Register(authed)
	handlers.NewMediaHandler(blobs, cfg.PresignTTL, cfg.S3.PublicRead, log).Register(authed)

	tenantOnly := authed.Group("", middleware.RequireRole(models.RoleTenant))
	handlers.NewTenantHandler(tenantSvc, swipeSvc, log).Register(tenantOnly)

	landlordOnly := authed.Group("", middleware.RequireRole(models.RoleLandlord))
	handlers.NewLandlordHandler(landlordSvc, log).Register(landlordOnly)

	handlers.NewWSHandler(hub, tokens, log).Register(app)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		log.Infof("listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown requested")

	timeoutCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()
	_ = app.Shutdown()
	_ = mc.Disconnect(timeoutCtx)
	if kafkaSink != nil {
		_ = kafkaSink.Close()
	}
	log.Info("shutdown completed")
}
