package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/ornakala-backend/config"
	"github.com/oksasatya/ornakala-backend/internal/container"
	"github.com/oksasatya/ornakala-backend/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/ornakala-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/ornakala-backend/internal/infrastructure/redisstore"
	"github.com/oksasatya/ornakala-backend/internal/interface/middleware"
	"github.com/oksasatya/ornakala-backend/internal/router"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
	"github.com/oksasatya/ornakala-backend/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Postgres via gorm for repositories
	db, err := pginfra.Connect(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife, logger)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	sqlDB, _ := db.DB()
	defer func() { _ = sqlDB.Close() }()

	if err := pginfra.RunMigrations(db, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Raw pgx pool for the audit log
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.AppName, 4, 1, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to open audit pool: %v", err)
	}
	defer pool.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetDB(db)
	container.SetPGPool(pool)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, cfg.PasswordResetTTL))
	container.SetHasher(helpers.NewPasswordHasher(cfg.BcryptCost))

	// Redis backs the token denylist; without it logout falls back to an in-process list.
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if cfg.TokenDenylistEnabled {
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable; using in-memory token denylist")
			container.SetDenylist(memory.NewDenylist())
		} else {
			container.SetRedis(rdb)
			container.SetDenylist(redisstore.NewDenylist(rdb))
		}
	}

	// GCS for KYC documents (optional)
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("gcs init failed; kyc document upload disabled")
		} else {
			defer func() { _ = gcsClient.Close() }()
			container.SetGCS(gcsClient)
		}
	}

	// RabbitMQ publisher for notification emails (optional)
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq init failed; notification emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Elasticsearch for user search (optional)
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch init failed; search disabled")
		} else {
			if err := helpers.EnsureUsersIndex(ctx, es, cfg.ESUsersIndex); err != nil {
				logger.WithError(err).Warn("ensure users index failed")
			}
			container.SetES(es)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	reg.AddHealthCheck("postgres", func(ctx context.Context) error { return sqlDB.PingContext(ctx) })
	if container.GetRedis() != nil {
		reg.AddHealthCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	router.InitModules(reg, router.BuildDeps())
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
