package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"waterdelivery/cmd"
	httpadapter "waterdelivery/internal/adapters/in/http"
	"waterdelivery/internal/adapters/out/postgres"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	gormDB := mustGormOpen(configs)
	if configs.DBAutoMigrate {
		if err = postgres.Migrate(gormDB); err != nil {
			log.Fatalf("Error migrating database: %v", err)
		}
	}

	redisClient := mustRedisClient(configs)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)
	startWebServer(app, configs.HTTPPort, logger)
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

// mustRedisClient returns nil when REDIS_ADDR is not set.
func mustRedisClient(configs cmd.Config) *redis.Client {
	if configs.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	return client
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	server := httpadapter.NewServer(app.HTTPHandlers(), logger)
	e, err := httpadapter.NewRouter(server, logger)
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()
	logger.Info("Server started", "port", port)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Pending notifications were dropped", "error", err)
	}
}
