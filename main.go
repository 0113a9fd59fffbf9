package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coastal-realty/config"
	"coastal-realty/handlers"
	"coastal-realty/middleware"
	"coastal-realty/services"
	"coastal-realty/store"
	"coastal-realty/utils/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to YAML config file")
	seed := flag.Bool("seed-mongo", false, "copy the file dataset into MongoDB and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()
	middleware.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *seed {
		if err := seedMongo(ctx, cfg, log); err != nil {
			log.Fatal("Seeding MongoDB failed", logger.Error(err))
		}
		return
	}

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to load content", logger.Error(err))
	}
	log.Info("Content loaded", logger.String("source", cfg.Content.Source), logger.Any("counts", ds.Stats().Counts))

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(reg)

	mailer := services.NewMailer(cfg.Email.APIKey, log)
	deps := handlers.Deps{
		Dataset:    ds,
		Properties: services.NewPropertyService(ds),
		Content:    services.NewContentService(ds),
		Leads:      services.NewLeadService(mailer, cfg.Email.FromAddress, cfg.Email.OperatorAddress, metrics, log),
		Throttle:   services.NewLeadThrottle(rdb, cfg.Leads.RateLimit, cfg.Leads.RateWindow),
		Sitemap:    services.NewSitemapService(ds, cfg.BaseURL, rdb, log),
		Metrics:    metrics,
		Gatherer:   reg,
		Origins:    cfg.AllowedOrigins,
		Log:        log,
	}
	if cfg.AdminEnabled() {
		deps.Auth = services.NewAuthService(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)
		deps.JWTSecret = cfg.Admin.JWTSecret
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Shutdown failed", logger.Error(err))
		}
	}()

	log.Info("Server starting", logger.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server failed", logger.Error(err))
	}
	log.Info("Server stopped")
}

func loadDataset(ctx context.Context, cfg *config.Config) (*store.Dataset, error) {
	if cfg.Content.Source != config.SourceMongo {
		return store.NewFileSource(cfg.Content.DataDir).Load(ctx)
	}
	src, err := store.NewMongoSource(ctx, cfg.Content.MongoURI, cfg.Content.MongoDatabase)
	if err != nil {
		return nil, err
	}
	defer src.Close(context.Background())
	return src.Load(ctx)
}

func seedMongo(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	ds, err := store.NewFileSource(cfg.Content.DataDir).Load(ctx)
	if err != nil {
		return err
	}
	src, err := store.NewMongoSource(ctx, cfg.Content.MongoURI, cfg.Content.MongoDatabase)
	if err != nil {
		return err
	}
	defer src.Close(context.Background())

	counts, err := store.SeedMongo(ctx, src.Database(), ds)
	if err != nil {
		return err
	}
	log.Info("Seeded MongoDB", logger.String("database", cfg.Content.MongoDatabase), logger.Any("inserted", counts))
	return nil
}

// connectRedis returns nil when Redis is not configured or unreachable; the
// lead throttle and sitemap cache then run without it.
func connectRedis(ctx context.Context, cfg *config.Config, log logger.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Info("Redis not configured, throttle and sitemap cache disabled")
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, continuing without it", logger.String("addr", cfg.Redis.Addr), logger.Error(err))
		_ = rdb.Close()
		return nil
	}
	return rdb
}
