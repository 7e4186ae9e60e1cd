package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/audit"
	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-sales/internal/db"
	"github.com/BruksfildServices01/barber-sales/internal/infra/repository"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	"github.com/BruksfildServices01/barber-sales/internal/routes"
	"github.com/BruksfildServices01/barber-sales/internal/server"
	"github.com/BruksfildServices01/barber-sales/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barber-sales/internal/usecase/account"
	"github.com/BruksfildServices01/barber-sales/internal/validators"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	if !timezone.IsValid(cfg.App.Timezone) {
		log.Warn("unknown timezone, using default",
			zap.String("timezone", cfg.App.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}

	db, err := dbpkg.Open(cfg.DB)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = dbpkg.Close(db) }()
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	if err := dbpkg.Migrate(ctx, db, log); err != nil {
		cancel()
		log.Fatal("migrate", zap.Error(err))
	}

	created, err := ucAccount.EnsureAdmin(
		ctx,
		repository.NewAccountGormRepository(db),
		auth.NewHasher(cfg.Auth.BcryptCost),
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
	)
	cancel()
	if err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		log.Warn("bootstrap admin created; change its password", zap.String("username", cfg.Auth.AdminUsername))
	}

	// --------------------------------------------------
	// Optional infra: token revocation + audit fan-out
	// --------------------------------------------------
	revocations := newRevocationStore(cfg.Redis, log)

	sinks := []audit.Sink{audit.New(db)}
	if cfg.AMQP.URL != "" {
		pub, err := audit.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Warn("amqp unavailable, audit stays local", zap.Error(err))
		} else {
			defer pub.Close()
			sinks = append(sinks, pub)
			log.Info("audit events published", zap.String("queue", cfg.AMQP.Queue))
		}
	}
	dispatcher := audit.NewDispatcher(log, sinks...)

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	validators.Init()

	r := server.NewEngine(log, cfg.IsProduction())
	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         log,
		Audit:       dispatcher,
		Revocations: revocations,
	})

	srv := server.BuildServer(cfg.HTTP, cfg.Addr(), r)

	go func() {
		log.Info("http starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	dispatcher.Close()
	log.Info("server stopped gracefully")
}

// newRevocationStore prefers Redis so logouts hold across instances and
// restarts; without it revocations live in process memory.
func newRevocationStore(cfg config.Redis, log *zap.Logger) auth.RevocationStore {
	if cfg.Addr == "" {
		return auth.NewMemoryRevocations()
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, revocations kept in memory", zap.Error(err))
		_ = rdb.Close()
		return auth.NewMemoryRevocations()
	}
	log.Info("redis connected", zap.String("addr", cfg.Addr))
	return auth.NewRedisRevocations(rdb)
}
