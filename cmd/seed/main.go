package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-sales/internal/auth"
	"github.com/BruksfildServices01/barber-sales/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-sales/internal/db"
	"github.com/BruksfildServices01/barber-sales/internal/infra/repository"
	"github.com/BruksfildServices01/barber-sales/internal/logger"
	ucAccount "github.com/BruksfildServices01/barber-sales/internal/usecase/account"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults to CONFIG_PATH)")
	clearBarbers := flag.Bool("clear-barbers", false, "delete all visits, barber accounts and barbers")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	db, err := dbpkg.Open(cfg.DB)
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	defer func() { _ = dbpkg.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := dbpkg.Migrate(ctx, db, log); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	if *clearBarbers {
		if err := dbpkg.ClearBarbers(ctx, db); err != nil {
			log.Fatal("clear barbers", zap.Error(err))
		}
		log.Info("barbers, barber accounts and visits removed")
		return
	}

	created, err := ucAccount.EnsureAdmin(
		ctx,
		repository.NewAccountGormRepository(db),
		auth.NewHasher(cfg.Auth.BcryptCost),
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
	)
	if err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}
	if created {
		log.Info("admin account created", zap.String("username", cfg.Auth.AdminUsername))
	}

	n, err := dbpkg.SeedServices(ctx, db)
	if err != nil {
		log.Fatal("seed services", zap.Error(err))
	}
	log.Info("seed complete", zap.Int("services_added", n))
}
