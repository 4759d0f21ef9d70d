package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/ornakala-backend/config"
	"github.com/oksasatya/ornakala-backend/internal/application"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	pginfra "github.com/oksasatya/ornakala-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	db, err := pginfra.Connect(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife, logger)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	sqlDB, _ := db.DB()
	defer func() { _ = sqlDB.Close() }()

	if err := pginfra.RunMigrations(db, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	email := getenv("SEED_EMAIL", "demo@ornakala.dev")
	password := getenv("SEED_PASSWORD", "password123")
	first, last := "Demo", "User"

	users := pginfra.NewUserRepository(db)
	signup := application.NewSignupService(users, helpers.NewPasswordHasher(cfg.BcryptCost), logger)
	u, err := signup.Register(ctx, email, password, application.WithNames(&first, &last))
	switch {
	case errors.Is(err, application.ErrEmailAlreadyRegistered), errors.Is(err, repo.ErrDuplicateEmail):
		fmt.Printf("seed user already exists: email=%s\n", email)
		return
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	}

	// Mark the demo account verified so it behaves like a real onboarded user.
	if _, err := application.NewUserService(users, logger, nil, "", nil).MarkVerified(ctx, u.ID); err != nil {
		log.Fatalf("failed to verify seed user: %v", err)
	}
	fmt.Println(seededLine(u))
}

// seededLine reports what was created. The password never leaves the process.
func seededLine(u *entity.User) string {
	return fmt.Sprintf("seeded user: id=%s email=%s", u.ID, u.Email)
}
