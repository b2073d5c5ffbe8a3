package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/app"
	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/infrastructure/auth"
	"github.com/saradorri/tournamenthub/internal/infrastructure/backend/gormstore"
	"github.com/saradorri/tournamenthub/internal/infrastructure/lock"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"github.com/saradorri/tournamenthub/internal/infrastructure/seeder"
	"github.com/spf13/viper"
)

func main() {
	var (
		configPath    = flag.String("config", "./config", "Path to config directory")
		configFile    = flag.String("env", "development", "Environment")
		adminEmail    = flag.String("admin-email", "admin@example.com", "Admin account email")
		adminPassword = flag.String("admin-password", "admin123", "Admin account password")
		withDemo      = flag.Bool("demo", true, "Also seed a demo player, tournaments and a welcome notification")
	)
	flag.Parse()

	cfg, err := app.LoadConfig(viper.New(), *configPath, *configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatalf("jwt.secret is required to seed local accounts")
	}

	db, err := gormstore.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	b := gormstore.New(db)
	clock := clockwork.NewRealClock()
	jwt := auth.NewJWTService(&cfg.JWT, clock)
	appLogger := logger.NewLogger(config.GetEnvironment(), cfg.Log.Level)
	provider := auth.NewLocalProvider(b.Credentials, b.Users, jwt, lock.NewManager(lock.DefaultTimeout, appLogger), clock, false, appLogger)

	newSeeder := seeder.NewSeeder(provider, seeder.Repositories{
		Users:         b.Users,
		Tournaments:   b.Tournaments,
		Notifications: b.Notifications,
		Settings:      b.Settings,
		Credentials:   b.Credentials,
	}, clock)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	accounts := []seeder.Account{
		{Email: *adminEmail, Password: *adminPassword, Name: "Administrator", InGameName: "HubAdmin", Admin: true},
	}
	if *withDemo {
		accounts = append(accounts, seeder.Account{Email: "player@example.com", Password: "player123", Name: "Demo Player", InGameName: "DemoFF"})
	}

	log.Println("Starting database seeding...")
	if err := newSeeder.SeedSettings(ctx); err != nil {
		log.Fatalf("Failed to seed settings: %v", err)
	}
	if err := newSeeder.SeedAccounts(ctx, accounts); err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}
	if *withDemo {
		if err := newSeeder.SeedTournaments(ctx); err != nil {
			log.Fatalf("Failed to seed tournaments: %v", err)
		}
		if err := newSeeder.SeedWelcome(ctx); err != nil {
			log.Fatalf("Failed to seed notifications: %v", err)
		}
	}
	log.Println("Database seeding completed successfully")
}
