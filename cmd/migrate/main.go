package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/BongoShiny/agenda-pro-new-sub001/internal/config"
	"github.com/BongoShiny/agenda-pro-new-sub001/migrations"
	"github.com/BongoShiny/agenda-pro-new-sub001/pkg/logger"
)

// Использование:
//
//	migrate            применить все миграции
//	migrate down       откатить одну миграцию
//	migrate force N    принудительно выставить версию N
//	migrate version    показать текущую версию
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithWriter(os.Stdout, cfg.Logs.Level)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		log.Fatal("ping db: %v", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("db driver: %v", err)
	}

	srcDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal("source driver: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		log.Fatal("create migrator: %v", err)
	}
	defer func() { _, _ = m.Close() }()

	command := "up"
	if len(os.Args) >= 2 {
		command = os.Args[1]
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("migrate up: %v", err)
		}
		log.Info("migrations complete")

	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal("migrate down: %v", err)
		}
		log.Info("rolled back one migration")

	case "force":
		if len(os.Args) < 3 {
			log.Fatal("force requires a version")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal("invalid version: %v", err)
		}
		if err := m.Force(version); err != nil {
			log.Fatal("force version: %v", err)
		}
		log.Info("forced version to %d", version)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("no migrations applied")
			return
		}
		if err != nil {
			log.Fatal("read version: %v", err)
		}
		log.Info("version=%d dirty=%t", version, dirty)

	default:
		log.Fatal("unknown command %q, expected up, down, force or version", command)
	}
}
