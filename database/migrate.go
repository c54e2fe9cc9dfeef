package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tfl_backend/internal/config"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/models"
)

// Connect opens the database selected by cfg.Database.Driver
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  logger.NewGormLogger(200 * time.Millisecond),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		// one writer at a time; the busy timeout covers readers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

func dialectorFor(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case "postgres":
		return postgres.Open(cfg.Database.DSN), nil
	case "mysql":
		return mysql.Open(cfg.Database.DSN), nil
	case "sqlite", "":
		path, err := SQLitePath(cfg)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(SQLiteDSN(path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// SQLitePath resolves the database file: DATABASE_PATH, then /tmp in
// production, then ./data for local development.
func SQLitePath(cfg *config.Config) (string, error) {
	if cfg.Database.Path != "" {
		return cfg.Database.Path, nil
	}
	if cfg.IsProduction() {
		return "/tmp/reservation.db", nil
	}
	dir := filepath.Join(".", "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	return filepath.Join(dir, "reservation.db"), nil
}

// SQLiteDSN enables foreign keys (needed for cascades) and a busy timeout
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=1&_busy_timeout=5000", path)
}

// AutoMigrate creates or updates every table
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Signup{},
		&models.Notice{},
		&models.NoticeDismissal{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
