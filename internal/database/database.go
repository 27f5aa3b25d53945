package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dreamspell/dreamspell/internal/config"
)

// implements usecase.Repository
type service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(logger *slog.Logger) (*service, error) {
	var (
		database = os.Getenv(config.ENV_KEY_DB_DATABASE)
		password = os.Getenv(config.ENV_KEY_DB_PASSWORD)
		username = os.Getenv(config.ENV_KEY_DB_USER)
		port     = os.Getenv(config.ENV_KEY_DB_PORT)
		host     = os.Getenv(config.ENV_KEY_DB_HOST)
	)

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", username, password, host, port, database)
	gormDB, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: NewSlogGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if m, err := strconv.Atoi(os.Getenv(config.ENV_KEY_DB_MAX_OPEN_CONNECTIONS)); err == nil {
		db.SetMaxOpenConns(m)
	}

	if err := gormDB.AutoMigrate(
		User{},
		Glyph{},
		Tone{},
		Kin{},
	); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	s := &service{db: gormDB, logger: logger}
	if err := s.seedAdminUser(); err != nil {
		return nil, err
	}
	return s, nil
}

// seedAdminUser creates the initial admin account on an empty users table so
// the login gate is usable on first boot. Controlled by ADMIN_PASSWORD.
func (s *service) seedAdminUser() error {
	pw := os.Getenv(config.ENV_KEY_ADMIN_PASSWORD)
	if pw == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.logger.Info("seeding admin user")
	return s.db.Create(&User{Name: "admin", Password: string(hash)}).Error
}

// Health checks the health of the database connection by pinging the
// database and reports pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	db, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	if err := db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	dbStats := db.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	s.logger.Info("disconnecting from database")
	return db.Close()
}
