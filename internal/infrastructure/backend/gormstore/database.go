package gormstore

import (
	"fmt"
	"time"

	"github.com/saradorri/tournamenthub/internal/config"
	"github.com/saradorri/tournamenthub/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns the gorm connection pool
type Database struct {
	db *gorm.DB
}

// NewDatabase opens a pooled postgres connection
func NewDatabase(cfg *config.Config) (*Database, error) {
	return Open(cfg.GetDSN(), cfg.Database)
}

// Open connects with an explicit DSN and applies the pool settings of dbCfg
func Open(dsn string, dbCfg config.DatabaseConfig) (*Database, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	return &Database{db: db}, nil
}

// GetDB returns the gorm handle
func (d *Database) GetDB() *gorm.DB {
	return d.db
}

// AutoMigrate creates the tables for local development. Deployments run
// the SQL migrations instead.
func (d *Database) AutoMigrate() error {
	return d.db.AutoMigrate(
		&domain.User{},
		&domain.Tournament{},
		&domain.Transaction{},
		&domain.Notification{},
		&domain.AppSettings{},
		&domain.Credential{},
	)
}

// Close releases the pool
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
