package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"-"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	Revoked    bool       `gorm:"default:false" json:"revoked"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	KeyID          uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date           string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount   int    `gorm:"default:0" json:"request_count"`
	TotalEmployees int    `gorm:"default:0" json:"total_employees"`
	TotalShifts    int    `gorm:"default:0" json:"total_shifts"`
	Infeasible     int    `gorm:"default:0" json:"infeasible"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScheduleRun represents the schedule_runs table: one row per solve request
type ScheduleRun struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	KeyID         uint      `gorm:"index" json:"key_id"`
	Status        string    `gorm:"not null" json:"status"`
	Employees     int       `json:"employees"`
	Shifts        int       `json:"shifts"`
	Shortfalls    int       `json:"shortfalls"`
	Nodes         int       `json:"nodes"`
	Backtracks    int       `json:"backtracks"`
	DurationMs    int64     `json:"duration_ms"`
	FairnessScore float64   `json:"fairness_score"`
	ExportKey     string    `json:"export_key,omitempty"`
	Result        string    `gorm:"type:text" json:"-"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}

// NewRunID returns a fresh identifier for a ScheduleRun
func NewRunID() string {
	return uuid.NewString()
}

// Config selects the database: postgres when URL is set, otherwise a sqlite file
type Config struct {
	URL  string
	Path string
}

// InitDB initializes the database connection and migrates the schema
func InitDB(cfg Config) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	gormCfg := &gorm.Config{Logger: logger.New(log.New(os.Stderr, "", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})}
	if cfg.URL != "" {
		gormCfg.PrepareStmt = false
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		}), gormCfg)
	} else {
		path := cfg.Path
		if path == "" {
			path = "scheduler.db"
		}
		db, err = gorm.Open(sqlite.Open(path), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &ScheduleRun{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}
