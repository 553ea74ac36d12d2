// Package journal persists vehicle notifications through gorm
package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lixenwraith/vi-garage/core"
)

const instrumentationName = "github.com/lixenwraith/vi-garage/journal"

// ErrClosed is returned by operations on a closed journal
var ErrClosed = errors.New("journal closed")

// Entry is one recorded vehicle notification
type Entry struct {
	ID        uint   `gorm:"primaryKey"`
	Frame     int64  `gorm:"index"`
	Event     string `gorm:"size:64;index"`
	Vehicle   uint64 `gorm:"index"`
	Driver    uint64
	Detail    string `gorm:"size:255"`
	CreatedAt time.Time
}

// TableName pins the table name independent of gorm pluralisation
func (Entry) TableName() string {
	return "vehicle_journal"
}

// Config selects the storage backend
type Config struct {
	Driver string // sqlite (default) or postgres
	DSN    string
}

// Journal is an append-only store of vehicle events
type Journal struct {
	mu     sync.Mutex
	db     *gorm.DB
	closed bool
	log    zerolog.Logger

	recorded metric.Int64Counter
	failed   metric.Int64Counter
}

// Open connects to the configured backend and migrates the schema
func Open(cfg Config, log zerolog.Logger) (*Journal, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unknown journal driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	j := &Journal{db: db, log: log}

	// Global meter is a no-op until a provider is installed
	m := otel.Meter(instrumentationName)
	j.recorded, err = m.Int64Counter(
		"journal.entries.recorded",
		metric.WithDescription("Vehicle journal entries written"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recorded counter: %w", err)
	}
	j.failed, err = m.Int64Counter(
		"journal.entries.failed",
		metric.WithDescription("Vehicle journal writes that failed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	log.Info().Str("driver", dialector.Name()).Msg("Vehicle journal opened")
	return j, nil
}

// Record appends an entry
func (j *Journal) Record(ctx context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrClosed
	}

	attrs := metric.WithAttributes(attribute.String("event", e.Event))
	if err := j.db.WithContext(ctx).Create(&e).Error; err != nil {
		j.failed.Add(ctx, 1, attrs)
		return fmt.Errorf("record %s: %w", e.Event, err)
	}
	j.recorded.Add(ctx, 1, attrs)
	return nil
}

// ForVehicle returns the entries of one vehicle in insertion order
func (j *Journal) ForVehicle(ctx context.Context, vehicle uint64) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil, ErrClosed
	}

	var out []Entry
	if err := j.db.WithContext(ctx).Where("vehicle = ?", vehicle).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("query vehicle %d: %w", vehicle, err)
	}
	return out, nil
}

// Count returns the total number of entries
func (j *Journal) Count(ctx context.Context) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return 0, ErrClosed
	}

	var n int64
	if err := j.db.WithContext(ctx).Model(&Entry{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Close releases the connection; further calls return ErrClosed
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true

	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecordVehicleEvent appends one vehicle notification using a background context
func (j *Journal) RecordVehicleEvent(frame int64, name string, vehicle, driver core.Entity, detail string) error {
	return j.Record(context.Background(), Entry{
		Frame:   frame,
		Event:   name,
		Vehicle: uint64(vehicle),
		Driver:  uint64(driver),
		Detail:  detail,
	})
}
