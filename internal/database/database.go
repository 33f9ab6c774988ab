package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/glebarez/sqlite"
	"github.com/jon4hz/quotevault/internal/stream"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var _ DB = (*Client)(nil) // Ensure Client implements DB

// ErrNotFound is returned when a single row lookup matches nothing.
var ErrNotFound = gorm.ErrRecordNotFound

// Client wraps the gorm.DB instance and announces table changes to watchers.
type Client struct {
	db      *gorm.DB
	changes *stream.Broker
}

// New opens the local cache at dbpath and migrates the schema.
func New(dbpath string) (*Client, error) {
	if dir := filepath.Dir(dbpath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := dbpath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(
			log.Default().WithPrefix("gorm").StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel}),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&Quote{},
		&Category{},
		&Favorite{},
		&Collection{},
		&CollectionQuote{},
		&Preference{},
		&Session{},
		&PushSubscription{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db, changes: stream.NewBroker()}, nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Watch returns a channel that receives a signal after every committed write to one of tables.
// Signals are coalesced, a slow reader sees at most one pending signal.
func (c *Client) Watch(tables ...string) (<-chan struct{}, func()) {
	return c.changes.Watch(tables...)
}

// replace inserts rows, replacing any row that collides on a primary key or unique index.
func replace(tx *gorm.DB, rows any) error {
	return tx.Clauses(clause.Insert{Modifier: "OR REPLACE"}).Create(rows).Error
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
