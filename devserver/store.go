// Package devserver is a development fixture for the GastroCore backend:
// a gin server over a gorm store that reproduces the backend's observable
// API contract, including the timeclock transition rules, so client
// surfaces can be built and tested without the production system.
package devserver

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects the fixture store. An empty dsn opens a local sqlite file;
// ":memory:" keeps everything in-process for tests; a DSN containing
// "@tcp(" is treated as MySQL. The schema is migrated on every open.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		dsn = "gastrocore-dev.db"
	}

	var dialector gorm.Dialector
	if strings.Contains(dsn, "@tcp(") {
		dialector = mysql.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening fixture store: %w", err)
	}

	if err := db.AutoMigrate(
		&Session{},
		&SessionBreak{},
		&Reservation{},
		&Absence{},
		&Shift{},
		&Document{},
		&DocumentAck{},
		&EventBooking{},
		&ImportBatch{},
		&ImportRecord{},
		&Backup{},
	); err != nil {
		return nil, fmt.Errorf("migrating fixture schema: %w", err)
	}

	return &Store{DB: db}, nil
}

// Store wraps the fixture database handle.
type Store struct {
	DB *gorm.DB
}
