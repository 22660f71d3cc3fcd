// Package db opens the gorm connection backing every store
package db

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/model"
	"bitwise74/medflow-api/pkg/util"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func New(c *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch c.Database.Driver {
	case "postgres":
		dialector = postgres.Open(c.Database.DSN)
	case "sqlite":
		// Inside a container the sqlite file must live on a mounted volume,
		// otherwise it is lost with the container
		if util.InContainer() {
			if _, err := os.Stat(filepath.Dir(c.Database.DSN)); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("directory of %s is not mounted, please use a docker volume", c.Database.DSN)
			}
		}

		dialector = sqlite.Open(c.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	db, err := Open(dialector, logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  !c.Production(),
		},
	))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", c.Database.Driver, err)
	}

	return db, nil
}

// Open connects through an already built dialector and migrates every model.
// Tests use it with an in-memory sqlite database.
func Open(dialector gorm.Dialector, l logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         l,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		model.User{},
		model.Device{},
		model.Symptom{},
		model.Category{},
		model.Note{},
		model.Question{},
		model.QuickTip{},
		model.Tip{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
