// Package data stores which location each widget shows.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/spencer-p/tidewidget/pkg/tidefeed"
)

// ErrNoLocation is returned for widgets that have no saved location.
var ErrNoLocation = errors.New("no location saved for widget")

// Widget is a widget instance and the location it was configured with.
type Widget struct {
	ID           uint   `gorm:"primaryKey"`
	WidgetID     string `gorm:"uniqueIndex;size:64;not null"`
	LocationID   string `gorm:"size:32;not null"`
	LocationName string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (w Widget) Location() tidefeed.Location {
	return tidefeed.Location{ID: w.LocationID, Name: w.LocationName}
}

// Open connects to the database and migrates the schema. driver is
// "postgres" or "sqlite".
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		// In-memory databases are per connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&Widget{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return db, nil
}

// Store saves widget locations.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SaveLocation associates loc with widgetID, replacing any previous one.
func (s *Store) SaveLocation(ctx context.Context, widgetID string, loc tidefeed.Location) error {
	w := Widget{
		WidgetID:     widgetID,
		LocationID:   loc.ID,
		LocationName: loc.Name,
	}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "widget_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"location_id", "location_name", "updated_at"}),
	}).Create(&w)
	if tx.Error != nil {
		return fmt.Errorf("saving location of widget %q: %w", widgetID, tx.Error)
	}
	return nil
}

// GetLocation returns the location saved for widgetID or ErrNoLocation.
func (s *Store) GetLocation(ctx context.Context, widgetID string) (tidefeed.Location, error) {
	var w Widget
	tx := s.db.WithContext(ctx).Where("widget_id = ?", widgetID).Limit(1).Find(&w)
	if tx.Error != nil {
		return tidefeed.Location{}, fmt.Errorf("looking up widget %q: %w", widgetID, tx.Error)
	}
	if tx.RowsAffected == 0 {
		return tidefeed.Location{}, ErrNoLocation
	}
	return w.Location(), nil
}

// DeleteLocation forgets widgetID. Deleting an unknown widget is not an
// error.
func (s *Store) DeleteLocation(ctx context.Context, widgetID string) error {
	tx := s.db.WithContext(ctx).Where("widget_id = ?", widgetID).Delete(&Widget{})
	if tx.Error != nil {
		return fmt.Errorf("deleting widget %q: %w", widgetID, tx.Error)
	}
	return nil
}

// ListWidgets returns all configured widgets ordered by widget ID.
func (s *Store) ListWidgets(ctx context.Context) ([]Widget, error) {
	var widgets []Widget
	if err := s.db.WithContext(ctx).Order("widget_id").Find(&widgets).Error; err != nil {
		return nil, fmt.Errorf("listing widgets: %w", err)
	}
	return widgets, nil
}
