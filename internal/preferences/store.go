// Package preferences persists the player's last-used carries and bearing
// and the round in progress.
package preferences

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitts-dev/weather-caddie/pkg/database"
)

const recordKey = "wc_prefs"

// ErrNoActiveRound is returned when no round has been started.
var ErrNoActiveRound = errors.New("no active round")

// Store reads and writes preferences and rounds.
type Store struct {
	db *database.DB
}

// NewStore creates a store and migrates its tables.
func NewStore(db *database.DB) (*Store, error) {
	if err := db.AutoMigrate(&Preferences{}, &ActiveRound{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences: %w", err)
	}
	return &Store{db: db}, nil
}

// Load returns the saved preferences, or an empty record when none exist.
func (s *Store) Load(ctx context.Context) (*Preferences, error) {
	var p Preferences
	err := s.db.WithContext(ctx).Where(&Preferences{Key: recordKey}).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Preferences{Key: recordKey}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &p, nil
}

// Save replaces the preferences record.
func (s *Store) Save(ctx context.Context, p *Preferences) error {
	p.Key = recordKey
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// SaveRound stores a new round; the most recent one is the active round.
func (s *Store) SaveRound(ctx context.Context, r *ActiveRound) error {
	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	return nil
}

// ActiveRound returns the most recently started round.
func (s *Store) ActiveRound(ctx context.Context) (*ActiveRound, error) {
	var r ActiveRound
	err := s.db.WithContext(ctx).Order("started_at desc").First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveRound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load active round: %w", err)
	}
	return &r, nil
}
