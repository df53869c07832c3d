// Package store persists fortresses in SQLite through GORM. A Store
// satisfies fortress.FortressStore.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/phanxgames/fortress"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fortress is one saved fortress row. The piece list is kept as a JSON
// column in the persisted record shape.
type Fortress struct {
	Owner     int            `gorm:"primaryKey;autoIncrement:false"`
	Pieces    datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (*Fortress) TableName() string { return "fortresses" }

// Store is a FortressStore backed by a SQLite database.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

var _ fortress.FortressStore = (*Store)(nil)

// Open opens (creating if needed) the database at path. An empty path uses
// a private in-memory database that lives until Close.
func Open(path string, log zerolog.Logger) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = fmt.Sprintf("file:fortress-%s?mode=memory&cache=shared", uuid.NewString())
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writes.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Fortress{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate fortresses: %w", err)
	}

	if path == "" {
		log.Info().Msg("Using in-memory SQLite fortress store")
	} else {
		log.Info().Str("path", path).Msg("Using SQLite fortress store")
	}
	return &Store{db: db, log: log}, nil
}

// Save writes rec, replacing the owner's previous fortress.
func (s *Store) Save(ctx context.Context, rec fortress.Record) error {
	pieces := rec.Pieces
	if pieces == nil {
		pieces = []fortress.PieceRecord{}
	}
	data, err := json.Marshal(pieces)
	if err != nil {
		return fmt.Errorf("encode pieces: %w", err)
	}
	row := Fortress{Owner: rec.Owner, Pieces: datatypes.JSON(data)}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("save fortress %d: %w", rec.Owner, err)
	}
	s.log.Debug().Int("owner", rec.Owner).Int("pieces", len(pieces)).Msg("fortress saved")
	return nil
}

// Load returns the owner's saved fortress. It returns fortress.ErrNoRecord
// when nothing is saved and fortress.ErrInvalidRecord when the stored piece
// list cannot be decoded.
func (s *Store) Load(ctx context.Context, owner int) (fortress.Record, error) {
	var row Fortress
	err := s.db.WithContext(ctx).First(&row, "owner = ?", owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fortress.Record{}, fortress.ErrNoRecord
	}
	if err != nil {
		return fortress.Record{}, fmt.Errorf("load fortress %d: %w", owner, err)
	}

	var pieces []fortress.PieceRecord
	if err := json.Unmarshal(row.Pieces, &pieces); err != nil {
		if errors.Is(err, fortress.ErrInvalidRecord) {
			return fortress.Record{}, err
		}
		return fortress.Record{}, fmt.Errorf("%w: %v", fortress.ErrInvalidRecord, err)
	}
	return fortress.Record{Owner: row.Owner, Pieces: pieces}, nil
}

// Delete removes the owner's saved fortress, if any.
func (s *Store) Delete(ctx context.Context, owner int) error {
	if err := s.db.WithContext(ctx).Delete(&Fortress{}, "owner = ?", owner).Error; err != nil {
		return fmt.Errorf("delete fortress %d: %w", owner, err)
	}
	return nil
}

// Close releases the database. An in-memory database is discarded.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
