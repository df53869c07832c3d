package fortress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
)

var (
	// ErrNoRecord is returned by a FortressStore with nothing saved for the
	// requested player.
	ErrNoRecord = errors.New("fortress: no saved record")
	// ErrInvalidRecord is returned when a saved record cannot be decoded.
	ErrInvalidRecord = errors.New("fortress: invalid record")
)

// FortressStore persists fortresses between matches.
type FortressStore interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, owner int) (Record, error)
}

// Point is a saved position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PieceRecord is one saved piece. A record without an angle is unrotated.
type PieceRecord struct {
	Position Point     `json:"position"`
	Kind     PieceKind `json:"kind"`
	Angle    float64   `json:"angle"`
}

// UnmarshalJSON accepts the object form and the legacy [x, y, kind] tuple.
func (r *PieceRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var tuple []float64
		if err := json.Unmarshal(data, &tuple); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		if len(tuple) < 3 {
			return fmt.Errorf("%w: piece tuple has %d fields", ErrInvalidRecord, len(tuple))
		}
		*r = PieceRecord{Position: Point{tuple[0], tuple[1]}, Kind: PieceKind(tuple[2])}
		if len(tuple) > 3 {
			r.Angle = tuple[3]
		}
		return nil
	}

	type plain PieceRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	*r = PieceRecord(p)
	return nil
}

// Record is a saved fortress.
type Record struct {
	Owner  int           `json:"owner_player_id"`
	Pieces []PieceRecord `json:"pieces"`
}

// UnmarshalJSON also accepts the legacy player_id key.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Owner    *int          `json:"owner_player_id"`
		PlayerID *int          `json:"player_id"`
		Pieces   []PieceRecord `json:"pieces"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		if errors.Is(err, ErrInvalidRecord) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	*r = Record{Pieces: raw.Pieces}
	switch {
	case raw.Owner != nil:
		r.Owner = *raw.Owner
	case raw.PlayerID != nil:
		r.Owner = *raw.PlayerID
	}
	return nil
}

// DecodeRecord parses a saved fortress.
func DecodeRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		if errors.Is(err, ErrInvalidRecord) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return rec, nil
}

// RecordOf snapshots a fortress.
func RecordOf(f *Fortress) Record {
	rec := Record{Owner: f.Owner, Pieces: make([]PieceRecord, 0, f.Len())}
	for _, p := range f.pieces {
		pos := p.Position()
		rec.Pieces = append(rec.Pieces, PieceRecord{
			Position: Point{pos.X, pos.Y},
			Kind:     p.Kind,
			Angle:    p.Angle(),
		})
	}
	return rec
}

// Restore rebuilds a fortress for owner from rec, attaching every piece to
// w. Pieces of unknown kind or over their kind's limit are skipped and
// counted.
func Restore(rec Record, owner int, cfg Config, w *World) (f *Fortress, skipped int) {
	f = NewFortress(owner, cfg)
	for _, pr := range rec.Pieces {
		pos := Vec2{pr.Position.X, pr.Position.Y}
		if !pr.Kind.Valid() || !pos.IsFinite() {
			skipped++
			continue
		}
		p := newPieceAt(pos, sanitizeAngle(pr.Angle), pr.Kind, owner, cfg.Piece.Radius)
		if err := f.AddPiece(p); err != nil {
			skipped++
			continue
		}
		w.Add(p.body)
	}
	return f, skipped
}

func sanitizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return a
}

// MemoryStore is a FortressStore kept in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records map[int][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[int][]byte)}
}

// Save stores rec under its owner, replacing any previous record.
func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Owner] = data
	return nil
}

// Load returns the record saved for owner.
func (s *MemoryStore) Load(_ context.Context, owner int) (Record, error) {
	s.mu.Lock()
	data, ok := s.records[owner]
	s.mu.Unlock()
	if !ok {
		return Record{}, ErrNoRecord
	}
	return DecodeRecord(data)
}

// Put stores raw bytes for owner, bypassing encoding. Useful for feeding
// legacy or damaged records.
func (s *MemoryStore) Put(owner int, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[owner] = append([]byte(nil), data...)
}
