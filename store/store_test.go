package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phanxgames/fortress"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecord(owner int) fortress.Record {
	return fortress.Record{Owner: owner, Pieces: []fortress.PieceRecord{
		{Position: fortress.Point{X: 100, Y: 300}, Kind: fortress.KindChinese},
		{Position: fortress.Point{X: 160, Y: 310}, Kind: fortress.KindMilitary, Angle: 0.25},
	}}
}

func TestStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	rec := sampleRecord(1)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Saving again replaces the row.
	rec.Pieces = rec.Pieces[:1]
	require.NoError(t, s.Save(ctx, rec))
	got, err = s.Load(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got.Pieces, 1)
}

func TestStoreLoadMissing(t *testing.T) {
	s := openMemory(t)
	_, err := s.Load(context.Background(), 2)
	assert.ErrorIs(t, err, fortress.ErrNoRecord)
}

func TestStoreLoadCorrupt(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.db.Create(&Fortress{Owner: 2, Pieces: datatypes.JSON(`[[1]]`)}).Error)

	_, err := s.Load(context.Background(), 2)
	assert.ErrorIs(t, err, fortress.ErrInvalidRecord)
}

func TestStoreLegacyTuples(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.db.Create(&Fortress{Owner: 1, Pieces: datatypes.JSON(`[[5, 6, 3]]`)}).Error)

	got, err := s.Load(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got.Pieces, 1)
	assert.Equal(t, fortress.KindGo, got.Pieces[0].Kind)
	assert.Equal(t, fortress.Point{X: 5, Y: 6}, got.Pieces[0].Position)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	require.NoError(t, s.Save(ctx, sampleRecord(1)))
	require.NoError(t, s.Delete(ctx, 1))

	_, err := s.Load(ctx, 1)
	assert.ErrorIs(t, err, fortress.ErrNoRecord)
	assert.NoError(t, s.Delete(ctx, 1), "deleting a missing row is not an error")
}

func TestStoreSeparateMemoryDatabases(t *testing.T) {
	ctx := context.Background()
	a, b := openMemory(t), openMemory(t)
	require.NoError(t, a.Save(ctx, sampleRecord(1)))

	_, err := b.Load(ctx, 1)
	assert.ErrorIs(t, err, fortress.ErrNoRecord)
}

func TestStorePersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fortress.db")

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleRecord(2)))
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, sampleRecord(2), got)
}

func TestGameSavesThroughStore(t *testing.T) {
	s := openMemory(t)
	g := fortress.NewGame(fortress.DefaultConfig())
	g.SetStore(s)

	g.Do(fortress.ActionStart)
	g.Push(fortress.KeyPress(fortress.KeySelectChinese))
	g.Push(fortress.PointerDown(200, 300))
	g.Push(fortress.PointerUp(200, 300))
	g.Push(fortress.KeyPress(fortress.KeyEndBuild))
	g.Update(1.0 / 60)
	require.Equal(t, fortress.BuildingPhase(2), g.Phase())

	rec, err := s.Load(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rec.Pieces, 1)
	assert.Equal(t, fortress.KindChinese, rec.Pieces[0].Kind)

	g2 := fortress.NewGame(fortress.DefaultConfig())
	g2.SetStore(s)
	g2.Do(fortress.ActionLoad)
	assert.Equal(t, fortress.BattlePhase(1), g2.Phase())
	assert.Equal(t, 1, g2.Fortress(1).Count(fortress.KindChinese))
	assert.Equal(t, 0, g2.Fortress(2).Len())
}
