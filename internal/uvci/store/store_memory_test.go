package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvci/internal/uvci"
	"uvci/internal/uvci/models"
	"uvci/pkg/platform/sentinel"
)

func newInspection(raw string, at time.Time) *models.Inspection {
	normalized, _ := uvci.Normalize(raw)
	return models.NewInspection(raw, normalized, uvci.Parse(raw), at)
}

func TestInMemoryStore_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	insp := newInspection("URN:UVCI:01:SE:EHM/V12916227TFJJ#Q", time.Now())

	require.NoError(t, s.Save(ctx, insp))

	got, err := s.FindByID(ctx, insp.ID)
	require.NoError(t, err)
	assert.Equal(t, insp, got)

	t.Run("returned value is a copy", func(t *testing.T) {
		got.Raw = "changed"
		again, err := s.FindByID(ctx, insp.ID)
		require.NoError(t, err)
		assert.Equal(t, insp.Raw, again.Raw)
	})

	t.Run("duplicate id conflicts", func(t *testing.T) {
		err := s.Save(ctx, insp)
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := s.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemoryStore_ListByOpaqueID(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	base := time.Date(2021, time.October, 1, 0, 0, 0, 0, time.UTC)

	later := newInspection("URN:UVCI:01:SE:EHM/V12916227ABCD#Q", base.Add(time.Hour))
	earlier := newInspection("URN:UVCI:01:SE:EHM/V12916227TFJJ#Q", base)
	other := newInspection("URN:UVCI:01:SE:EHM/V12907267LAJW#E", base)
	opaque := newInspection("URN:UVCI:01:NL:187/37512422923", base)
	for _, insp := range []*models.Inspection{later, earlier, other, opaque} {
		require.NoError(t, s.Save(ctx, insp))
	}

	found, err := s.ListByOpaqueID(ctx, "V12916227")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, earlier.ID, found[0].ID)
	assert.Equal(t, later.ID, found[1].ID)

	none, err := s.ListByOpaqueID(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestInMemoryStore_ConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(ctx, newInspection("URN:UVCI:01:SE:EHM/V12916227TFJJ#Q", time.Now())))
		}()
	}
	wg.Wait()

	found, err := s.ListByOpaqueID(ctx, "V12916227")
	require.NoError(t, err)
	assert.Len(t, found, 50)
}
