package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"uvci/internal/uvci/models"
	"uvci/pkg/platform/sentinel"
)

// InMemoryStore keeps inspections in process memory.
type InMemoryStore struct {
	mu          sync.RWMutex
	inspections map[uuid.UUID]models.Inspection
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{inspections: make(map[uuid.UUID]models.Inspection)}
}

func (s *InMemoryStore) Save(_ context.Context, insp *models.Inspection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inspections[insp.ID]; ok {
		return fmt.Errorf("inspection %s: %w", insp.ID, sentinel.ErrConflict)
	}
	s.inspections[insp.ID] = *insp
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	insp, ok := s.inspections[id]
	if !ok {
		return nil, fmt.Errorf("inspection %s: %w", id, sentinel.ErrNotFound)
	}
	return &insp, nil
}

// ListByOpaqueID returns every inspection of a national certificate with the
// given opaque id, oldest first.
func (s *InMemoryStore) ListByOpaqueID(_ context.Context, opaqueID string) ([]*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []*models.Inspection
	for _, insp := range s.inspections {
		insp := insp
		if opaqueID != "" && insp.Record.OpaqueID == opaqueID {
			found = append(found, &insp)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].InspectedAt.Before(found[j].InspectedAt)
	})
	return found, nil
}
