package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationStore)(nil)

type locationKey struct {
	warehouse string
	code      string
}

// LocationStore registro de ubicaciones en memoria, indexado por (bodega, código).
type LocationStore struct {
	mu        sync.RWMutex
	locations map[locationKey]entity.Location
}

// NewLocationStore construye el registro vacío.
func NewLocationStore() *LocationStore {
	return &LocationStore{locations: make(map[locationKey]entity.Location)}
}

// Create registra una ubicación; (bodega, código) duplicado es error.
func (s *LocationStore) Create(location *entity.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := locationKey{location.WarehouseCode, location.Code}
	if _, ok := s.locations[k]; ok {
		return domain.ErrDuplicate
	}
	s.locations[k] = *location
	return nil
}

// GetByCode resuelve una ubicación dentro de una bodega; nil si no existe.
func (s *LocationStore) GetByCode(warehouseCode, code string) (*entity.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if loc, ok := s.locations[locationKey{warehouseCode, code}]; ok {
		return &loc, nil
	}
	return nil, nil
}

// ListByWarehouse lista las ubicaciones de una bodega ordenadas por código.
func (s *LocationStore) ListByWarehouse(warehouseCode string) ([]*entity.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Location, 0)
	for k, loc := range s.locations {
		if k.warehouse == warehouseCode {
			l := loc
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// Delete elimina la ubicación.
func (s *LocationStore) Delete(warehouseCode, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := locationKey{warehouseCode, code}
	if _, ok := s.locations[k]; !ok {
		return domain.ErrNotFound
	}
	delete(s.locations, k)
	return nil
}
