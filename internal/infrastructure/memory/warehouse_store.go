package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseStore)(nil)

// WarehouseStore registro de bodegas en memoria, indexado por código.
type WarehouseStore struct {
	mu         sync.RWMutex
	warehouses map[string]entity.Warehouse
}

// NewWarehouseStore construye el registro vacío.
func NewWarehouseStore() *WarehouseStore {
	return &WarehouseStore{warehouses: make(map[string]entity.Warehouse)}
}

// Create registra una bodega nueva; código duplicado es error.
func (s *WarehouseStore) Create(warehouse *entity.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[warehouse.Code]; ok {
		return domain.ErrDuplicate
	}
	s.warehouses[warehouse.Code] = *warehouse
	return nil
}

// GetByCode resuelve una bodega por código; nil si no existe.
func (s *WarehouseStore) GetByCode(code string) (*entity.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if w, ok := s.warehouses[code]; ok {
		return &w, nil
	}
	return nil, nil
}

// Update reescribe la bodega; debe existir.
func (s *WarehouseStore) Update(warehouse *entity.Warehouse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[warehouse.Code]; !ok {
		return domain.ErrNotFound
	}
	s.warehouses[warehouse.Code] = *warehouse
	return nil
}

// List lista las bodegas ordenadas por código, con paginación.
func (s *WarehouseStore) List(limit, offset int) ([]*entity.Warehouse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := make([]string, 0, len(s.warehouses))
	for code := range s.warehouses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return pageWarehouses(s.warehouses, codes, limit, offset), nil
}

func pageWarehouses(m map[string]entity.Warehouse, codes []string, limit, offset int) []*entity.Warehouse {
	if offset < 0 {
		offset = 0
	}
	if offset > len(codes) {
		offset = len(codes)
	}
	end := len(codes)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.Warehouse, 0, end-offset)
	for _, code := range codes[offset:end] {
		w := m[code]
		out = append(out, &w)
	}
	return out
}

// Delete elimina la bodega por código.
func (s *WarehouseStore) Delete(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.warehouses[code]; !ok {
		return domain.ErrNotFound
	}
	delete(s.warehouses, code)
	return nil
}
