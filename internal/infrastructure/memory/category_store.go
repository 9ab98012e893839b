package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryStore)(nil)

// CategoryStore registro de categorías en memoria.
type CategoryStore struct {
	mu         sync.RWMutex
	categories map[string]entity.Category
}

// NewCategoryStore construye el registro vacío.
func NewCategoryStore() *CategoryStore {
	return &CategoryStore{categories: make(map[string]entity.Category)}
}

// Create registra una categoría nueva.
func (s *CategoryStore) Create(category *entity.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	s.categories[category.ID] = *category
	return nil
}

// GetByID devuelve la categoría; nil si no existe.
func (s *CategoryStore) GetByID(id string) (*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// List lista categorías ordenadas por nombre, con paginación.
func (s *CategoryStore) List(limit, offset int) ([]*entity.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cc := c
		out = append(out, &cc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if offset < 0 {
		offset = 0
	}
	if offset > len(out) {
		offset = len(out)
	}
	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// Delete elimina la categoría por ID.
func (s *CategoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}
