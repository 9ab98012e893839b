package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductStore)(nil)
var _ repository.BalanceBootstrap = (*ProductStore)(nil)

// ProductStore registro de productos en memoria, indexado por SKU.
// Implementa además BalanceBootstrap: el Balance Store siembra llaves no
// trackeadas desde los items de inventario a nivel producto.
type ProductStore struct {
	mu       sync.RWMutex
	products map[string]entity.Product
}

// NewProductStore construye el registro vacío.
func NewProductStore() *ProductStore {
	return &ProductStore{products: make(map[string]entity.Product)}
}

// Create registra un producto nuevo; SKU duplicado es error.
func (s *ProductStore) Create(product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.SKU]; ok {
		return domain.ErrDuplicate
	}
	s.products[product.SKU] = cloneProduct(product)
	return nil
}

// GetBySKU devuelve una copia del producto; nil si no existe.
func (s *ProductStore) GetBySKU(sku string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.products[sku]; ok {
		out := cloneProduct(&p)
		return &out, nil
	}
	return nil, nil
}

// Save upsert por SKU: la vía por la que el ledger reescribe la proyección.
func (s *ProductStore) Save(product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.SKU] = cloneProduct(product)
	return nil
}

// List lista productos ordenados por SKU, con paginación.
func (s *ProductStore) List(limit, offset int) ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	skus := make([]string, 0, len(s.products))
	for sku := range s.products {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	if offset < 0 {
		offset = 0
	}
	if offset > len(skus) {
		offset = len(skus)
	}
	end := len(skus)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]*entity.Product, 0, end-offset)
	for _, sku := range skus[offset:end] {
		p := s.products[sku]
		c := cloneProduct(&p)
		out = append(out, &c)
	}
	return out, nil
}

// Delete elimina el producto por SKU.
func (s *ProductStore) Delete(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[sku]; !ok {
		return domain.ErrNotFound
	}
	delete(s.products, sku)
	return nil
}

// ItemOnHand devuelve el on-hand a nivel producto para (sku, bodega, ubicación),
// o (0, false) si el producto o el item no existen. Fuente de arranque del
// Balance Store para llaves no trackeadas.
func (s *ProductStore) ItemOnHand(sku, warehouseCode, locationCode string) (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[sku]
	if !ok {
		return 0, false
	}
	for _, it := range p.Items {
		if it.WarehouseCode == warehouseCode && it.LocationCode == locationCode {
			return it.OnHand, true
		}
	}
	return 0, false
}

// cloneProduct copia profunda (la slice Items no debe compartirse con el caller).
func cloneProduct(p *entity.Product) entity.Product {
	out := *p
	out.Items = make([]entity.InventoryItem, len(p.Items))
	copy(out.Items, p.Items)
	return out
}
