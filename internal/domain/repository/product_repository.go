package repository

import "github.com/jhoicas/stockledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Save hace upsert por SKU: es la vía por la que el ledger reescribe la
// proyección de inventario del producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetBySKU(sku string) (*entity.Product, error)
	Save(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(sku string) error
}
