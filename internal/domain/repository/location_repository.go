package repository

import "github.com/jhoicas/stockledger/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones de bodega.
type LocationRepository interface {
	Create(location *entity.Location) error
	// GetByCode resuelve una ubicación por su código dentro de una bodega.
	GetByCode(warehouseCode, code string) (*entity.Location, error)
	ListByWarehouse(warehouseCode string) ([]*entity.Location, error)
	Delete(warehouseCode, code string) error
}
