package ledger

import (
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ DirectoryLookup = (*Directory)(nil)

// Directory implementación de DirectoryLookup sobre los registros CRUD
// de bodegas y ubicaciones.
type Directory struct {
	warehouses repository.WarehouseRepository
	locations  repository.LocationRepository
}

// NewDirectory construye el directorio.
func NewDirectory(warehouses repository.WarehouseRepository, locations repository.LocationRepository) *Directory {
	return &Directory{warehouses: warehouses, locations: locations}
}

// ResolveWarehouse resuelve una bodega por código; nil si no existe.
func (d *Directory) ResolveWarehouse(code string) (*entity.Warehouse, error) {
	return d.warehouses.GetByCode(code)
}

// ResolveLocation resuelve una ubicación dentro de la bodega indicada;
// nil si no existe o pertenece a otra bodega.
func (d *Directory) ResolveLocation(warehouseCode, code string) (*entity.Location, error) {
	return d.locations.GetByCode(warehouseCode, code)
}
