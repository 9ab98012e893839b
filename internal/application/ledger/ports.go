package ledger

import "github.com/jhoicas/stockledger/internal/domain/entity"

// DirectoryLookup resuelve códigos de bodega/ubicación contra el directorio.
// Dependencia síncrona de solo lectura del validador; el ledger la consulta
// pero nunca es dueño de esos datos.
type DirectoryLookup interface {
	// ResolveWarehouse devuelve la bodega o nil si el código no existe.
	ResolveWarehouse(code string) (*entity.Warehouse, error)
	// ResolveLocation devuelve la ubicación o nil si no existe o no
	// pertenece a la bodega indicada.
	ResolveLocation(warehouseCode, code string) (*entity.Location, error)
}
