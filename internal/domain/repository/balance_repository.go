package repository

import "github.com/jhoicas/stockledger/internal/domain/entity"

// BalanceBootstrap fuente de arranque para llaves no trackeadas: el on-hand
// vigente a nivel producto para (sku, bodega, ubicación). Lo implementa el
// registro de productos; evita que el ledger diverja de snapshots previos.
type BalanceBootstrap interface {
	ItemOnHand(sku, warehouseCode, locationCode string) (int64, bool)
}

// BalanceFilter criterios para listar saldos trackeados.
type BalanceFilter struct {
	SKU       string
	Warehouse string
	Location  string
}

// AggregateScopes los cuatro índices agregados derivados del Balance Store.
type AggregateScopes struct {
	BySKU       map[string]entity.AggregateTotals
	ByWarehouse map[string]entity.AggregateTotals
	ByLocation  map[string]entity.AggregateTotals // llave "bodega/ubicación"
	Global      entity.AggregateTotals
}

// BalanceDelta un ajuste incremental sobre una llave, para aplicación en lote.
type BalanceDelta struct {
	Key      entity.BalanceKey
	OnHand   int64
	Reserved int64
}

// BalanceStore puerto del almacén autoritativo de saldos.
//
// ApplyDeltas es el único mutador primitivo: escribe los registros y propaga
// cada delta a los índices por SKU, por bodega, por ubicación y global,
// eliminando la entrada de un índice cuando ambos campos vuelven a cero.
// Todos los deltas del lote se aplican bajo una sola sección crítica, de modo
// que ningún lector puede observar un movimiento multi-llave a medio aplicar.
// SetAbsolute (solo ADJUST) calcula el delta internamente y pasa por la misma
// ruta para que los agregados queden consistentes. Aritmética entera, sin floats.
type BalanceStore interface {
	// Get devuelve el registro trackeado o, si no existe, uno sintetizado
	// desde el bootstrap (reserved = 0), o en ceros si tampoco hay producto.
	Get(key entity.BalanceKey) entity.BalanceRecord
	// ApplyDeltas aplica el lote atómicamente y devuelve los registros
	// resultantes en el mismo orden.
	ApplyDeltas(deltas []BalanceDelta) []entity.BalanceRecord
	ApplyDelta(key entity.BalanceKey, deltaOnHand, deltaReserved int64) entity.BalanceRecord
	SetAbsolute(key entity.BalanceKey, onHand int64) entity.BalanceRecord

	TotalsBySKU(sku string) entity.AggregateTotals
	TotalsByWarehouse(warehouseCode string) entity.AggregateTotals
	TotalsByLocation(warehouseCode, locationCode string) entity.AggregateTotals
	GlobalTotals() entity.AggregateTotals
	Aggregates() AggregateScopes

	// List devuelve los saldos trackeados que matchean el filtro, ordenados por llave.
	List(filter BalanceFilter) []entity.BalanceRecord
	Reset()
}
