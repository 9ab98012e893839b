package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.BalanceStore = (*BalanceStore)(nil)

// BalanceStore almacén autoritativo en memoria: saldo por (SKU, bodega,
// ubicación) más cuatro índices agregados (por SKU, por bodega, por
// ubicación y global) mantenidos por aplicación incremental de deltas.
//
// Objeto explícito con ciclo de vida propio (constructor + Reset), inyectado
// en el motor; nada de estado global de paquete.
type BalanceStore struct {
	mu        sync.RWMutex
	bootstrap repository.BalanceBootstrap // puede ser nil (todo arranca en cero)

	balances    map[entity.BalanceKey]entity.BalanceRecord
	bySKU       map[string]entity.AggregateTotals
	byWarehouse map[string]entity.AggregateTotals
	byLocation  map[string]entity.AggregateTotals // llave "bodega/ubicación"
	global      entity.AggregateTotals
}

// NewBalanceStore construye el store. bootstrap siembra el on-hand de llaves
// no trackeadas desde el snapshot a nivel producto (puede ser nil).
func NewBalanceStore(bootstrap repository.BalanceBootstrap) *BalanceStore {
	s := &BalanceStore{bootstrap: bootstrap}
	s.Reset()
	return s
}

// Reset descarta todos los saldos y agregados (uso en tests y arranque).
func (s *BalanceStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = make(map[entity.BalanceKey]entity.BalanceRecord)
	s.bySKU = make(map[string]entity.AggregateTotals)
	s.byWarehouse = make(map[string]entity.AggregateTotals)
	s.byLocation = make(map[string]entity.AggregateTotals)
	s.global = entity.AggregateTotals{}
}

func locationScopeKey(warehouseCode, locationCode string) string {
	return warehouseCode + "/" + locationCode
}

// Get devuelve el registro trackeado; si la llave no existe, sintetiza uno
// sembrado desde el on-hand a nivel producto (reserved = 0), o en ceros si
// tampoco hay dato de producto. Lectura pura: no materializa nada.
func (s *BalanceStore) Get(key entity.BalanceKey) entity.BalanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(key)
}

func (s *BalanceStore) getLocked(key entity.BalanceKey) entity.BalanceRecord {
	if rec, ok := s.balances[key]; ok {
		return rec
	}
	rec := entity.BalanceRecord{Key: key}
	if s.bootstrap != nil {
		if onHand, ok := s.bootstrap.ItemOnHand(key.SKU, key.Warehouse, key.Location); ok {
			rec.OnHand = onHand
		}
	}
	return rec
}

// ApplyDeltas aplica el lote completo bajo una sola sección crítica: un lector
// concurrente ve todas las patas de un movimiento multi-llave (TRANSFER) o
// ninguna, nunca un estado intermedio. Devuelve los registros resultantes en
// el mismo orden del lote.
func (s *BalanceStore) ApplyDeltas(deltas []repository.BalanceDelta) []entity.BalanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.BalanceRecord, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, s.applyDeltaLocked(d.Key, d.OnHand, d.Reserved))
	}
	return out
}

// ApplyDelta aplica un delta sobre una sola llave. Azúcar sobre ApplyDeltas.
func (s *BalanceStore) ApplyDelta(key entity.BalanceKey, deltaOnHand, deltaReserved int64) entity.BalanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyDeltaLocked(key, deltaOnHand, deltaReserved)
}

// SetAbsolute fija el on-hand de la llave (semántica ADJUST). Calcula el
// delta contra el valor actual y pasa por la misma ruta de los deltas, todo
// dentro de la misma sección crítica.
func (s *BalanceStore) SetAbsolute(key entity.BalanceKey, onHand int64) entity.BalanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.getLocked(key)
	return s.applyDeltaLocked(key, onHand-current.OnHand, 0)
}

// applyDeltaLocked escribe el nuevo registro y propaga el mismo delta a los
// cuatro índices agregados. En el primer toque de una llave sembrada por
// bootstrap, el baseline entra a los agregados junto con el delta, de modo que
// los índices siempre igualan la suma de los registros trackeados.
func (s *BalanceStore) applyDeltaLocked(key entity.BalanceKey, deltaOnHand, deltaReserved int64) entity.BalanceRecord {
	prev, tracked := s.balances[key]
	cur := s.getLocked(key)
	cur.OnHand += deltaOnHand
	cur.Reserved += deltaReserved
	s.balances[key] = cur

	// Delta efectivo contra lo que los índices ya conocían (cero si no estaba trackeada)
	aggOnHand := cur.OnHand
	aggReserved := cur.Reserved
	if tracked {
		aggOnHand -= prev.OnHand
		aggReserved -= prev.Reserved
	}
	s.bumpAggregates(key, aggOnHand, aggReserved)
	return cur
}

func (s *BalanceStore) bumpAggregates(key entity.BalanceKey, dOnHand, dReserved int64) {
	bump := func(m map[string]entity.AggregateTotals, k string) {
		t := m[k]
		t.OnHand += dOnHand
		t.Reserved += dReserved
		if t.IsZero() {
			delete(m, k) // acota el índice en alcances dispersos
		} else {
			m[k] = t
		}
	}
	bump(s.bySKU, key.SKU)
	bump(s.byWarehouse, key.Warehouse)
	bump(s.byLocation, locationScopeKey(key.Warehouse, key.Location))
	s.global.OnHand += dOnHand
	s.global.Reserved += dReserved
}

// TotalsBySKU acumulado del SKU (cero si la entrada fue eliminada).
func (s *BalanceStore) TotalsBySKU(sku string) entity.AggregateTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bySKU[sku]
}

// TotalsByWarehouse acumulado de la bodega.
func (s *BalanceStore) TotalsByWarehouse(warehouseCode string) entity.AggregateTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byWarehouse[warehouseCode]
}

// TotalsByLocation acumulado de la (bodega, ubicación).
func (s *BalanceStore) TotalsByLocation(warehouseCode, locationCode string) entity.AggregateTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byLocation[locationScopeKey(warehouseCode, locationCode)]
}

// GlobalTotals acumulado global.
func (s *BalanceStore) GlobalTotals() entity.AggregateTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.global
}

// Aggregates snapshot de los cuatro índices (copias, seguras de retener).
func (s *BalanceStore) Aggregates() repository.AggregateScopes {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := repository.AggregateScopes{
		BySKU:       make(map[string]entity.AggregateTotals, len(s.bySKU)),
		ByWarehouse: make(map[string]entity.AggregateTotals, len(s.byWarehouse)),
		ByLocation:  make(map[string]entity.AggregateTotals, len(s.byLocation)),
		Global:      s.global,
	}
	for k, v := range s.bySKU {
		out.BySKU[k] = v
	}
	for k, v := range s.byWarehouse {
		out.ByWarehouse[k] = v
	}
	for k, v := range s.byLocation {
		out.ByLocation[k] = v
	}
	return out
}

// List devuelve los saldos trackeados que matchean el filtro, ordenados por llave.
func (s *BalanceStore) List(filter repository.BalanceFilter) []entity.BalanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.BalanceRecord, 0, len(s.balances))
	for key, rec := range s.balances {
		if filter.SKU != "" && key.SKU != filter.SKU {
			continue
		}
		if filter.Warehouse != "" && key.Warehouse != filter.Warehouse {
			continue
		}
		if filter.Location != "" && key.Location != filter.Location {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		if a.Warehouse != b.Warehouse {
			return a.Warehouse < b.Warehouse
		}
		return a.Location < b.Location
	})
	return out
}
