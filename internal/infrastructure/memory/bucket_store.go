package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.AnalyticsStore = (*BucketStore)(nil)

// BucketStore buckets diarios de movimientos en memoria, particionados en
// cuatro alcances: global, por SKU, por bodega y por SKU dentro de bodega.
// Así los dashboards responden "entradas/salidas del período X en el alcance Y"
// sin reescanear el log crudo de movimientos.
type BucketStore struct {
	mu             sync.RWMutex
	global         map[string]*entity.DailyBucket                       // fecha → bucket
	bySKU          map[string]map[string]*entity.DailyBucket            // sku → fecha → bucket
	byWarehouse    map[string]map[string]*entity.DailyBucket            // bodega → fecha → bucket
	byWarehouseSKU map[string]map[string]map[string]*entity.DailyBucket // bodega → sku → fecha → bucket
}

// NewBucketStore construye el store vacío.
func NewBucketStore() *BucketStore {
	s := &BucketStore{}
	s.Reset()
	return s
}

// Reset descarta todos los buckets (solo tests).
func (s *BucketStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = make(map[string]*entity.DailyBucket)
	s.bySKU = make(map[string]map[string]*entity.DailyBucket)
	s.byWarehouse = make(map[string]map[string]*entity.DailyBucket)
	s.byWarehouseSKU = make(map[string]map[string]map[string]*entity.DailyBucket)
}

// contribution deriva el aporte (inbound, outbound, adjustments) según el tipo.
// TRANSFER aporta a ambos: es salida en origen y entrada en destino a la vez.
func contribution(m *entity.MovementRecord) entity.DailyBucket {
	switch m.Type {
	case entity.MovementTypeRECEIPT, entity.MovementTypeRETURN:
		return entity.DailyBucket{Inbound: m.Qty}
	case entity.MovementTypeISSUE:
		return entity.DailyBucket{Outbound: m.Qty}
	case entity.MovementTypeTRANSFER:
		return entity.DailyBucket{Inbound: m.Qty, Outbound: m.Qty}
	case entity.MovementTypeADJUST:
		return entity.DailyBucket{Adjustments: m.Qty}
	}
	return entity.DailyBucket{}
}

// Record suma la contribución del movimiento al bucket de su fecha UTC:
// global, por SKU, y por cada bodega realmente tocada (origen y/o destino)
// con su sub-total anidado por SKU.
func (s *BucketStore) Record(movement *entity.MovementRecord) {
	date := movement.OccurredAt.UTC().Format(entity.BucketDateLayout)
	contrib := contribution(movement)

	s.mu.Lock()
	defer s.mu.Unlock()

	bucketAt(s.global, date).Add(contrib)
	bucketAt(nested(s.bySKU, movement.SKU), date).Add(contrib)

	for _, wh := range touchedWarehouses(movement) {
		bucketAt(nested(s.byWarehouse, wh), date).Add(contrib)
		whSKU := s.byWarehouseSKU[wh]
		if whSKU == nil {
			whSKU = make(map[string]map[string]*entity.DailyBucket)
			s.byWarehouseSKU[wh] = whSKU
		}
		bucketAt(nested(whSKU, movement.SKU), date).Add(contrib)
	}
}

func touchedWarehouses(m *entity.MovementRecord) []string {
	if m.FromWarehouse != "" && m.ToWarehouse != "" && m.FromWarehouse != m.ToWarehouse {
		return []string{m.FromWarehouse, m.ToWarehouse}
	}
	if m.FromWarehouse != "" {
		return []string{m.FromWarehouse}
	}
	if m.ToWarehouse != "" {
		return []string{m.ToWarehouse}
	}
	return nil
}

func nested(m map[string]map[string]*entity.DailyBucket, key string) map[string]*entity.DailyBucket {
	inner := m[key]
	if inner == nil {
		inner = make(map[string]*entity.DailyBucket)
		m[key] = inner
	}
	return inner
}

func bucketAt(m map[string]*entity.DailyBucket, date string) *entity.DailyBucket {
	b := m[date]
	if b == nil {
		b = &entity.DailyBucket{}
		m[date] = b
	}
	return b
}

// QueryDaily devuelve exactamente un punto por día UTC en [from, to],
// zero-filled, filtrado al alcance pedido.
func (s *BucketStore) QueryDaily(from, to time.Time, sku, warehouseCode string) []entity.DailyPoint {
	s.mu.RLock()
	source := s.scopeLocked(sku, warehouseCode)
	// Copia de los buckets del alcance para no retener el lock durante el relleno
	snapshot := make(map[string]entity.DailyBucket, len(source))
	for date, b := range source {
		snapshot[date] = *b
	}
	s.mu.RUnlock()

	start := time.Date(from.UTC().Year(), from.UTC().Month(), from.UTC().Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.UTC().Year(), to.UTC().Month(), to.UTC().Day(), 0, 0, 0, 0, time.UTC)

	var points []entity.DailyPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(entity.BucketDateLayout)
		points = append(points, entity.DailyPoint{Date: date, DailyBucket: snapshot[date]})
	}
	return points
}

func (s *BucketStore) scopeLocked(sku, warehouseCode string) map[string]*entity.DailyBucket {
	switch {
	case sku != "" && warehouseCode != "":
		return s.byWarehouseSKU[warehouseCode][sku]
	case sku != "":
		return s.bySKU[sku]
	case warehouseCode != "":
		return s.byWarehouse[warehouseCode]
	default:
		return s.global
	}
}
