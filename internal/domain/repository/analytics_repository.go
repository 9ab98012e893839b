package repository

import (
	"time"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// AnalyticsStore puerto del almacén de buckets diarios de movimientos,
// particionado global / por SKU / por bodega / por SKU dentro de bodega.
// Los buckets se crean lazy por fecha y alcance, y solo crecen.
type AnalyticsStore interface {
	// Record suma la contribución del movimiento al bucket de su fecha
	// calendario UTC en todos los alcances tocados.
	Record(movement *entity.MovementRecord)
	// QueryDaily devuelve un punto por día calendario UTC en [from, to],
	// zero-filled en días sin actividad, filtrado al alcance pedido
	// (sku y/o warehouse vacíos = global).
	QueryDaily(from, to time.Time, sku, warehouseCode string) []entity.DailyPoint
	Reset()
}
