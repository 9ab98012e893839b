package repository

import (
	"time"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// MovementFilter criterios de búsqueda sobre el log de movimientos.
// Warehouse matchea origen o destino; From/To acotan OccurredAt.
type MovementFilter struct {
	Type      string
	SKU       string
	Warehouse string
	Location  string
	PartnerID string
	RefNo     string
	UserID    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementRepository define el puerto del log append-only de movimientos.
// Los registros nunca se editan ni se borran; Reset existe solo para tests.
type MovementRepository interface {
	Append(movement *entity.MovementRecord) error
	// List devuelve la página filtrada (orden: OccurredAt desc, desempate
	// CreatedAt desc) y el total de registros que matchean el filtro.
	List(filter MovementFilter) ([]*entity.MovementRecord, int, error)
	Reset()
}
