package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementLog)(nil)

// MovementLog log append-only de movimientos en memoria.
type MovementLog struct {
	mu      sync.RWMutex
	records []entity.MovementRecord
}

// NewMovementLog construye el log vacío.
func NewMovementLog() *MovementLog {
	return &MovementLog{}
}

// Append agrega el movimiento al final del log (guarda una copia).
func (l *MovementLog) Append(movement *entity.MovementRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, *movement)
	return nil
}

// Reset descarta el log completo (solo tests).
func (l *MovementLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// List filtra, ordena (OccurredAt desc, desempate CreatedAt desc) y pagina.
// Devuelve también el total de registros que matchean antes de paginar.
func (l *MovementLog) List(filter repository.MovementFilter) ([]*entity.MovementRecord, int, error) {
	l.mu.RLock()
	matched := make([]entity.MovementRecord, 0, len(l.records))
	for _, rec := range l.records {
		if matches(rec, filter) {
			matched = append(matched, rec)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].OccurredAt.Equal(matched[j].OccurredAt) {
			return matched[i].OccurredAt.After(matched[j].OccurredAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	page := make([]*entity.MovementRecord, 0, end-offset)
	for i := offset; i < end; i++ {
		rec := matched[i]
		page = append(page, &rec)
	}
	return page, total, nil
}

func matches(rec entity.MovementRecord, f repository.MovementFilter) bool {
	if f.Type != "" && rec.Type != f.Type {
		return false
	}
	if f.SKU != "" && rec.SKU != f.SKU {
		return false
	}
	if f.Warehouse != "" && rec.FromWarehouse != f.Warehouse && rec.ToWarehouse != f.Warehouse {
		return false
	}
	if f.Location != "" && rec.FromLocation != f.Location && rec.ToLocation != f.Location {
		return false
	}
	if f.PartnerID != "" && rec.PartnerID != f.PartnerID {
		return false
	}
	if f.RefNo != "" && rec.RefNo != f.RefNo {
		return false
	}
	if f.UserID != "" && rec.UserID != f.UserID {
		return false
	}
	if f.From != nil && rec.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.OccurredAt.After(*f.To) {
		return false
	}
	return true
}
