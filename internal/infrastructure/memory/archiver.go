package memory

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.MovementArchiver = (*NoopArchiver)(nil)

// NoopArchiver frontera de persistencia nula: el default cuando el servicio
// corre puramente en memoria (el store en memoria es la verdad autoritativa).
type NoopArchiver struct{}

// NewNoopArchiver construye el archiver nulo.
func NewNoopArchiver() *NoopArchiver { return &NoopArchiver{} }

// Archive no hace nada.
func (NoopArchiver) Archive(context.Context, *entity.MovementRecord, []entity.BalanceRecord) error {
	return nil
}
