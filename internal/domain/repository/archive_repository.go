package repository

import (
	"context"

	"github.com/jhoicas/stockledger/internal/domain/entity"
)

// MovementArchiver frontera de persistencia inyectable del ledger.
// Se invoca después de confirmar una mutación, con el movimiento aplicado y
// los saldos que tocó. El store en memoria es la verdad autoritativa: un
// fallo del archiver se registra en el log pero nunca revierte la mutación.
type MovementArchiver interface {
	Archive(ctx context.Context, movement *entity.MovementRecord, balances []entity.BalanceRecord) error
}
