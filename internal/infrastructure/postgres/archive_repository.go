package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

var _ repository.MovementArchiver = (*ArchiveRepo)(nil)

// ArchiveRepo adaptador PostgreSQL de la frontera de persistencia del ledger:
// archiva cada movimiento confirmado y el snapshot de los saldos que tocó,
// en una sola transacción (Commit o Rollback).
type ArchiveRepo struct {
	pool *pgxpool.Pool
}

// NewArchiveRepository construye el adaptador con el pool.
func NewArchiveRepository(pool *pgxpool.Pool) *ArchiveRepo {
	return &ArchiveRepo{pool: pool}
}

// Archive persiste el movimiento y hace upsert del snapshot de saldos.
func (r *ArchiveRepo) Archive(ctx context.Context, movement *entity.MovementRecord, balances []entity.BalanceRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertMovement := `
		INSERT INTO movement_archive
			(id, type, sku, qty, user_id, occurred_at, created_at,
			 from_warehouse, from_location, to_warehouse, to_location,
			 partner_id, ref_no, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	if _, err := tx.Exec(ctx, insertMovement,
		movement.ID, movement.Type, movement.SKU, movement.Qty, movement.UserID,
		movement.OccurredAt, movement.CreatedAt,
		movement.FromWarehouse, movement.FromLocation, movement.ToWarehouse, movement.ToLocation,
		movement.PartnerID, movement.RefNo, movement.Memo,
	); err != nil {
		return fmt.Errorf("insert movement archive: %w", err)
	}

	upsertBalance := `
		INSERT INTO balance_snapshots (sku, warehouse_code, location_code, on_hand, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (sku, warehouse_code, location_code)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, reserved = EXCLUDED.reserved, updated_at = now()`
	for _, b := range balances {
		if _, err := tx.Exec(ctx, upsertBalance,
			b.Key.SKU, b.Key.Warehouse, b.Key.Location, b.OnHand, b.Reserved,
		); err != nil {
			return fmt.Errorf("upsert balance snapshot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
