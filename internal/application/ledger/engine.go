package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/pkg/logger"
)

// Engine aplica drafts validados al Balance Store según la semántica del tipo
// de movimiento, alimenta el log append-only y los buckets de analítica, y
// sincroniza la proyección de inventario del producto.
//
// Tabla de efectos:
//
//	RECEIPT / RETURN  +qty en destino
//	ISSUE             conflicto si onHand(fromKey) < qty; si no -qty en origen
//	TRANSFER          conflicto si onHand(fromKey) < qty; si no -qty en origen, +qty en destino
//	ADJUST            SetAbsolute(toKey, qty) — fija el on-hand, no es delta
//
// Todo-o-nada: el conflicto se detecta antes de mutar y el log se alimenta
// antes de tocar saldos, de modo que un fallo en cualquier paso falible deja
// el Balance Store intacto. Las dos patas de un TRANSFER se aplican en un solo
// lote (ApplyDeltas); un lector concurrente nunca ve el origen debitado sin el
// destino acreditado.
type Engine struct {
	mu        sync.Mutex
	balances  repository.BalanceStore
	movements repository.MovementRepository
	analytics repository.AnalyticsStore
	products  repository.ProductRepository
	archiver  repository.MovementArchiver
	log       *logger.Logger
	now       func() time.Time
}

// NewEngine construye el motor. archiver puede ser el noop en memoria.
func NewEngine(
	balances repository.BalanceStore,
	movements repository.MovementRepository,
	analytics repository.AnalyticsStore,
	products repository.ProductRepository,
	archiver repository.MovementArchiver,
	log *logger.Logger,
) *Engine {
	return &Engine{
		balances:  balances,
		movements: movements,
		analytics: analytics,
		products:  products,
		archiver:  archiver,
		log:       log,
		now:       time.Now,
	}
}

// Apply aplica un draft validado. Devuelve el registro persistido, los saldos
// tocados (uno para RECEIPT/ISSUE/ADJUST/RETURN, dos para TRANSFER) y el
// producto con la proyección refrescada (nil si el SKU no está en el catálogo).
//
// En conflicto devuelve *domain.ConflictError y no muta ningún estado.
func (e *Engine) Apply(ctx context.Context, draft entity.MovementDraft) (*entity.MovementRecord, []entity.BalanceRecord, *entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fromKey := entity.BalanceKey{SKU: draft.SKU, Warehouse: draft.FromWarehouse, Location: draft.FromLocation}
	toKey := entity.BalanceKey{SKU: draft.SKU, Warehouse: draft.ToWarehouse, Location: draft.ToLocation}

	var deltas []repository.BalanceDelta
	absolute := false
	switch draft.Type {
	case entity.MovementTypeRECEIPT, entity.MovementTypeRETURN:
		deltas = []repository.BalanceDelta{{Key: toKey, OnHand: draft.Qty}}

	case entity.MovementTypeISSUE:
		if err := e.checkStock(fromKey, draft.Qty); err != nil {
			return nil, nil, nil, err
		}
		deltas = []repository.BalanceDelta{{Key: fromKey, OnHand: -draft.Qty}}

	case entity.MovementTypeTRANSFER:
		if err := e.checkStock(fromKey, draft.Qty); err != nil {
			return nil, nil, nil, err
		}
		deltas = []repository.BalanceDelta{
			{Key: fromKey, OnHand: -draft.Qty},
			{Key: toKey, OnHand: draft.Qty},
		}

	case entity.MovementTypeADJUST:
		absolute = true

	default:
		return nil, nil, nil, domain.ErrInvalidInput
	}

	record := &entity.MovementRecord{
		ID:            uuid.New().String(),
		CreatedAt:     e.now().UTC(),
		MovementDraft: draft,
	}
	// El log entra primero: si Append falla, ningún saldo fue tocado.
	if err := e.movements.Append(record); err != nil {
		return nil, nil, nil, err
	}

	var touched []entity.BalanceRecord
	if absolute {
		touched = []entity.BalanceRecord{e.balances.SetAbsolute(toKey, draft.Qty)}
	} else {
		touched = e.balances.ApplyDeltas(deltas)
	}
	e.analytics.Record(record)
	product := e.syncProjection(draft.SKU, touched)

	// Frontera de persistencia write-behind: el store en memoria es la verdad;
	// un fallo al archivar se reporta pero no revierte la mutación.
	if err := e.archiver.Archive(ctx, record, touched); err != nil {
		e.log.Warn().Err(err).Str("movement_id", record.ID).Msg("archivar movimiento")
	}

	e.log.Debug().
		Str("movement_id", record.ID).
		Str("type", draft.Type).
		Str("sku", draft.SKU).
		Int64("qty", draft.Qty).
		Msg("movimiento aplicado")

	return record, touched, product, nil
}

// checkStock valida que el débito no deje el saldo origen en negativo.
func (e *Engine) checkStock(key entity.BalanceKey, qty int64) error {
	current := e.balances.Get(key)
	if current.OnHand < qty {
		err := &domain.ConflictError{
			SKU:       key.SKU,
			Warehouse: key.Warehouse,
			Location:  key.Location,
			Requested: qty,
			Available: current.OnHand,
		}
		e.log.Warn().Str("sku", key.SKU).Str("warehouse", key.Warehouse).
			Int64("requested", qty).Int64("on_hand", current.OnHand).
			Msg("movimiento rechazado por stock insuficiente")
		return err
	}
	return nil
}
