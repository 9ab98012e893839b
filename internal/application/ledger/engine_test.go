package ledger_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/ledger"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type engineFixture struct {
	engine    *ledger.Engine
	balances  *memory.BalanceStore
	movements *memory.MovementLog
	buckets   *memory.BucketStore
	products  *memory.ProductStore
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	products := memory.NewProductStore()
	balances := memory.NewBalanceStore(products)
	movements := memory.NewMovementLog()
	buckets := memory.NewBucketStore()
	engine := ledger.NewEngine(balances, movements, buckets, products, memory.NewNoopArchiver(), logger.Nop())
	return &engineFixture{
		engine:    engine,
		balances:  balances,
		movements: movements,
		buckets:   buckets,
		products:  products,
	}
}

func draft(movType, sku string, qty int64) entity.MovementDraft {
	return entity.MovementDraft{
		Type:       movType,
		SKU:        sku,
		Qty:        qty,
		UserID:     "user-1",
		OccurredAt: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func (f *engineFixture) apply(t *testing.T, d entity.MovementDraft) []entity.BalanceRecord {
	t.Helper()
	_, touched, _, err := f.engine.Apply(context.Background(), d)
	require.NoError(t, err)
	return touched
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de efectos por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_ReceiptSumaAlDestino(t *testing.T) {
	f := newEngineFixture(t)

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	d.ToWarehouse, d.ToLocation = "BOG-01", "A-01"
	touched := f.apply(t, d)

	require.Len(t, touched, 1)
	assert.Equal(t, int64(10), touched[0].OnHand)

	key := entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG-01", Location: "A-01"}
	assert.Equal(t, int64(10), f.balances.Get(key).OnHand)
}

func TestEngine_ReturnSumaComoEntrada(t *testing.T) {
	f := newEngineFixture(t)

	d := draft(entity.MovementTypeRETURN, "SKU-1", 3)
	d.ToWarehouse = "BOG-01"
	d.PartnerID = "cliente-9"
	touched := f.apply(t, d)

	require.Len(t, touched, 1)
	assert.Equal(t, int64(3), touched[0].OnHand)
}

func TestEngine_IssueRestaDelOrigen(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec)

	iss := draft(entity.MovementTypeISSUE, "SKU-1", 4)
	iss.FromWarehouse = "BOG-01"
	touched := f.apply(t, iss)

	require.Len(t, touched, 1)
	assert.Equal(t, int64(6), touched[0].OnHand)
}

func TestEngine_AdjustFijaValorAbsoluto(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec)

	// ADJUST no es delta: qty 25 deja el on-hand exactamente en 25
	adj := draft(entity.MovementTypeADJUST, "SKU-1", 25)
	adj.ToWarehouse = "BOG-01"
	touched := f.apply(t, adj)

	require.Len(t, touched, 1)
	assert.Equal(t, int64(25), touched[0].OnHand, "ADJUST fija, no suma")

	// ADJUST a 0 vacía la ubicación
	adj0 := draft(entity.MovementTypeADJUST, "SKU-1", 0)
	adj0.ToWarehouse = "BOG-01"
	touched = f.apply(t, adj0)
	assert.Equal(t, int64(0), touched[0].OnHand)
}

func TestEngine_TransferMueveEntreUbicaciones(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	rec.ToWarehouse, rec.ToLocation = "BOG-01", "A-01"
	f.apply(t, rec)

	tr := draft(entity.MovementTypeTRANSFER, "SKU-1", 4)
	tr.FromWarehouse, tr.FromLocation = "BOG-01", "A-01"
	tr.ToWarehouse, tr.ToLocation = "MED-01", "B-02"
	touched := f.apply(t, tr)

	require.Len(t, touched, 2, "TRANSFER toca origen y destino")
	assert.Equal(t, int64(6), touched[0].OnHand, "origen debitado")
	assert.Equal(t, int64(4), touched[1].OnHand, "destino acreditado")
}

// La suma global de on-hand no cambia con un TRANSFER: solo se redistribuye.
func TestEngine_TransferConservaElTotalGlobal(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec)
	before := f.balances.GlobalTotals()

	tr := draft(entity.MovementTypeTRANSFER, "SKU-1", 7)
	tr.FromWarehouse = "BOG-01"
	tr.ToWarehouse = "MED-01"
	f.apply(t, tr)

	assert.Equal(t, before, f.balances.GlobalTotals(),
		"el total global debe conservarse tras un traslado")
	assert.Equal(t, int64(3), f.balances.TotalsByWarehouse("BOG-01").OnHand)
	assert.Equal(t, int64(7), f.balances.TotalsByWarehouse("MED-01").OnHand)
}

// Un lector concurrente nunca debe observar un TRANSFER a medias: las dos
// patas se aplican bajo la misma sección crítica del store, así que el total
// global se conserva en cada lectura, no solo al final.
func TestEngine_TransferNoEsObservableAMedias(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 100)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec)

	done := make(chan struct{})
	var sesgadas int64
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				if f.balances.GlobalTotals().OnHand != 100 {
					atomic.AddInt64(&sesgadas, 1)
				}
			}
		}
	}()

	origen, destino := "BOG-01", "MED-01"
	for i := 0; i < 5000; i++ {
		tr := draft(entity.MovementTypeTRANSFER, "SKU-1", 100)
		tr.FromWarehouse, tr.ToWarehouse = origen, destino
		f.apply(t, tr)
		origen, destino = destino, origen
	}
	close(done)
	wg.Wait()

	assert.Zero(t, atomic.LoadInt64(&sesgadas),
		"ninguna lectura debe ver el origen debitado sin el destino acreditado")
	assert.Equal(t, int64(100), f.balances.GlobalTotals().OnHand)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conflicto por stock insuficiente: todo-o-nada
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_IssueSinStockEsConflicto(t *testing.T) {
	f := newEngineFixture(t)

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 5)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec)

	iss := draft(entity.MovementTypeISSUE, "SKU-1", 8)
	iss.FromWarehouse = "BOG-01"
	_, _, _, err := f.engine.Apply(context.Background(), iss)

	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, int64(8), cErr.Requested)
	assert.Equal(t, int64(5), cErr.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Un movimiento rechazado no debe dejar rastro en ningún almacén: ni saldos,
// ni log, ni buckets, ni proyección de producto.
func TestEngine_ConflictoNoMutaNada(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1",
		Items: []entity.InventoryItem{{WarehouseCode: "BOG-01", OnHand: 5, Reserved: 2}},
	}))

	rec := draft(entity.MovementTypeRECEIPT, "SKU-1", 5)
	rec.ToWarehouse = "BOG-01"
	f.apply(t, rec) // on-hand 5 (baseline) + 5 = 10

	balancesBefore := f.balances.List(repository.BalanceFilter{})
	globalBefore := f.balances.GlobalTotals()
	_, totalBefore, err := f.movements.List(repository.MovementFilter{})
	require.NoError(t, err)
	productBefore, err := f.products.GetBySKU("SKU-1")
	require.NoError(t, err)
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	bucketsBefore := f.buckets.QueryDaily(day, day, "", "")

	// TRANSFER que excede el on-hand del origen
	tr := draft(entity.MovementTypeTRANSFER, "SKU-1", 99)
	tr.FromWarehouse = "BOG-01"
	tr.ToWarehouse = "MED-01"
	_, _, _, err = f.engine.Apply(context.Background(), tr)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)

	assert.Equal(t, balancesBefore, f.balances.List(repository.BalanceFilter{}), "los saldos no deben cambiar")
	assert.Equal(t, globalBefore, f.balances.GlobalTotals(), "el agregado global no debe cambiar")
	_, totalAfter, err := f.movements.List(repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, totalBefore, totalAfter, "el log no debe crecer")
	productAfter, err := f.products.GetBySKU("SKU-1")
	require.NoError(t, err)
	assert.Equal(t, productBefore, productAfter, "la proyección no debe tocarse")
	assert.Equal(t, bucketsBefore, f.buckets.QueryDaily(day, day, "", ""), "los buckets no deben cambiar")
}

// Reserved nunca protege del débito: disponible bajo pero on-hand suficiente pasa.
func TestEngine_ReservedNoBloqueaElDebito(t *testing.T) {
	f := newEngineFixture(t)

	key := entity.BalanceKey{SKU: "SKU-1", Warehouse: "BOG-01"}
	f.balances.ApplyDelta(key, 10, 8) // on-hand 10, reserved 8, disponible 2

	iss := draft(entity.MovementTypeISSUE, "SKU-1", 10)
	iss.FromWarehouse = "BOG-01"
	touched := f.apply(t, iss)

	assert.Equal(t, int64(0), touched[0].OnHand)
	assert.Equal(t, int64(8), touched[0].Reserved, "reserved se preserva tal cual")
}

// ──────────────────────────────────────────────────────────────────────────────
// Baseline desde el snapshot de producto
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_BaselineDeProductoEntraAlPrimerToque(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1",
		Items: []entity.InventoryItem{{WarehouseCode: "BOG-01", LocationCode: "A-01", OnHand: 20}},
	}))

	// El ISSUE de 15 pasa porque el baseline del producto aporta 20
	iss := draft(entity.MovementTypeISSUE, "SKU-1", 15)
	iss.FromWarehouse, iss.FromLocation = "BOG-01", "A-01"
	touched := f.apply(t, iss)

	assert.Equal(t, int64(5), touched[0].OnHand, "20 del baseline - 15 del issue")
	assert.Equal(t, int64(5), f.balances.TotalsBySKU("SKU-1").OnHand,
		"el baseline entra a los agregados junto con el delta")
}

// ──────────────────────────────────────────────────────────────────────────────
// Efectos laterales del éxito: log, buckets, proyección, archivo
// ──────────────────────────────────────────────────────────────────────────────

func TestEngine_ExitoAlimentaLogYBuckets(t *testing.T) {
	f := newEngineFixture(t)

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	d.ToWarehouse = "BOG-01"
	record, _, _, err := f.engine.Apply(context.Background(), d)
	require.NoError(t, err)

	assert.NotEmpty(t, record.ID, "el registro recibe identidad al persistir")
	assert.False(t, record.CreatedAt.IsZero())

	items, total, err := f.movements.List(repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, record.ID, items[0].ID)

	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	points := f.buckets.QueryDaily(day, day, "SKU-1", "BOG-01")
	require.Len(t, points, 1)
	assert.Equal(t, int64(10), points[0].Inbound)
}

func TestEngine_ProyeccionPreservaReserved(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1",
		Items: []entity.InventoryItem{{WarehouseCode: "BOG-01", LocationCode: "A-01", OnHand: 5, Reserved: 3}},
	}))

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	d.ToWarehouse, d.ToLocation = "BOG-01", "A-01"
	_, _, product, err := f.engine.Apply(context.Background(), d)
	require.NoError(t, err)

	require.NotNil(t, product)
	i := product.ItemAt("BOG-01", "A-01")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, int64(15), product.Items[i].OnHand, "on-hand refrescado desde el ledger")
	assert.Equal(t, int64(3), product.Items[i].Reserved, "reserved intacto: es de la lógica de pedidos")
	assert.Equal(t, int64(15), product.TotalOnHand)
	assert.Equal(t, int64(3), product.TotalReserved)
}

func TestEngine_ProyeccionAgregaItemNuevo(t *testing.T) {
	f := newEngineFixture(t)

	require.NoError(t, f.products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1",
		Items: []entity.InventoryItem{{WarehouseCode: "BOG-01", OnHand: 5}},
	}))

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 7)
	d.ToWarehouse = "MED-01"
	_, _, product, err := f.engine.Apply(context.Background(), d)
	require.NoError(t, err)

	require.NotNil(t, product)
	assert.GreaterOrEqual(t, product.ItemAt("MED-01", ""), 0, "la bodega nueva aparece en la proyección")
	assert.Equal(t, int64(12), product.TotalOnHand)
}

func TestEngine_SKUFueraDelCatalogoNoTieneProyeccion(t *testing.T) {
	f := newEngineFixture(t)

	d := draft(entity.MovementTypeRECEIPT, "SKU-FANTASMA", 1)
	d.ToWarehouse = "BOG-01"
	_, _, product, err := f.engine.Apply(context.Background(), d)
	require.NoError(t, err)
	assert.Nil(t, product, "un SKU solo trackeado por el ledger no mantiene proyección")
}

// Secuencia completa sobre un store fresco: recepción, salida, traslado,
// salida rechazada y ajuste absoluto, verificando saldos y agregados en cada paso.
func TestEngine_SecuenciaCompleta(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	l1 := entity.BalanceKey{SKU: "X", Warehouse: "W", Location: "L1"}
	l2 := entity.BalanceKey{SKU: "X", Warehouse: "W2", Location: "L2"}

	rec := draft(entity.MovementTypeRECEIPT, "X", 100)
	rec.ToWarehouse, rec.ToLocation = "W", "L1"
	f.apply(t, rec)
	assert.Equal(t, int64(100), f.balances.Get(l1).OnHand)
	assert.Equal(t, int64(100), f.balances.GlobalTotals().OnHand)

	iss := draft(entity.MovementTypeISSUE, "X", 40)
	iss.FromWarehouse, iss.FromLocation = "W", "L1"
	f.apply(t, iss)
	assert.Equal(t, int64(60), f.balances.Get(l1).OnHand)

	tr := draft(entity.MovementTypeTRANSFER, "X", 20)
	tr.FromWarehouse, tr.FromLocation = "W", "L1"
	tr.ToWarehouse, tr.ToLocation = "W2", "L2"
	f.apply(t, tr)
	assert.Equal(t, int64(40), f.balances.Get(l1).OnHand)
	assert.Equal(t, int64(20), f.balances.Get(l2).OnHand)

	over := draft(entity.MovementTypeISSUE, "X", 999)
	over.FromWarehouse, over.FromLocation = "W", "L1"
	_, _, _, err := f.engine.Apply(ctx, over)
	var cErr *domain.ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, int64(40), f.balances.Get(l1).OnHand, "el rechazo no altera los saldos")
	assert.Equal(t, int64(20), f.balances.Get(l2).OnHand)

	adj := draft(entity.MovementTypeADJUST, "X", 15)
	adj.ToWarehouse, adj.ToLocation = "W2", "L2"
	f.apply(t, adj)
	assert.Equal(t, int64(15), f.balances.Get(l2).OnHand, "ADJUST fija en 15 sin importar el valor previo")

	// Agregados consistentes al final: 40 en W/L1 + 15 en W2/L2
	assert.Equal(t, int64(55), f.balances.TotalsBySKU("X").OnHand)
	assert.Equal(t, int64(55), f.balances.GlobalTotals().OnHand)

	_, total, err := f.movements.List(repository.MovementFilter{SKU: "X"})
	require.NoError(t, err)
	assert.Equal(t, 4, total, "solo los movimientos aceptados quedan en el log")
}

// failingLog simula un log de movimientos que rechaza la escritura.
type failingLog struct{}

func (failingLog) Append(*entity.MovementRecord) error { return errors.New("log no disponible") }
func (failingLog) List(repository.MovementFilter) ([]*entity.MovementRecord, int, error) {
	return nil, 0, nil
}
func (failingLog) Reset() {}

// El log entra antes que los saldos: si Append falla, el movimiento falla
// completo y ni saldos, ni buckets, ni proyección quedan mutados.
func TestEngine_FalloDelLogNoMutaSaldos(t *testing.T) {
	products := memory.NewProductStore()
	balances := memory.NewBalanceStore(products)
	buckets := memory.NewBucketStore()
	engine := ledger.NewEngine(balances, failingLog{}, buckets, products, memory.NewNoopArchiver(), logger.Nop())

	require.NoError(t, products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1",
		Items: []entity.InventoryItem{{WarehouseCode: "BOG-01", OnHand: 5}},
	}))
	productBefore, err := products.GetBySKU("SKU-1")
	require.NoError(t, err)

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	d.ToWarehouse = "BOG-01"
	_, _, _, err = engine.Apply(context.Background(), d)

	require.Error(t, err)
	assert.Equal(t, entity.AggregateTotals{}, balances.GlobalTotals(), "los saldos quedan intactos")
	assert.Empty(t, balances.List(repository.BalanceFilter{}), "ninguna llave se materializa")
	day := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	points := buckets.QueryDaily(day, day, "", "")
	require.Len(t, points, 1)
	assert.Equal(t, entity.DailyBucket{}, points[0].DailyBucket, "los buckets no registran nada")
	productAfter, err := products.GetBySKU("SKU-1")
	require.NoError(t, err)
	assert.Equal(t, productBefore, productAfter, "la proyección no se toca")
}

// failingArchiver simula una frontera de persistencia caída.
type failingArchiver struct{}

func (failingArchiver) Archive(context.Context, *entity.MovementRecord, []entity.BalanceRecord) error {
	return errors.New("postgres caído")
}

// El archivo es write-behind: su fallo se reporta pero nunca revierte el movimiento.
func TestEngine_FalloDelArchivoNoRevierte(t *testing.T) {
	products := memory.NewProductStore()
	balances := memory.NewBalanceStore(products)
	movements := memory.NewMovementLog()
	buckets := memory.NewBucketStore()
	engine := ledger.NewEngine(balances, movements, buckets, products, failingArchiver{}, logger.Nop())

	d := draft(entity.MovementTypeRECEIPT, "SKU-1", 10)
	d.ToWarehouse = "BOG-01"
	record, _, _, err := engine.Apply(context.Background(), d)

	require.NoError(t, err, "el fallo del archivador no es fallo del movimiento")
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, int64(10), balances.GlobalTotals().OnHand)
}
