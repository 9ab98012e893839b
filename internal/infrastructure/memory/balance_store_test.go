package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/memory"
)

func key(sku, wh, loc string) entity.BalanceKey {
	return entity.BalanceKey{SKU: sku, Warehouse: wh, Location: loc}
}

func TestBalanceStore_GetDeLlaveDesconocidaEsCero(t *testing.T) {
	s := memory.NewBalanceStore(nil)

	rec := s.Get(key("SKU-1", "BOG-01", "A-01"))
	assert.Equal(t, int64(0), rec.OnHand)
	assert.Equal(t, int64(0), rec.Reserved)
	assert.Empty(t, s.List(repository.BalanceFilter{}), "Get es lectura pura: no materializa la llave")
}

func TestBalanceStore_ApplyDeltaActualizaLosCuatroIndices(t *testing.T) {
	s := memory.NewBalanceStore(nil)

	s.ApplyDelta(key("SKU-1", "BOG-01", "A-01"), 10, 2)
	s.ApplyDelta(key("SKU-1", "MED-01", ""), 5, 0)
	s.ApplyDelta(key("SKU-2", "BOG-01", "A-01"), 7, 0)

	assert.Equal(t, entity.AggregateTotals{OnHand: 15, Reserved: 2}, s.TotalsBySKU("SKU-1"))
	assert.Equal(t, entity.AggregateTotals{OnHand: 7}, s.TotalsBySKU("SKU-2"))
	assert.Equal(t, entity.AggregateTotals{OnHand: 17, Reserved: 2}, s.TotalsByWarehouse("BOG-01"))
	assert.Equal(t, entity.AggregateTotals{OnHand: 5}, s.TotalsByWarehouse("MED-01"))
	assert.Equal(t, entity.AggregateTotals{OnHand: 17, Reserved: 2}, s.TotalsByLocation("BOG-01", "A-01"))
	assert.Equal(t, entity.AggregateTotals{OnHand: 22, Reserved: 2}, s.GlobalTotals())
}

func TestBalanceStore_ApplyDeltasAplicaElLoteCompleto(t *testing.T) {
	s := memory.NewBalanceStore(nil)
	origen := key("SKU-1", "BOG-01", "A-01")
	destino := key("SKU-1", "MED-01", "B-02")
	s.ApplyDelta(origen, 10, 0)

	out := s.ApplyDeltas([]repository.BalanceDelta{
		{Key: origen, OnHand: -4},
		{Key: destino, OnHand: 4},
	})

	require.Len(t, out, 2, "un registro resultante por delta, en orden")
	assert.Equal(t, int64(6), out[0].OnHand)
	assert.Equal(t, int64(4), out[1].OnHand)
	assert.Equal(t, entity.AggregateTotals{OnHand: 10}, s.GlobalTotals(),
		"el lote redistribuye sin alterar el total global")
}

// Los índices agregados deben igualar en todo momento la suma de los
// registros trackeados, sin importar la secuencia de deltas.
func TestBalanceStore_AgregadosIgualanLaSumaDeRegistros(t *testing.T) {
	s := memory.NewBalanceStore(nil)

	s.ApplyDelta(key("SKU-1", "BOG-01", "A-01"), 10, 0)
	s.ApplyDelta(key("SKU-1", "BOG-01", "A-01"), -4, 1)
	s.ApplyDelta(key("SKU-1", "MED-01", ""), 3, 0)
	s.SetAbsolute(key("SKU-2", "BOG-01", ""), 8)
	s.ApplyDelta(key("SKU-2", "BOG-01", ""), -8, 0)

	var sum entity.AggregateTotals
	for _, rec := range s.List(repository.BalanceFilter{}) {
		sum.OnHand += rec.OnHand
		sum.Reserved += rec.Reserved
	}
	assert.Equal(t, sum, s.GlobalTotals(), "global = suma de registros trackeados")

	agg := s.Aggregates()
	var bySKU entity.AggregateTotals
	for _, v := range agg.BySKU {
		bySKU.OnHand += v.OnHand
		bySKU.Reserved += v.Reserved
	}
	assert.Equal(t, sum, bySKU, "la partición por SKU también debe sumar el global")
}

func TestBalanceStore_SetAbsolutoCalculaElDelta(t *testing.T) {
	s := memory.NewBalanceStore(nil)
	k := key("SKU-1", "BOG-01", "")

	s.ApplyDelta(k, 10, 0)
	rec := s.SetAbsolute(k, 3)

	assert.Equal(t, int64(3), rec.OnHand)
	assert.Equal(t, int64(3), s.TotalsBySKU("SKU-1").OnHand, "el agregado refleja el ajuste, no lo duplica")
}

// Una entrada de índice que llega a cero se elimina para acotar los mapas,
// pero el registro trackeado sobrevive (su baseline ya fue consumido).
func TestBalanceStore_IndiceEnCeroSePoda(t *testing.T) {
	s := memory.NewBalanceStore(nil)
	k := key("SKU-1", "BOG-01", "A-01")

	s.ApplyDelta(k, 10, 0)
	s.ApplyDelta(k, -10, 0)

	agg := s.Aggregates()
	assert.NotContains(t, agg.BySKU, "SKU-1", "entrada en cero eliminada del índice por SKU")
	assert.NotContains(t, agg.ByWarehouse, "BOG-01", "entrada en cero eliminada del índice por bodega")
	assert.NotContains(t, agg.ByLocation, "BOG-01/A-01", "entrada en cero eliminada del índice por ubicación")
	assert.True(t, s.GlobalTotals().IsZero())

	require.Len(t, s.List(repository.BalanceFilter{}), 1, "el registro trackeado permanece")
	assert.Equal(t, int64(0), s.Get(k).OnHand)
}

// stubBootstrap siembra un baseline fijo para cualquier llave consultada.
type stubBootstrap struct {
	onHand map[entity.BalanceKey]int64
}

func (b stubBootstrap) ItemOnHand(sku, wh, loc string) (int64, bool) {
	v, ok := b.onHand[entity.BalanceKey{SKU: sku, Warehouse: wh, Location: loc}]
	return v, ok
}

func TestBalanceStore_BootstrapSiembraElPrimerToque(t *testing.T) {
	k := key("SKU-1", "BOG-01", "A-01")
	s := memory.NewBalanceStore(stubBootstrap{onHand: map[entity.BalanceKey]int64{k: 20}})

	// Lectura pura: devuelve el baseline sin trackear la llave
	assert.Equal(t, int64(20), s.Get(k).OnHand)
	assert.Empty(t, s.List(repository.BalanceFilter{}))
	assert.True(t, s.GlobalTotals().IsZero(), "el baseline no entra a agregados hasta el primer delta")

	// Primer delta: baseline + delta entran juntos a registros y agregados
	rec := s.ApplyDelta(k, -5, 0)
	assert.Equal(t, int64(15), rec.OnHand)
	assert.Equal(t, int64(15), s.GlobalTotals().OnHand)

	// Segundo delta: el baseline no se vuelve a aplicar
	rec = s.ApplyDelta(k, 1, 0)
	assert.Equal(t, int64(16), rec.OnHand)
	assert.Equal(t, int64(16), s.GlobalTotals().OnHand)
}

// Llevar a cero una llave sembrada por bootstrap no debe reactivar el baseline.
func TestBalanceStore_BaselineNoSeReaplicaTrasLlegarACero(t *testing.T) {
	k := key("SKU-1", "BOG-01", "")
	s := memory.NewBalanceStore(stubBootstrap{onHand: map[entity.BalanceKey]int64{k: 10}})

	s.ApplyDelta(k, -10, 0) // baseline 10 - 10 = 0
	assert.Equal(t, int64(0), s.Get(k).OnHand, "la llave sigue trackeada en cero")

	rec := s.ApplyDelta(k, 3, 0)
	assert.Equal(t, int64(3), rec.OnHand, "3, no 13: el baseline ya fue consumido")
	assert.Equal(t, int64(3), s.GlobalTotals().OnHand)
}

func TestBalanceStore_ListFiltraYOrdena(t *testing.T) {
	s := memory.NewBalanceStore(nil)
	s.ApplyDelta(key("SKU-2", "BOG-01", ""), 1, 0)
	s.ApplyDelta(key("SKU-1", "MED-01", ""), 2, 0)
	s.ApplyDelta(key("SKU-1", "BOG-01", "A-01"), 3, 0)

	all := s.List(repository.BalanceFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "SKU-1", all[0].Key.SKU, "orden por SKU, luego bodega, luego ubicación")
	assert.Equal(t, "BOG-01", all[0].Key.Warehouse)

	bog := s.List(repository.BalanceFilter{Warehouse: "BOG-01"})
	assert.Len(t, bog, 2)

	one := s.List(repository.BalanceFilter{SKU: "SKU-1", Warehouse: "MED-01"})
	require.Len(t, one, 1)
	assert.Equal(t, int64(2), one[0].OnHand)
}

func TestBalanceRecord_Available(t *testing.T) {
	assert.Equal(t, int64(7), entity.BalanceRecord{OnHand: 10, Reserved: 3}.Available())
	assert.Equal(t, int64(0), entity.BalanceRecord{OnHand: 3, Reserved: 10}.Available(),
		"available nunca es negativo")
}
