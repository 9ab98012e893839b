package ledger_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/ledger"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestValidator arma un validador con un directorio sembrado:
// bodegas BOG-01 (con ubicación A-01) y MED-01 (sin ubicaciones).
func newTestValidator(t *testing.T) *ledger.Validator {
	t.Helper()
	warehouses := memory.NewWarehouseStore()
	locations := memory.NewLocationStore()
	require.NoError(t, warehouses.Create(&entity.Warehouse{ID: "w1", Code: "BOG-01", Name: "Bodega Bogotá"}))
	require.NoError(t, warehouses.Create(&entity.Warehouse{ID: "w2", Code: "MED-01", Name: "Bodega Medellín"}))
	require.NoError(t, locations.Create(&entity.Location{ID: "l1", Code: "A-01", WarehouseCode: "BOG-01", Name: "Rack A"}))
	return ledger.NewValidator(ledger.NewDirectory(warehouses, locations))
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr, "debe ser un error de validación")
	return vErr.Messages
}

// ──────────────────────────────────────────────────────────────────────────────
// Acumulación de fallos
// ──────────────────────────────────────────────────────────────────────────────

// Un request completamente roto debe reportar todos los fallos a la vez,
// no solo el primero.
func TestValidator_AcumulaTodosLosFallos(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(dto.RegisterMovementRequest{
		Type: "BOGUS",
		SKU:  "   ",
		Qty:  0,
	})

	msgs := validationMessages(t, err)
	assert.GreaterOrEqual(t, len(msgs), 3,
		"type inválido, sku vacío y qty no positiva deben reportarse juntos")
}

func TestValidator_RequestValido(t *testing.T) {
	v := newTestValidator(t)

	draft, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "  SKU-1  ",
		Qty:         10,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
		ToLocation:  "A-01",
		OccurredAt:  "2026-03-05T10:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "SKU-1", draft.SKU, "el sku debe quedar sin espacios")
	assert.Equal(t, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), draft.OccurredAt)
}

func TestValidator_OccurredAtPorDefectoEsAhora(t *testing.T) {
	v := newTestValidator(t)
	before := time.Now().UTC()

	draft, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "SKU-1",
		Qty:         1,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
	})

	require.NoError(t, err)
	assert.False(t, draft.OccurredAt.Before(before), "sin occurredAt se usa el instante actual UTC")
}

func TestValidator_OccurredAtFechaSimple(t *testing.T) {
	v := newTestValidator(t)

	draft, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "SKU-1",
		Qty:         1,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
		OccurredAt:  "2026-03-05",
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), draft.OccurredAt)
}

func TestValidator_OccurredAtInvalido(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "SKU-1",
		Qty:         1,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
		OccurredAt:  "05/03/2026",
	})

	msgs := validationMessages(t, err)
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "occurredAt")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas por tipo
// ──────────────────────────────────────────────────────────────────────────────

func TestValidator_QtyPorTipo(t *testing.T) {
	v := newTestValidator(t)

	// ADJUST admite qty 0 (vaciar la ubicación)
	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeADJUST,
		SKU:         "SKU-1",
		Qty:         0,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
	})
	assert.NoError(t, err, "ADJUST con qty 0 es válido")

	// ADJUST rechaza negativos
	_, err = v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeADJUST,
		SKU:         "SKU-1",
		Qty:         -5,
		UserID:      "user-1",
		ToWarehouse: "BOG-01",
	})
	assert.Error(t, err, "ADJUST con qty negativa debe fallar")

	// El resto exige qty > 0
	_, err = v.Validate(dto.RegisterMovementRequest{
		Type:          entity.MovementTypeISSUE,
		SKU:           "SKU-1",
		Qty:           0,
		UserID:        "user-1",
		FromWarehouse: "BOG-01",
	})
	assert.Error(t, err, "ISSUE con qty 0 debe fallar")
}

func TestValidator_BodegasObligatoriasPorTipo(t *testing.T) {
	v := newTestValidator(t)

	cases := []struct {
		name string
		in   dto.RegisterMovementRequest
		want string
	}{
		{
			name: "RECEIPT sin destino",
			in:   dto.RegisterMovementRequest{Type: entity.MovementTypeRECEIPT, SKU: "S", Qty: 1, UserID: "u"},
			want: "toWarehouse",
		},
		{
			name: "ISSUE sin origen",
			in:   dto.RegisterMovementRequest{Type: entity.MovementTypeISSUE, SKU: "S", Qty: 1, UserID: "u"},
			want: "fromWarehouse",
		},
		{
			name: "RETURN sin destino",
			in:   dto.RegisterMovementRequest{Type: entity.MovementTypeRETURN, SKU: "S", Qty: 1, UserID: "u"},
			want: "toWarehouse",
		},
		{
			name: "TRANSFER sin origen ni destino",
			in:   dto.RegisterMovementRequest{Type: entity.MovementTypeTRANSFER, SKU: "S", Qty: 1, UserID: "u"},
			want: "fromWarehouse",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(tc.in)
			msgs := validationMessages(t, err)
			found := false
			for _, m := range msgs {
				if strings.Contains(m, tc.want) {
					found = true
				}
			}
			assert.True(t, found, "debe mencionar el campo %s: %v", tc.want, msgs)
		})
	}
}

func TestValidator_TransferMismaUbicacionRechazado(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:          entity.MovementTypeTRANSFER,
		SKU:           "SKU-1",
		Qty:           5,
		UserID:        "user-1",
		FromWarehouse: "BOG-01",
		FromLocation:  "A-01",
		ToWarehouse:   "BOG-01",
		ToLocation:    "A-01",
	})
	assert.Error(t, err, "origen y destino idénticos no tienen efecto y se rechazan")

	// Misma bodega pero distinta ubicación sí es un traslado real
	_, err = v.Validate(dto.RegisterMovementRequest{
		Type:          entity.MovementTypeTRANSFER,
		SKU:           "SKU-1",
		Qty:           5,
		UserID:        "user-1",
		FromWarehouse: "BOG-01",
		FromLocation:  "A-01",
		ToWarehouse:   "BOG-01",
		ToLocation:    "",
	})
	assert.NoError(t, err, "traslado dentro de la misma bodega a otra ubicación es válido")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución contra el directorio
// ──────────────────────────────────────────────────────────────────────────────

func TestValidator_BodegaInexistente(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "SKU-1",
		Qty:         1,
		UserID:      "user-1",
		ToWarehouse: "NO-EXISTE",
	})

	msgs := validationMessages(t, err)
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "NO-EXISTE")
}

func TestValidator_UbicacionDeOtraBodega(t *testing.T) {
	v := newTestValidator(t)

	// A-01 existe pero pertenece a BOG-01, no a MED-01
	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:        entity.MovementTypeRECEIPT,
		SKU:         "SKU-1",
		Qty:         1,
		UserID:      "user-1",
		ToWarehouse: "MED-01",
		ToLocation:  "A-01",
	})

	msgs := validationMessages(t, err)
	assert.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "A-01")
}

func TestValidator_UbicacionSinBodega(t *testing.T) {
	v := newTestValidator(t)

	_, err := v.Validate(dto.RegisterMovementRequest{
		Type:         entity.MovementTypeISSUE,
		SKU:          "SKU-1",
		Qty:          1,
		UserID:       "user-1",
		FromLocation: "A-01", // sin fromWarehouse
	})

	assert.Error(t, err, "una ubicación sin su bodega no es resoluble")
}
