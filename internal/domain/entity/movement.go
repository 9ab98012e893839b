package entity

import "time"

// Tipos de movimiento del ledger.
const (
	MovementTypeRECEIPT  = "RECEIPT"  // entrada desde proveedor
	MovementTypeISSUE    = "ISSUE"    // salida a cliente o consumo
	MovementTypeADJUST   = "ADJUST"   // fija el on-hand en un valor absoluto
	MovementTypeTRANSFER = "TRANSFER" // traslado entre ubicaciones
	MovementTypeRETURN   = "RETURN"   // devolución de cliente
)

// MovementTypes los cinco tipos válidos.
var MovementTypes = []string{
	MovementTypeRECEIPT,
	MovementTypeISSUE,
	MovementTypeADJUST,
	MovementTypeTRANSFER,
	MovementTypeRETURN,
}

// IsValidMovementType reporta si t es uno de los tipos del enum.
func IsValidMovementType(t string) bool {
	for _, v := range MovementTypes {
		if t == v {
			return true
		}
	}
	return false
}

// MovementDraft movimiento ya validado, listo para aplicar al ledger.
// Las cantidades son enteras: el ledger cuenta unidades, nunca fracciones.
type MovementDraft struct {
	Type          string
	SKU           string
	Qty           int64
	UserID        string
	OccurredAt    time.Time
	FromWarehouse string
	FromLocation  string
	ToWarehouse   string
	ToLocation    string
	PartnerID     string
	RefNo         string
	Memo          string
}

// MovementRecord entrada inmutable del log: el draft más la identidad
// asignada al persistir.
type MovementRecord struct {
	ID        string
	CreatedAt time.Time
	MovementDraft
}
