package entity

// BalanceKey identifica un saldo: (SKU, bodega, ubicación).
// Location puede ser "" para stock a nivel bodega.
type BalanceKey struct {
	SKU       string
	Warehouse string
	Location  string
}

// BalanceRecord saldo trackeado de una llave.
// Reserved lo administra la lógica de pedidos; el ledger solo lo preserva.
type BalanceRecord struct {
	Key      BalanceKey
	OnHand   int64
	Reserved int64
}

// Available unidades disponibles para prometer: max(OnHand - Reserved, 0).
func (b BalanceRecord) Available() int64 {
	if avail := b.OnHand - b.Reserved; avail > 0 {
		return avail
	}
	return 0
}

// AggregateTotals acumulado de un alcance (SKU, bodega, ubicación o global).
type AggregateTotals struct {
	OnHand   int64
	Reserved int64
}

// IsZero reporta si ambos acumulados están en cero.
func (t AggregateTotals) IsZero() bool {
	return t.OnHand == 0 && t.Reserved == 0
}
