package dto

import "time"

// MaxMovementPageSize tope duro del parámetro limit en el listado de movimientos.
const MaxMovementPageSize = 500

// RegisterMovementRequest body para POST /api/inventory/movements.
// Es el registro sin tipar que el validador convierte en un draft bien formado.
type RegisterMovementRequest struct {
	Type          string `json:"type"`
	SKU           string `json:"sku"`
	Qty           int64  `json:"qty"`
	UserID        string `json:"userId"`
	OccurredAt    string `json:"occurredAt,omitempty"` // RFC3339 o YYYY-MM-DD; vacío = now
	FromWarehouse string `json:"fromWarehouse,omitempty"`
	FromLocation  string `json:"fromLocation,omitempty"`
	ToWarehouse   string `json:"toWarehouse,omitempty"`
	ToLocation    string `json:"toLocation,omitempty"`
	PartnerID     string `json:"partnerId,omitempty"`
	RefNo         string `json:"refNo,omitempty"`
	Memo          string `json:"memo,omitempty"`
}

// MovementDTO un movimiento del log en respuestas.
type MovementDTO struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	SKU           string    `json:"sku"`
	Qty           int64     `json:"qty"`
	UserID        string    `json:"userId"`
	OccurredAt    time.Time `json:"occurredAt"`
	CreatedAt     time.Time `json:"createdAt"`
	FromWarehouse string    `json:"fromWarehouse,omitempty"`
	FromLocation  string    `json:"fromLocation,omitempty"`
	ToWarehouse   string    `json:"toWarehouse,omitempty"`
	ToLocation    string    `json:"toLocation,omitempty"`
	PartnerID     string    `json:"partnerId,omitempty"`
	RefNo         string    `json:"refNo,omitempty"`
	Memo          string    `json:"memo,omitempty"`
}

// BalanceDTO un saldo (SKU, bodega, ubicación) en respuestas.
// Available siempre se deriva: max(onHand - reserved, 0).
type BalanceDTO struct {
	SKU       string `json:"sku"`
	Warehouse string `json:"warehouse"`
	Location  string `json:"location,omitempty"`
	OnHand    int64  `json:"onHand"`
	Reserved  int64  `json:"reserved"`
	Available int64  `json:"available"`
}

// RegisterMovementResponse respuesta 201 de POST /api/inventory/movements:
// el movimiento persistido, los saldos que tocó y la proyección refrescada.
type RegisterMovementResponse struct {
	Movement  MovementDTO      `json:"movement"`
	Balances  []BalanceDTO     `json:"balances"`
	Inventory InventorySummary `json:"inventory"`
}

// ListMovementsRequest query params de GET /api/inventory/movements.
type ListMovementsRequest struct {
	Type      string `query:"type"`
	SKU       string `query:"sku"`
	Warehouse string `query:"warehouse"`
	Location  string `query:"location"`
	PartnerID string `query:"partnerId"`
	RefNo     string `query:"refNo"`
	UserID    string `query:"userId"`
	From      string `query:"from"` // YYYY-MM-DD o RFC3339
	To        string `query:"to"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

// Normalize aplica defaults y el clamp del limit (máximo 500).
func (r *ListMovementsRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = 50
	}
	if r.Limit > MaxMovementPageSize {
		r.Limit = MaxMovementPageSize
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// ListMovementsResponse respuesta de GET /api/inventory/movements.
type ListMovementsResponse struct {
	Total    int           `json:"total"`
	Count    int           `json:"count"`
	Offset   int           `json:"offset"`
	Limit    int           `json:"limit"`
	Items    []MovementDTO `json:"items"`
	Balances []BalanceDTO  `json:"balances"`
}

// AggregateTotalsDTO acumulado de un alcance.
type AggregateTotalsDTO struct {
	OnHand   int64 `json:"onHand"`
	Reserved int64 `json:"reserved"`
}

// BalancesResponse respuesta de GET /api/inventory/balances.
type BalancesResponse struct {
	Items       []BalanceDTO                  `json:"items"`
	BySKU       map[string]AggregateTotalsDTO `json:"bySku"`
	ByWarehouse map[string]AggregateTotalsDTO `json:"byWarehouse"`
	ByLocation  map[string]AggregateTotalsDTO `json:"byLocation"`
	Global      AggregateTotalsDTO            `json:"global"`
}
