package dto

// InventoryItemDTO stock de un producto en una (bodega, ubicación).
type InventoryItemDTO struct {
	Warehouse string `json:"warehouse"`
	Location  string `json:"location,omitempty"`
	OnHand    int64  `json:"onHand"`
	Reserved  int64  `json:"reserved"`
}

// InventorySummary proyección de inventario de un SKU: lista de items por
// ubicación y totales recalculados desde la lista completa.
type InventorySummary struct {
	TotalOnHand   int64              `json:"totalOnHand"`
	TotalReserved int64              `json:"totalReserved"`
	Items         []InventoryItemDTO `json:"items"`
}
