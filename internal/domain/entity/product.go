package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem stock de un producto en una (bodega, ubicación) concreta.
// Es la proyección de lectura que mantiene sincronizada el ledger; Reserved
// pertenece a la lógica de pedidos y el ledger lo preserva siempre tal cual.
type InventoryItem struct {
	WarehouseCode string
	LocationCode  string // "" = nivel bodega
	OnHand        int64
	Reserved      int64
}

// Product representa un producto o SKU del catálogo.
// Items y los totales son la proyección derivada de los saldos del ledger;
// Price/Cost son datos de catálogo, ajenos al ledger.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	Description   string
	CategoryID    string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Items         []InventoryItem
	TotalOnHand   int64
	TotalReserved int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RecomputeTotals recalcula TotalOnHand/TotalReserved desde la lista completa de Items.
func (p *Product) RecomputeTotals() {
	var onHand, reserved int64
	for _, it := range p.Items {
		onHand += it.OnHand
		reserved += it.Reserved
	}
	p.TotalOnHand = onHand
	p.TotalReserved = reserved
}

// ItemAt devuelve el índice del item en (warehouse, location), o -1 si no existe.
func (p *Product) ItemAt(warehouseCode, locationCode string) int {
	for i, it := range p.Items {
		if it.WarehouseCode == warehouseCode && it.LocationCode == locationCode {
			return i
		}
	}
	return -1
}
