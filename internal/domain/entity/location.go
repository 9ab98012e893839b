package entity

import "time"

// Location representa una ubicación física dentro de una bodega (pasillo, rack, bin).
// Code es único dentro de su bodega; los saldos pueden existir sin ubicación ("").
type Location struct {
	ID            string
	Code          string // único por bodega, ej. "A-01-03"
	WarehouseCode string
	Name          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
