package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario.
// Code es el identificador de negocio que usan los movimientos y los saldos.
type Warehouse struct {
	ID        string
	Code      string // único, ej. "BOG-01"
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
