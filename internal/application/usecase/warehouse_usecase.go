package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas y sus ubicaciones
// (el directorio que el validador de movimientos consulta).
type WarehouseUseCase struct {
	warehouses repository.WarehouseRepository
	locations  repository.LocationRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(warehouses repository.WarehouseRepository, locations repository.LocationRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouses: warehouses, locations: locations}
}

// Create crea una bodega nueva.
func (uc *WarehouseUseCase) Create(in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	code := strings.TrimSpace(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		Code:      code,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouses.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByCode obtiene una bodega por código.
func (uc *WarehouseUseCase) GetByCode(code string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByCode(code)
	if err != nil || warehouse == nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza los campos presentes de una bodega.
func (uc *WarehouseUseCase) Update(code string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouses.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, nil
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.warehouses.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas con paginación.
func (uc *WarehouseUseCase) List(limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.warehouses.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega por código.
func (uc *WarehouseUseCase) Delete(code string) error {
	return uc.warehouses.Delete(code)
}

// AddLocation crea una ubicación dentro de la bodega indicada.
func (uc *WarehouseUseCase) AddLocation(warehouseCode string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	warehouse, err := uc.warehouses.GetByCode(warehouseCode)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	location := &entity.Location{
		ID:            uuid.New().String(),
		Code:          code,
		WarehouseCode: warehouseCode,
		Name:          in.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.locations.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListLocations lista las ubicaciones de una bodega.
func (uc *WarehouseUseCase) ListLocations(warehouseCode string) ([]dto.LocationResponse, error) {
	list, err := uc.locations.ListByWarehouse(warehouseCode)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

// DeleteLocation elimina una ubicación de una bodega.
func (uc *WarehouseUseCase) DeleteLocation(warehouseCode, code string) error {
	return uc.locations.Delete(warehouseCode, code)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:            l.ID,
		Code:          l.Code,
		WarehouseCode: l.WarehouseCode,
		Name:          l.Name,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
