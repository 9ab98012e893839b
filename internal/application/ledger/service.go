package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// Service fachada del ledger para la capa HTTP: valida el request, lo aplica
// vía el motor y arma las respuestas de registro, listado y saldos.
type Service struct {
	validator *Validator
	engine    *Engine
	movements repository.MovementRepository
	balances  repository.BalanceStore
}

// NewService construye la fachada.
func NewService(validator *Validator, engine *Engine, movements repository.MovementRepository, balances repository.BalanceStore) *Service {
	return &Service{validator: validator, engine: engine, movements: movements, balances: balances}
}

// RegisterMovement valida y aplica un movimiento. Errores posibles:
// *domain.ValidationError (request malformado), *domain.ConflictError
// (stock insuficiente) o un error interno.
func (s *Service) RegisterMovement(ctx context.Context, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	draft, err := s.validator.Validate(in)
	if err != nil {
		return nil, err
	}
	record, touched, product, err := s.engine.Apply(ctx, draft)
	if err != nil {
		return nil, err
	}

	resp := &dto.RegisterMovementResponse{
		Movement: toMovementDTO(record),
		Balances: toBalanceDTOs(touched),
	}
	if product != nil {
		resp.Inventory = toInventorySummary(product)
	} else {
		resp.Inventory = dto.InventorySummary{Items: []dto.InventoryItemDTO{}}
	}
	return resp, nil
}

// ListMovements devuelve la página filtrada del log (OccurredAt desc, desempate
// CreatedAt desc; limit con tope 500) junto con los saldos trackeados del
// mismo alcance del filtro.
func (s *Service) ListMovements(in dto.ListMovementsRequest) (*dto.ListMovementsResponse, error) {
	in.Normalize()

	filter := repository.MovementFilter{
		Type:      in.Type,
		SKU:       in.SKU,
		Warehouse: in.Warehouse,
		Location:  in.Location,
		PartnerID: in.PartnerID,
		RefNo:     in.RefNo,
		UserID:    in.UserID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		t, err := parseInstant(in.From)
		if err != nil {
			return nil, domain.NewValidationError([]string{"from no es una fecha válida"})
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := parseInstant(in.To)
		if err != nil {
			return nil, domain.NewValidationError([]string{"to no es una fecha válida"})
		}
		// Fecha simple = fin de ese día UTC
		if len(in.To) == len(entity.BucketDateLayout) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = &t
	}

	items, total, err := s.movements.List(filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementDTO, 0, len(items))
	for _, m := range items {
		out = append(out, toMovementDTO(m))
	}
	balances := s.balances.List(repository.BalanceFilter{
		SKU:       in.SKU,
		Warehouse: in.Warehouse,
		Location:  in.Location,
	})
	return &dto.ListMovementsResponse{
		Total:    total,
		Count:    len(out),
		Offset:   in.Offset,
		Limit:    in.Limit,
		Items:    out,
		Balances: toBalanceDTOs(balances),
	}, nil
}

// Balances snapshot de saldos trackeados y de los cuatro índices agregados.
func (s *Service) Balances(sku, warehouse, location string) *dto.BalancesResponse {
	items := s.balances.List(repository.BalanceFilter{SKU: sku, Warehouse: warehouse, Location: location})
	agg := s.balances.Aggregates()
	return &dto.BalancesResponse{
		Items:       toBalanceDTOs(items),
		BySKU:       toTotalsDTOMap(agg.BySKU),
		ByWarehouse: toTotalsDTOMap(agg.ByWarehouse),
		ByLocation:  toTotalsDTOMap(agg.ByLocation),
		Global:      dto.AggregateTotalsDTO{OnHand: agg.Global.OnHand, Reserved: agg.Global.Reserved},
	}
}

// ── Mappers entidad → DTO ─────────────────────────────────────────────────────

func toMovementDTO(m *entity.MovementRecord) dto.MovementDTO {
	return dto.MovementDTO{
		ID:            m.ID,
		Type:          m.Type,
		SKU:           m.SKU,
		Qty:           m.Qty,
		UserID:        m.UserID,
		OccurredAt:    m.OccurredAt,
		CreatedAt:     m.CreatedAt,
		FromWarehouse: m.FromWarehouse,
		FromLocation:  m.FromLocation,
		ToWarehouse:   m.ToWarehouse,
		ToLocation:    m.ToLocation,
		PartnerID:     m.PartnerID,
		RefNo:         m.RefNo,
		Memo:          m.Memo,
	}
}

func toBalanceDTOs(records []entity.BalanceRecord) []dto.BalanceDTO {
	out := make([]dto.BalanceDTO, 0, len(records))
	for _, b := range records {
		out = append(out, dto.BalanceDTO{
			SKU:       b.Key.SKU,
			Warehouse: b.Key.Warehouse,
			Location:  b.Key.Location,
			OnHand:    b.OnHand,
			Reserved:  b.Reserved,
			Available: b.Available(),
		})
	}
	return out
}

func toInventorySummary(p *entity.Product) dto.InventorySummary {
	items := make([]dto.InventoryItemDTO, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.InventoryItemDTO{
			Warehouse: it.WarehouseCode,
			Location:  it.LocationCode,
			OnHand:    it.OnHand,
			Reserved:  it.Reserved,
		})
	}
	return dto.InventorySummary{
		TotalOnHand:   p.TotalOnHand,
		TotalReserved: p.TotalReserved,
		Items:         items,
	}
}

func toTotalsDTOMap(m map[string]entity.AggregateTotals) map[string]dto.AggregateTotalsDTO {
	out := make(map[string]dto.AggregateTotalsDTO, len(m))
	for k, v := range m {
		out[k] = dto.AggregateTotalsDTO{OnHand: v.OnHand, Reserved: v.Reserved}
	}
	return out
}
