// Package analytics contiene el caso de uso de las series de movimientos
// (diaria y semanal) que consumen dashboards y forecasting.
package analytics

import (
	"time"

	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
)

// Aggregator responde consultas de tendencia sobre los buckets diarios.
// La vista semanal se deriva siempre agrupando los puntos diarios por semana
// UTC alineada a lunes; nunca se persiste aparte.
type Aggregator struct {
	store repository.AnalyticsStore
}

// NewAggregator construye el caso de uso.
func NewAggregator(store repository.AnalyticsStore) *Aggregator {
	return &Aggregator{store: store}
}

// parseRange valida y parsea el rango de fechas del request.
func parseRange(in dto.MovementSeriesRequest) (time.Time, time.Time, error) {
	var msgs []string
	from, err := time.Parse(entity.BucketDateLayout, in.From)
	if err != nil {
		msgs = append(msgs, "from es obligatorio con formato YYYY-MM-DD")
	}
	to, err := time.Parse(entity.BucketDateLayout, in.To)
	if err != nil {
		msgs = append(msgs, "to es obligatorio con formato YYYY-MM-DD")
	}
	if len(msgs) == 0 && to.Before(from) {
		msgs = append(msgs, "to no puede ser anterior a from")
	}
	if len(msgs) > 0 {
		return time.Time{}, time.Time{}, domain.NewValidationError(msgs)
	}
	return from, to, nil
}

// Daily devuelve un punto por día calendario UTC en [from, to], zero-filled,
// acotado opcionalmente por SKU y/o bodega.
func (a *Aggregator) Daily(in dto.MovementSeriesRequest) (*dto.DailySeriesResponse, error) {
	from, to, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	points := a.store.QueryDaily(from, to, in.SKU, in.Warehouse)
	out := make([]dto.DailyPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.DailyPointDTO{
			Date:        p.Date,
			Inbound:     p.Inbound,
			Outbound:    p.Outbound,
			Adjustments: p.Adjustments,
		})
	}
	return &dto.DailySeriesResponse{From: in.From, To: in.To, Points: out}, nil
}

// Weekly agrupa la serie diaria por semana alineada a lunes y suma los buckets.
func (a *Aggregator) Weekly(in dto.MovementSeriesRequest) (*dto.WeeklySeriesResponse, error) {
	from, to, err := parseRange(in)
	if err != nil {
		return nil, err
	}
	daily := a.store.QueryDaily(from, to, in.SKU, in.Warehouse)

	var out []dto.WeeklyPointDTO
	for _, p := range daily {
		day, _ := time.Parse(entity.BucketDateLayout, p.Date)
		weekStart := entity.WeekStart(day).Format(entity.BucketDateLayout)
		if n := len(out); n == 0 || out[n-1].WeekStart != weekStart {
			out = append(out, dto.WeeklyPointDTO{WeekStart: weekStart})
		}
		last := &out[len(out)-1]
		last.Inbound += p.Inbound
		last.Outbound += p.Outbound
		last.Adjustments += p.Adjustments
	}
	return &dto.WeeklySeriesResponse{From: in.From, To: in.To, Points: out}, nil
}
