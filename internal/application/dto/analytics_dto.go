package dto

// ── Query parameters ──────────────────────────────────────────────────────────

// MovementSeriesRequest parámetros para GET /api/analytics/movements/{daily,weekly}.
type MovementSeriesRequest struct {
	From      string `query:"from"`      // YYYY-MM-DD; obligatorio
	To        string `query:"to"`        // YYYY-MM-DD; obligatorio
	SKU       string `query:"sku"`       // opcional: acota al SKU
	Warehouse string `query:"warehouse"` // opcional: acota a la bodega
}

// ── Series ────────────────────────────────────────────────────────────────────

// DailyPointDTO un día calendario UTC de la serie (zero-filled si no hubo actividad).
type DailyPointDTO struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Inbound     int64  `json:"inbound"`
	Outbound    int64  `json:"outbound"`
	Adjustments int64  `json:"adjustments"`
}

// WeeklyPointDTO una semana UTC alineada a lunes; siempre derivada de los
// puntos diarios, nunca persistida.
type WeeklyPointDTO struct {
	WeekStart   string `json:"weekStart"` // lunes, YYYY-MM-DD
	Inbound     int64  `json:"inbound"`
	Outbound    int64  `json:"outbound"`
	Adjustments int64  `json:"adjustments"`
}

// DailySeriesResponse respuesta de GET /api/analytics/movements/daily.
type DailySeriesResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Points []DailyPointDTO `json:"points"`
}

// WeeklySeriesResponse respuesta de GET /api/analytics/movements/weekly.
type WeeklySeriesResponse struct {
	From   string           `json:"from"`
	To     string           `json:"to"`
	Points []WeeklyPointDTO `json:"points"`
}
