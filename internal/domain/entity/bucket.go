package entity

import "time"

// BucketDateLayout formato de fecha calendario de los buckets (UTC).
const BucketDateLayout = "2006-01-02"

// DailyBucket acumulado de un día calendario UTC.
// TRANSFER aporta a Inbound y Outbound a la vez; ADJUST solo a Adjustments.
type DailyBucket struct {
	Inbound     int64
	Outbound    int64
	Adjustments int64
}

// Add suma otro bucket sobre este.
func (b *DailyBucket) Add(other DailyBucket) {
	b.Inbound += other.Inbound
	b.Outbound += other.Outbound
	b.Adjustments += other.Adjustments
}

// DailyPoint un punto de la serie diaria.
type DailyPoint struct {
	Date string // YYYY-MM-DD
	DailyBucket
}

// WeeklyPoint un punto de la serie semanal (semana que inicia en lunes UTC).
type WeeklyPoint struct {
	WeekStart string // YYYY-MM-DD del lunes
	DailyBucket
}

// WeekStart devuelve el lunes 00:00 UTC de la semana que contiene t.
func WeekStart(t time.Time) time.Time {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
