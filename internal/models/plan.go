package models

import "strings"

// DurationUnit задаёт шаг продления абонемента по тарифному плану.
type DurationUnit string

// Допустимые единицы длительности плана.
const (
	DurationDaily   DurationUnit = "Daily"
	DurationMonthly DurationUnit = "Monthly"
	DurationYearly  DurationUnit = "Yearly"
)

// Статусы тарифного плана.
const (
	PlanStatusActive   = "Active"
	PlanStatusInactive = "Inactive"
)

// Plan представляет тарифный план зала.
type Plan struct {
	ID           int          // Идентификатор плана
	Name         string       // Название плана
	Price        float64      // Цена плана, строго положительная
	Status       string       // Active или Inactive
	DurationUnit DurationUnit // Шаг продления: день, месяц или год
}

// DummyPlan используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Plan.
type DummyPlan struct {
	Name         string  `json:"name" validate:"required"`                                 // Название плана
	Price        float64 `json:"price" validate:"required,gt=0"`                           // Цена (>0)
	Status       string  `json:"status" validate:"omitempty,oneof=Active Inactive"`        // Статус, по умолчанию Active
	DurationUnit string  `json:"duration_unit" validate:"required,oneof=Daily Monthly Yearly"` // Единица длительности
}

// ParseDurationUnit нормализует строку с единицей длительности на границе
// системы. Принимает варианты написания без учёта регистра; старые записи
// могут содержать сокращённые формы.
func ParseDurationUnit(raw string) (DurationUnit, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily", "day":
		return DurationDaily, true
	case "monthly", "month":
		return DurationMonthly, true
	case "yearly", "year", "annual":
		return DurationYearly, true
	default:
		return "", false
	}
}
