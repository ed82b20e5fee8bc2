package models

import "time"

// Статусы единицы имущества.
const (
	AssetStatusActive      = "Active"
	AssetStatusInactive    = "Inactive"
	AssetStatusMaintenance = "Maintenance"
)

// Asset представляет единицу имущества зала: тренажёр, инвентарь, мебель.
type Asset struct {
	ID              int       // Идентификатор
	Name            string    // Название
	AcquisitionDate time.Time // Дата приобретения, не в будущем
	Value           float64   // Стоимость приобретения
	Status          string    // Active, Inactive или Maintenance
	Location        string    // Расположение в зале (опционально)
	Description     string    // Описание (опционально)
}

// DummyAsset используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Asset.
type DummyAsset struct {
	Name            string  `json:"name" validate:"required"`                                        // Название
	AcquisitionDate string  `json:"acquisition_date" validate:"required"`                            // Дата в формате 02-01-2006
	Value           float64 `json:"value" validate:"required,gt=0"`                                  // Стоимость (>0)
	Status          string  `json:"status" validate:"omitempty,oneof=Active Inactive Maintenance"`   // Статус
	Location        string  `json:"location"`                                                        // Расположение
	Description     string  `json:"description"`                                                     // Описание
}
