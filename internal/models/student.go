// Package models содержит доменные структуры тренажёрного зала:
// учеников, тарифные планы, финансовые записи, сотрудников и имущество,
// а также вспомогательные DTO для приёма данных из JSON-запросов.
package models

import "time"

// Статусы ученика, хранящиеся в базе данных.
const (
	StudentStatusActive   = "Active"
	StudentStatusInactive = "Inactive"
)

// Метки отображаемого статуса абонемента.
const (
	DisplayNoPlan  = "No Plan"
	DisplayExpired = "Expired"
)

// Student представляет ученика зала.
// Поле Status — последнее записанное значение; актуальный статус для
// отображения вычисляется по ExpirationDate и может отличаться до
// следующей записи.
type Student struct {
	Matricula      string     // Номер зачисления, естественный ключ
	Name           string     // Полное имя ученика
	Email          string     // Электронная почта
	Phone          string     // Телефон
	BirthDate      time.Time  // Дата рождения
	PlanID         *int       // Ссылка на тарифный план, может отсутствовать
	Status         string     // Записанный статус: Active или Inactive
	ExpirationDate *time.Time // Дата окончания абонемента, nil — плана нет
}

// DummyStudent используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Student.
// Даты приходят в виде строк, чтобы их можно было валидировать и парсить вручную.
type DummyStudent struct {
	Matricula string `json:"matricula" validate:"required,alphanum"` // Номер зачисления
	Name      string `json:"name" validate:"required"`               // Имя ученика
	Email     string `json:"email" validate:"required,email"`        // Электронная почта
	Phone     string `json:"phone"`                                  // Телефон
	BirthDate string `json:"birth_date" validate:"required"`         // Дата рождения в формате 02-01-2006
	PlanID    *int   `json:"plan_id"`                                // Тарифный план при записи (опционально)
}

// StudentView — ученик вместе с вычисленным статусом для отображения.
type StudentView struct {
	Student
	DisplayStatus   string // Active или Inactive, вычислено на момент запроса
	ExpirationLabel string // "No Plan", "Expired" или отформатированная дата
}

// ExpiringMembership — данные для уведомления об истекающем абонементе.
type ExpiringMembership struct {
	Matricula      string
	Name           string
	Email          string
	PlanName       string
	ExpirationDate time.Time
}
