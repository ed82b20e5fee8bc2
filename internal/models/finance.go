package models

import "time"

// Типы финансовых записей.
const (
	FinanceTypeRevenue = "Revenue"
	FinanceTypeExpense = "Expense"
)

// FinanceCategoryStudents — категория записей, привязанных к оплатам учеников.
const FinanceCategoryStudents = "Students"

// FinancialEntry представляет запись в финансовом журнале зала.
// Для записей о платежах учеников поле Name по старой договорённости
// содержит номер зачисления в скобках в конце строки: "John Doe (SX123)".
// Новые записи несут номер в LinkedStudentID явно.
type FinancialEntry struct {
	ID              int       // Идентификатор записи
	Type            string    // Revenue или Expense
	Name            string    // Название или описание записи
	Category        string    // Категория записи
	Date            time.Time // Дата операции
	Amount          float64   // Сумма, строго положительная
	Description     string    // Дополнительное описание (опционально)
	LinkedStudentID string    // Номер зачисления связанного ученика, опционально
}

// DummyFinancialEntry используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в FinancialEntry.
type DummyFinancialEntry struct {
	Type            string  `json:"type" validate:"required,oneof=Revenue Expense"` // Тип записи
	Name            string  `json:"name" validate:"required"`                       // Название записи
	Category        string  `json:"category" validate:"required"`                   // Категория
	Date            string  `json:"date" validate:"required"`                       // Дата в формате 02-01-2006
	Amount          float64 `json:"amount" validate:"required,gt=0"`                // Сумма (>0)
	Description     string  `json:"description"`                                    // Описание (опционально)
	LinkedStudentID string  `json:"linked_student_id"`                              // Явная привязка к ученику
}

// FinanceSummary — агрегат по журналу за период.
type FinanceSummary struct {
	Revenue float64 // Сумма доходов
	Expense float64 // Сумма расходов
	Balance float64 // Доходы минус расходы
}
