// Package domerr определяет типизированные доменные ошибки с семантическим
// кодом. HTTP-слой отображает код в статус ответа, бизнес-логика и
// хранилище оперируют только кодами.
package domerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code — семантический код доменной ошибки.
type Code string

// Коды доменных ошибок.
const (
	CodeNotFound     Code = "not_found"     // Сущность отсутствует
	CodeForbidden    Code = "forbidden"     // Роль недостаточна или сущность защищена
	CodeUnauthorized Code = "unauthorized"  // Учётные данные не подошли
	CodeBadRequest   Code = "bad_request"   // Нарушено бизнес-правило
	CodeConflict     Code = "conflict"      // Нарушение уникальности или ссылочной целостности
	CodeInternal     Code = "internal"      // Прочие ошибки
)

// Error — доменная ошибка с кодом и сообщением для пользователя.
type Error struct {
	Code Code
	Msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// New создаёт доменную ошибку с кодом и сообщением.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap оборачивает причину в доменную ошибку с кодом и сообщением.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg, err: err}
}

// CodeOf возвращает код доменной ошибки в цепочке err.
// Для прочих ошибок возвращает CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Message возвращает сообщение доменной ошибки в цепочке err
// или запасной текст, если ошибка не доменная.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Msg
	}
	return fallback
}

// HTTPStatus отображает код доменной ошибки в HTTP-статус.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
