// Package repository реализует хранилище данных на основе PostgreSQL
// для управления учениками, тарифными планами, финансовым журналом,
// имуществом и сотрудниками зала. Предоставляет методы создания, чтения,
// обновления, удаления и агрегирования записей, а также защищённую
// транзакцию удаления сотрудника.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с доменными сущностями зала.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'students'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table students missing or query error: %w", err)
	}
	return nil
}

// mapConstraintError переводит нарушения ограничений PostgreSQL в доменные
// ошибки: уникальность и ссылочная целостность должны быть различимы для
// вызывающего кода.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return domerr.Wrap(err, domerr.CodeConflict, "record already exists")
	case pgerrcode.ForeignKeyViolation:
		return domerr.Wrap(err, domerr.CodeConflict, "record has linked rows")
	default:
		return err
	}
}
