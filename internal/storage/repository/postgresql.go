// Package repository реализует хранилище данных на основе PostgreSQL
// для операторов кассы и закрытых смен. Открытая смена живёт в памяти
// и попадает сюда ровно один раз — при закрытии.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища.
var (
	// ErrUserNotFound возвращается, когда оператор с таким именем не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken возвращается при нарушении уникальности имени оператора.
	ErrUsernameTaken = errors.New("username is already taken")
	// ErrShiftNotFound возвращается при запросе несуществующей смены.
	ErrShiftNotFound = errors.New("shift not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с операторами и сменами.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
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
