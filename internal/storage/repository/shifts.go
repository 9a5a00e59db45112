package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// SaveShift сохраняет закрытую смену вместе со списком вышедших
// посетителей в одной транзакции и возвращает ID смены.
func (s *Storage) SaveShift(ctx context.Context, record models.Shift) (int, error) {
	const op = "storage.SaveShift"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var shiftID int
	query := `INSERT INTO shifts (username, time_opened, time_closed, nominal_cash,
			      real_cash, income, outcome, profit)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err = tx.QueryRowContext(ctx, query,
		record.Username, record.TimeOpened, record.TimeClosed, record.NominalCash,
		record.RealCash, record.Income, record.Outcome, record.Profit).Scan(&shiftID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	visitorQuery := `INSERT INTO shift_visitors (shift_id, name, time_in, time_out,
			      duration_seconds, price, paid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7);`
	for _, visitor := range record.LeftVisitors {
		if _, err = tx.ExecContext(ctx, visitorQuery,
			shiftID, visitor.Name, visitor.TimeIn, visitor.TimeOut,
			visitor.DurationSeconds, visitor.Price, visitor.Paid); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return shiftID, nil
}

// ListShifts возвращает закрытые смены, новые первыми.
func (s *Storage) ListShifts(ctx context.Context) ([]models.Shift, error) {
	const op = "storage.ListShifts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, time_opened, time_closed, nominal_cash,
			      real_cash, income, outcome, profit
			  FROM shifts
			  ORDER BY time_closed DESC;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Shift
	for rows.Next() {
		var record models.Shift
		if err = rows.Scan(&record.ID, &record.Username, &record.TimeOpened,
			&record.TimeClosed, &record.NominalCash, &record.RealCash,
			&record.Income, &record.Outcome, &record.Profit); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetShift возвращает смену по ID без списка посетителей.
func (s *Storage) GetShift(ctx context.Context, id int) (*models.Shift, error) {
	const op = "storage.GetShift"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, time_opened, time_closed, nominal_cash,
			      real_cash, income, outcome, profit
			  FROM shifts
			  WHERE id = $1`
	record := &models.Shift{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&record.ID, &record.Username, &record.TimeOpened,
		&record.TimeClosed, &record.NominalCash, &record.RealCash,
		&record.Income, &record.Outcome, &record.Profit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrShiftNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return record, nil
}

// ListShiftVisitors возвращает посетителей смены в порядке выхода.
func (s *Storage) ListShiftVisitors(ctx context.Context, shiftID int) ([]models.Visitor, error) {
	const op = "storage.ListShiftVisitors"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT name, time_in, time_out, duration_seconds, price, paid
			  FROM shift_visitors
			  WHERE shift_id = $1
			  ORDER BY id;`
	rows, err := s.DB.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Visitor
	for rows.Next() {
		var visitor models.Visitor
		if err = rows.Scan(&visitor.Name, &visitor.TimeIn, &visitor.TimeOut,
			&visitor.DurationSeconds, &visitor.Price, &visitor.Paid); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, visitor)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// LastRealCash возвращает пересчитанные наличные последней закрытой
// смены — они становятся начальным остатком кассы после перезапуска.
// Если смен ещё не было, возвращает 0.
func (s *Storage) LastRealCash(ctx context.Context) (float64, error) {
	const op = "storage.LastRealCash"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT real_cash
			  FROM shifts
			  ORDER BY time_closed DESC
			  LIMIT 1`
	var realCash float64
	if err := s.DB.QueryRowContext(ctx, query).Scan(&realCash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return realCash, nil
}
