package shift

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/timefmt"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// Repository описывает контракт сохранения закрытой смены.
type Repository interface {
	// SaveShift долговременно сохраняет закрытую смену вместе со списком
	// вышедших посетителей и возвращает её ID.
	SaveShift(ctx context.Context, record models.Shift) (int, error)
}

// Service реализует бизнес-логику смены: регистрацию и выход посетителей,
// расходы и закрытие смены. Каждая операция захватывает мьютекс сессии,
// поэтому журнал и реестр всегда меняются согласованно.
type Service struct {
	repo      Repository
	sessions  *Manager
	hourPrice float64
	log       *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, sessions *Manager, hourPrice float64, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		sessions:  sessions,
		hourPrice: hourPrice,
		log:       log,
	}
}

// OpenShift открывает смену для оператора (или возвращает уже открытую)
// и отдаёт её снимок для отображения.
func (s *Service) OpenShift(username string, isAdmin bool) models.Shift {
	sess := s.sessions.Begin(username, isAdmin)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	snapshot := sess.Ledger.Snapshot()

	s.log.Info("shift opened",
		slog.String("username", username),
		slog.Float64("opening_cash", snapshot.NominalCash))
	return snapshot
}

// Session возвращает активную сессию оператора, если она есть.
func (s *Service) Session(username string) (*Session, bool) {
	return s.sessions.Get(username)
}

// HasSession сообщает, открыта ли смена у оператора.
func (s *Service) HasSession(username string) bool {
	_, ok := s.sessions.Get(username)
	return ok
}

func (s *Service) session(username string) (*Session, error) {
	sess, ok := s.sessions.Get(username)
	if !ok {
		return nil, ErrNoActiveShift
	}
	return sess, nil
}

// CheckIn регистрирует посетителя в реестре активной смены оператора.
func (s *Service) CheckIn(username, name string) (models.Visitor, error) {
	sess, err := s.session(username)
	if err != nil {
		return models.Visitor{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	visitor := sess.Registry.CheckIn(name)

	s.log.Info("visitor checked in",
		slog.String("visitor_id", visitor.ID),
		slog.String("name", visitor.Name))
	return visitor, nil
}

// CurrentView возвращает снимок смены и посетителей в порядке входа.
func (s *Service) CurrentView(username string) (models.Shift, []models.Visitor, error) {
	sess, err := s.session(username)
	if err != nil {
		return models.Shift{}, nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Ledger.Snapshot(), sess.Registry.List(), nil
}

// CheckoutPreview — предварительный расчёт для формы выхода посетителя.
type CheckoutPreview struct {
	Visitor  models.Visitor `json:"visitor"`
	Duration string         `json:"duration"` // Длительность визита в виде "Ч:ММ:СС"
}

// PreviewCheckout считает справочную стоимость визита, не меняя ни
// реестр, ни журнал. Оператор видит цену до подтверждения выхода.
func (s *Service) PreviewCheckout(username, visitorID string) (*CheckoutPreview, error) {
	sess, err := s.session(username)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	visitor, ok := sess.Registry.Lookup(visitorID)
	if !ok {
		return nil, ErrVisitorNotFound
	}
	return s.stamp(visitor, time.Now()), nil
}

// stamp заполняет расчётные поля посетителя на момент выхода now.
func (s *Service) stamp(visitor models.Visitor, now time.Time) *CheckoutPreview {
	if now.Before(visitor.TimeIn) {
		s.log.Warn("checkout before check-in, clamping duration to zero",
			slog.String("visitor_id", visitor.ID),
			slog.Time("time_in", visitor.TimeIn),
			slog.Time("time_out", now))
	}
	quote := Estimate(visitor.TimeIn, now, s.hourPrice)
	visitor.TimeOut = now
	visitor.DurationSeconds = quote.Elapsed.Seconds()
	visitor.Price = quote.Price
	return &CheckoutPreview{
		Visitor:  visitor,
		Duration: timefmt.HMS(quote.Elapsed),
	}
}

// CheckOut завершает визит: проверяет введённую оплату, переносит
// посетителя из реестра в список вышедших и обновляет итоги смены.
//
// Посетитель удаляется из реестра только после того, как журнал принял
// выход, поэтому ошибка ввода оставляет и реестр, и журнал нетронутыми.
func (s *Service) CheckOut(username, visitorID, rawPaid string) (models.Visitor, error) {
	sess, err := s.session(username)
	if err != nil {
		return models.Visitor{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	visitor, ok := sess.Registry.Lookup(visitorID)
	if !ok {
		return models.Visitor{}, ErrVisitorNotFound
	}
	stamped := s.stamp(visitor, time.Now()).Visitor

	left, err := sess.Ledger.RecordCheckout(stamped, rawPaid)
	if err != nil {
		return models.Visitor{}, err
	}
	sess.Registry.Remove(visitorID)

	s.log.Info("visitor checked out",
		slog.String("name", left.Name),
		slog.Float64("price", left.Price),
		slog.Float64("paid", left.Paid))
	return left, nil
}

// Discharge фиксирует расход наличных в журнале активной смены.
func (s *Service) Discharge(username, rawAmount, reason string) error {
	sess, err := s.session(username)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.Ledger.RecordDischarge(rawAmount, reason); err != nil {
		return err
	}
	s.log.Info("discharge recorded",
		slog.String("reason", reason),
		slog.String("amount", rawAmount))
	return nil
}

// Close закрывает смену: проверяет real_cash, сохраняет запись смены
// и завершает сессию оператора, перенося пересчитанные наличные в
// остаток кассы. Сохранение вызывается ровно один раз; его ошибка
// оставляет смену открытой и нетронутой.
func (s *Service) Close(ctx context.Context, username, rawRealCash string) (models.Shift, error) {
	const op = "shift.Close"

	sess, err := s.session(username)
	if err != nil {
		return models.Shift{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	record, err := sess.Ledger.Finalize(rawRealCash, username)
	if err != nil {
		return models.Shift{}, err
	}

	id, err := s.repo.SaveShift(ctx, record)
	if err != nil {
		s.log.Error("failed to persist shift, keeping it open", sl.Err(err))
		return models.Shift{}, fmt.Errorf("%s: %w", op, err)
	}
	record.ID = id
	sess.Ledger.MarkClosed()
	s.sessions.End(username, record.RealCash)

	s.log.Info("shift closed",
		slog.Int("shift_id", id),
		slog.String("username", username),
		slog.Float64("nominal_cash", record.NominalCash),
		slog.Float64("real_cash", record.RealCash),
		slog.Float64("profit", record.Profit))
	return record, nil
}
