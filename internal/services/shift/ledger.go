// Package shift реализует бухгалтерское ядро кассы: журнал активной смены
// (Ledger), реестр посетителей (Registry), расчёт стоимости визита и
// сессии операторов.
//
// Машина состояний журнала: StateOpen → (выход посетителя | расход)* →
// закрытие. Валидация при закрытии может провалиться — журнал при этом
// не меняется и остаётся открытым. StateClosed — терминальное состояние,
// дальнейшие изменения запрещены.
package shift

import (
	"time"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// State — состояние журнала смены.
type State int

const (
	// StateOpen — смена открыта, операции разрешены.
	StateOpen State = iota
	// StateClosed — смена закрыта и сохранена, изменения запрещены.
	StateClosed
)

// Ledger — журнал активной смены: текущие итоги, расходы и вышедшие
// посетители.
//
// Ledger не синхронизирован: им владеет ровно одна Session, и весь
// доступ идёт под её мьютексом.
type Ledger struct {
	state State
	shift models.Shift
}

// Open открывает новую смену с указанным остатком в кассе.
// Остаток переносится из закрытой смены предыдущего оператора.
func Open(openingCash float64) *Ledger {
	return &Ledger{
		state: StateOpen,
		shift: models.Shift{
			TimeOpened:  time.Now(),
			NominalCash: openingCash,
		},
	}
}

// State возвращает текущее состояние журнала.
func (l *Ledger) State() State {
	return l.state
}

// Snapshot возвращает копию смены для отображения.
func (l *Ledger) Snapshot() models.Shift {
	snapshot := l.shift
	snapshot.Discharges = append([]models.Discharge(nil), l.shift.Discharges...)
	snapshot.LeftVisitors = append([]models.Visitor(nil), l.shift.LeftVisitors...)
	return snapshot
}

// RecordCheckout фиксирует выход посетителя.
//
// rawPaid — сумма, введённая оператором; она может отличаться от
// расчётной цены. Пустое, нечисловое или отрицательное значение даёт
// InvalidInputError, журнал при этом не меняется. При успехе запись
// посетителя (без идентификатора) добавляется в список вышедших, а
// nominal_cash, income и profit увеличиваются на принятую сумму.
func (l *Ledger) RecordCheckout(visitor models.Visitor, rawPaid string) (models.Visitor, error) {
	if l.state != StateOpen {
		return models.Visitor{}, ErrShiftClosed
	}
	paid, err := parseNonNegativeAmount("paid", rawPaid)
	if err != nil {
		return models.Visitor{}, err
	}

	visitor.ID = ""
	visitor.Paid = paid
	l.shift.LeftVisitors = append(l.shift.LeftVisitors, visitor)
	l.shift.NominalCash += paid
	l.shift.Income += paid
	l.shift.Profit += paid
	return visitor, nil
}

// RecordDischarge фиксирует расход наличных из кассы.
//
// Сумма проверяется так же, как оплата посетителя. При успехе
// nominal_cash уменьшается, outcome растёт, profit падает на сумму
// расхода, а сам расход добавляется в журнал.
func (l *Ledger) RecordDischarge(rawAmount, reason string) error {
	if l.state != StateOpen {
		return ErrShiftClosed
	}
	amount, err := parseNonNegativeAmount("amount", rawAmount)
	if err != nil {
		return err
	}

	l.shift.NominalCash -= amount
	l.shift.Outcome += amount
	l.shift.Profit -= amount
	l.shift.Discharges = append(l.shift.Discharges, models.Discharge{
		Timestamp: time.Now(),
		Amount:    amount,
		Reason:    reason,
	})
	return nil
}

// Finalize проверяет введённые при закрытии данные и возвращает
// заполненную запись смены для сохранения.
//
// Сам журнал не меняется: вызывающая сторона сначала сохраняет запись
// и только при успехе вызывает MarkClosed. Ошибка сохранения оставляет
// смену открытой и нетронутой. Пустое или нечисловое значение real_cash
// даёт InvalidInputError.
func (l *Ledger) Finalize(rawRealCash, username string) (models.Shift, error) {
	if l.state != StateOpen {
		return models.Shift{}, ErrShiftClosed
	}
	realCash, err := parseAmount("real_cash", rawRealCash)
	if err != nil {
		return models.Shift{}, err
	}

	record := l.Snapshot()
	record.RealCash = realCash
	record.Username = username
	record.TimeClosed = time.Now()
	return record, nil
}

// MarkClosed переводит журнал в терминальное состояние. Вызывается
// после успешного сохранения записи смены.
func (l *Ledger) MarkClosed() {
	l.state = StateClosed
}
