package models

import "time"

// Shift представляет одну смену кассы: от открытия при входе оператора
// до закрытия с подсчётом наличных.
//
// Пока смена открыта, структура служит журналом текущих итогов; после
// закрытия она становится неизменяемой исторической записью. Инвариант
// открытой смены: NominalCash = касса на открытии + Σ(Paid) − Σ(расходов).
type Shift struct {
	ID           int         `json:"id,omitempty"` // Идентификатор сохранённой смены
	Username     string      `json:"username"`     // Оператор, закрывший смену (заполняется при закрытии)
	TimeOpened   time.Time   `json:"time_opened"`  // Время открытия
	TimeClosed   time.Time   `json:"time_closed"`  // Время закрытия (нулевое, пока смена открыта)
	NominalCash  float64     `json:"nominal_cash"` // Расчётный остаток в кассе
	RealCash     float64     `json:"real_cash"`    // Фактически пересчитанные наличные (при закрытии)
	Income       float64     `json:"income"`       // Сумма всех оплат посетителей
	Outcome      float64     `json:"outcome"`      // Сумма всех расходов
	Profit       float64     `json:"profit"`       // Оплаты минус расходы
	Discharges   []Discharge `json:"discharges,omitempty"`    // Расходы за смену
	LeftVisitors []Visitor   `json:"left_visitors,omitempty"` // Вышедшие посетители в порядке выхода
}

// Discharge представляет расход наличных из кассы, не связанный с
// оплатой посетителя (закупка, инкассация и т.п.).
type Discharge struct {
	Timestamp time.Time `json:"timestamp"` // Время расхода
	Amount    float64   `json:"amount"`    // Сумма
	Reason    string    `json:"reason"`    // Основание
}
