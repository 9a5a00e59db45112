package shift

import "errors"

// Ошибки бухгалтерского ядра. Обработчики транслируют их в HTTP-статусы
// на границе запроса.
var (
	// ErrVisitorNotFound возвращается при операции над неизвестным
	// или уже вышедшим посетителем.
	ErrVisitorNotFound = errors.New("no such visitor")

	// ErrShiftClosed возвращается при попытке изменить закрытую смену.
	ErrShiftClosed = errors.New("shift is already closed")

	// ErrNoActiveShift возвращается, когда у оператора нет открытой смены.
	ErrNoActiveShift = errors.New("no open shift for operator")
)

// InvalidInputError описывает некорректное числовое поле формы:
// пустое, нечисловое или отрицательное значение. Message различает
// эти случаи, Field указывает поле для повторного отображения формы.
type InvalidInputError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *InvalidInputError) Error() string {
	return e.Message
}
