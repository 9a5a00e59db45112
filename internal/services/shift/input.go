package shift

import (
	"fmt"
	"strconv"
	"strings"
)

// parseAmount разбирает денежное поле формы. Пустое значение и значение,
// не являющееся числом, дают разные сообщения об ошибке.
func parseAmount(field, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &InvalidInputError{
			Field:   field,
			Message: fmt.Sprintf("please fill '%s' field", field),
		}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &InvalidInputError{
			Field:   field,
			Message: fmt.Sprintf("'%s' must be a number", field),
		}
	}
	return value, nil
}

// parseNonNegativeAmount дополнительно отклоняет отрицательные значения.
func parseNonNegativeAmount(field, raw string) (float64, error) {
	value, err := parseAmount(field, raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, &InvalidInputError{
			Field:   field,
			Message: fmt.Sprintf("'%s' must not be negative", field),
		}
	}
	return value, nil
}
