package shift

import (
	"math"
	"time"
)

// Quote — предварительный расчёт стоимости визита. Расчёт носит
// справочный характер: в журнал попадает сумма, которую оператор
// фактически принял, а не Price.
type Quote struct {
	Elapsed time.Duration // Длительность визита, не меньше нуля
	Hours   float64       // Оплачиваемые часы, минимум 1
	Price   float64       // Стоимость, кратная половине денежной единицы
}

// Estimate считает стоимость визита по времени входа и выхода.
//
// Оплачивается не меньше одного часа; итоговая цена округляется вниз
// до половины денежной единицы: floor(hours * hourPrice * 2) / 2.
// Отрицательная длительность (выход раньше входа из-за сдвига часов)
// приводится к нулю, оплата при этом остаётся минимальной — один час.
func Estimate(timeIn, timeOut time.Time, hourPrice float64) Quote {
	elapsed := timeOut.Sub(timeIn)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := math.Max(elapsed.Hours(), 1)
	return Quote{
		Elapsed: elapsed,
		Hours:   hours,
		Price:   math.Floor(hours*hourPrice*2) / 2,
	}
}
