// Package timefmt содержит функции форматирования времени для отображения
// оператору: длительность визита в виде "Ч:ММ:СС" и человеко‑читаемые
// отметки времени.
package timefmt

import (
	"fmt"
	"time"
)

// displayLayout формат отметок времени в ответах сервера.
const displayLayout = "02.01.2006 15:04:05"

// HMS возвращает длительность в виде "Ч:ММ:СС".
//
// Отрицательная длительность (рассинхронизация часов) отображается как "0:00:00".
func HMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d.Seconds())
	return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs%3600/60, secs%60)
}

// Display возвращает отметку времени в формате "02.01.2006 15:04:05".
func Display(t time.Time) string {
	return t.Format(displayLayout)
}
