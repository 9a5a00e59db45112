package models

import "time"

// Visitor представляет посетителя заведения.
//
// До выхода посетитель живёт в реестре активной смены и заполнены только
// ID, Name и TimeIn. При выходе заполняются TimeOut, DurationSeconds,
// Price и Paid, идентификатор обнуляется, и запись переходит в список
// вышедших посетителей смены.
type Visitor struct {
	ID              string    `json:"id,omitempty"`     // Идентификатор в реестре; пуст после выхода
	Name            string    `json:"name"`             // Имя или метка посетителя
	TimeIn          time.Time `json:"time_in"`          // Время входа
	TimeOut         time.Time `json:"time_out"`         // Время выхода (нулевое до выхода)
	DurationSeconds float64   `json:"duration_seconds"` // Длительность визита в секундах
	Price           float64   `json:"price"`            // Рассчитанная стоимость визита
	Paid            float64   `json:"paid"`             // Фактически внесённая сумма
}
