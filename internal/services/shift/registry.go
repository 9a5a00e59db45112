package shift

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

// Registry — реестр посетителей, находящихся в заведении в текущий момент.
// Живёт от открытия смены до её закрытия.
//
// Registry не синхронизирован: им владеет ровно одна Session, и весь
// доступ идёт под её мьютексом.
type Registry struct {
	visitors map[string]models.Visitor
}

// NewRegistry создаёт пустой реестр посетителей.
func NewRegistry() *Registry {
	return &Registry{
		visitors: make(map[string]models.Visitor),
	}
}

// CheckIn регистрирует нового посетителя: генерирует идентификатор,
// фиксирует время входа и возвращает созданную запись.
func (r *Registry) CheckIn(name string) models.Visitor {
	visitor := models.Visitor{
		ID:     uuid.New().String(),
		Name:   name,
		TimeIn: time.Now(),
	}
	r.visitors[visitor.ID] = visitor
	return visitor
}

// Lookup возвращает посетителя по идентификатору, если он ещё не вышел.
func (r *Registry) Lookup(id string) (models.Visitor, bool) {
	visitor, ok := r.visitors[id]
	return visitor, ok
}

// Remove удаляет посетителя из реестра и возвращает его запись.
// Второе значение false означает неизвестный или уже вышедший посетитель.
func (r *Registry) Remove(id string) (models.Visitor, bool) {
	visitor, ok := r.visitors[id]
	if ok {
		delete(r.visitors, id)
	}
	return visitor, ok
}

// List возвращает посетителей, отсортированных по времени входа.
func (r *Registry) List() []models.Visitor {
	result := make([]models.Visitor, 0, len(r.visitors))
	for _, visitor := range r.visitors {
		result = append(result, visitor)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TimeIn.Before(result[j].TimeIn)
	})
	return result
}

// Len возвращает количество посетителей в реестре.
func (r *Registry) Len() int {
	return len(r.visitors)
}
