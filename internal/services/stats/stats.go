// Package stats содержит бизнес-логику исторической статистики смен.
// Сервис только читает сохранённые данные; закрытые смены неизменяемы,
// поэтому детали смены кешируются в redis.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/sl"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/storage/repository"
)

// ErrShiftNotFound возвращается при запросе неизвестной смены.
var ErrShiftNotFound = errors.New("shift not found")

// Repository описывает методы чтения сохранённых смен.
type Repository interface {
	// ListShifts возвращает закрытые смены, новые первыми.
	ListShifts(ctx context.Context) ([]models.Shift, error)
	// GetShift возвращает смену по ID.
	GetShift(ctx context.Context, id int) (*models.Shift, error)
	// ListShiftVisitors возвращает посетителей смены в порядке выхода.
	ListShiftVisitors(ctx context.Context, shiftID int) ([]models.Visitor, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
}

// Service реализует read-only запросы исторической статистики.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// List возвращает сохранённые смены, новые первыми.
func (s *Service) List(ctx context.Context) ([]models.Shift, error) {
	return s.repo.ListShifts(ctx)
}

// Detail возвращает смену вместе со списком её посетителей.
//
// Деталь берётся из кеша, при промахе — из хранилища с последующим
// кешированием. Ошибки кеша не фатальны: чтение продолжается из базы.
func (s *Service) Detail(ctx context.Context, id int) (*models.Shift, error) {
	cacheKey := fmt.Sprintf("shift:%d", id)

	var cached models.Shift
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read shift from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	record, err := s.repo.GetShift(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrShiftNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}
	visitors, err := s.repo.ListShiftVisitors(ctx, id)
	if err != nil {
		return nil, err
	}
	record.LeftVisitors = visitors

	if err := s.cache.Set(cacheKey, record, s.ttl); err != nil {
		s.log.Warn("failed to cache shift", slog.String("key", cacheKey), sl.Err(err))
	}
	return record, nil
}
