// Package memory реализует хранилище бронирований в памяти процесса.
// Используется для локального запуска и как фикстура в тестах.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Option настройка хранилища
type Option func(s *Store)

// WithUniqueSlots включает проверку занятости слота при вставке (аналог уникального индекса)
func WithUniqueSlots() Option {
	return func(s *Store) { s.uniqueSlots = true }
}

// WithClock подменяет источник времени
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store хранилище бронирований в памяти
type Store struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Reservation
	byDate map[string][]string // date -> ids в порядке вставки

	uniqueSlots bool
	clock       Clock
}

// NewStore создает пустое хранилище
func NewStore(opts ...Option) *Store {
	s := &Store{
		byID:   make(map[string]*domain.Reservation),
		byDate: make(map[string][]string),
		clock:  systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func dateKey(d time.Time) string {
	return d.Format(domain.DateFormat)
}

func clone(r *domain.Reservation) *domain.Reservation {
	c := *r
	return &c
}

// Create сохраняет бронирование и присваивает ему ID
func (s *Store) Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := dateKey(r.Date)

	if s.uniqueSlots && r.IsActive() {
		for _, id := range s.byDate[key] {
			existing := s.byID[id]
			if existing.IsActive() && existing.Slot.ConflictsWith(r.Slot) {
				return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotOccupied, key, r.Slot)
			}
		}
	}

	now := s.clock.Now()
	stored := clone(r)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.byID[stored.ID] = stored
	s.byDate[key] = append(s.byDate[key], stored.ID)

	return clone(stored), nil
}

// GetByID возвращает бронирование по ID
func (s *Store) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return clone(r), nil
}

// ListActiveByDate возвращает неотменённые бронирования на дату
func (s *Store) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byDate[dateKey(date)]
	out := make([]*domain.Reservation, 0, len(ids))
	for _, id := range ids {
		if r := s.byID[id]; r.IsActive() {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

// ListAll возвращает снимок всей коллекции по возрастанию даты и времени создания
func (s *Store) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]*domain.Reservation, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, clone(r))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update атомарно применяет изменения полей
func (s *Store) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}

	// возврат отменённого бронирования в работу не должен нарушать уникальность слота
	if s.uniqueSlots && !r.IsActive() && patch.Status != nil && *patch.Status != domain.StatusCancelled {
		for _, otherID := range s.byDate[dateKey(r.Date)] {
			other := s.byID[otherID]
			if otherID != id && other.IsActive() && other.Slot.ConflictsWith(r.Slot) {
				return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotOccupied, dateKey(r.Date), r.Slot)
			}
		}
	}

	patch.Apply(r)
	r.UpdatedAt = s.clock.Now()

	return clone(r), nil
}

// Delete физически удаляет бронирование
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.byID[id]
	if !ok {
		return domain.ErrReservationNotFound
	}

	key := dateKey(r.Date)
	ids := s.byDate[key]
	for i, other := range ids {
		if other == id {
			s.byDate[key] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(s.byDate[key]) == 0 {
		delete(s.byDate, key)
	}
	delete(s.byID, id)

	return nil
}

// Len количество бронирований (включая отменённые)
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
