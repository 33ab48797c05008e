package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func day(d int) time.Time {
	return time.Date(2024, time.April, d, 0, 0, 0, 0, time.UTC)
}

func newReservation(d int, slot domain.Slot) *domain.Reservation {
	return &domain.Reservation{
		Date:        day(d),
		Slot:        slot,
		Status:      domain.StatusPending,
		RatePerHour: decimal.NewFromInt(1000),
	}
}

func TestStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(fixedClock{now}))

	created, err := s.Create(ctx, newReservation(1, domain.SlotMorning))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, now, created.CreatedAt)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	// изменение возвращённой копии не влияет на хранилище
	got.Status = domain.StatusCancelled
	again, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, again.Status)

	_, err = s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestStore_ListActiveByDate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.Create(ctx, newReservation(1, domain.SlotMorning))
	require.NoError(t, err)
	cancelled := newReservation(1, domain.SlotAfternoon)
	cancelled.Status = domain.StatusCancelled
	_, err = s.Create(ctx, cancelled)
	require.NoError(t, err)
	_, err = s.Create(ctx, newReservation(2, domain.SlotAfternoon))
	require.NoError(t, err)

	active, err := s.ListActiveByDate(ctx, day(1))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, domain.SlotMorning, active[0].Slot)
}

func TestStore_UniqueSlots(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithUniqueSlots())

	first, err := s.Create(ctx, newReservation(3, domain.SlotMorning))
	require.NoError(t, err)

	_, err = s.Create(ctx, newReservation(3, domain.SlotMorning))
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)

	_, err = s.Create(ctx, newReservation(3, domain.SlotUnspecified))
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)

	_, err = s.Create(ctx, newReservation(3, domain.SlotAfternoon))
	require.NoError(t, err)

	// после отмены слот освобождается
	cancelled := domain.StatusCancelled
	_, err = s.Update(ctx, first.ID, domain.ReservationPatch{Status: &cancelled})
	require.NoError(t, err)

	second, err := s.Create(ctx, newReservation(3, domain.SlotMorning))
	require.NoError(t, err)

	// повторная активация отменённого бронирования конфликтует с новым
	pending := domain.StatusPending
	_, err = s.Update(ctx, first.ID, domain.ReservationPatch{Status: &pending})
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestStore_UniqueSlotsConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithUniqueSlots())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, newReservation(5, domain.SlotAfternoon)); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	r, err := s.Create(ctx, newReservation(7, domain.SlotMorning))
	require.NoError(t, err)

	paid := true
	updated, err := s.Update(ctx, r.ID, domain.ReservationPatch{PaymentReceived: &paid})
	require.NoError(t, err)
	assert.True(t, updated.PaymentReceived)
	assert.Equal(t, r.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Delete(ctx, r.ID))
	assert.ErrorIs(t, s.Delete(ctx, r.ID), domain.ErrReservationNotFound)

	_, err = s.Update(ctx, r.ID, domain.ReservationPatch{PaymentReceived: &paid})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	active, err := s.ListActiveByDate(ctx, day(7))
	require.NoError(t, err)
	assert.Empty(t, active)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ListAllOrdered(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, d := range []int{9, 2, 5} {
		_, err := s.Create(ctx, newReservation(d, domain.SlotMorning))
		require.NoError(t, err)
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, day(2), all[0].Date)
	assert.Equal(t, day(9), all[2].Date)
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStore().ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
