package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/lock"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-LectureBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-LectureBooking/pkg/logger"
)

var courses = []domain.Course{
	{ID: "c1", Title: "Digital literacy", Category: "Technology"},
	{ID: "c2", Title: "Career planning", Category: "Education"},
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(_ context.Context, event string, _ *domain.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type recordingMetrics struct {
	mu        sync.Mutex
	created   []string
	conflicts []string
}

func (m *recordingMetrics) ReservationCreated(path, slot string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, path+":"+slot)
}

func (m *recordingMetrics) Conflict(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts = append(m.conflicts, stage)
}

// scriptedAvailability отвечает по очереди заданными значениями
type scriptedAvailability struct {
	answers []bool
	calls   int
}

func (s *scriptedAvailability) IsFree(context.Context, time.Time, domain.Slot) (bool, error) {
	answer := s.answers[s.calls]
	s.calls++
	return answer, nil
}

type stubLocker struct {
	acquired bool
	err      error
	released bool
}

func (l *stubLocker) Acquire(context.Context, time.Time, domain.Slot) (lock.ReleaseFunc, bool, error) {
	if l.err != nil || !l.acquired {
		return nil, false, l.err
	}
	return func(context.Context) error {
		l.released = true
		return nil
	}, true, nil
}

type failingStore struct{}

func (failingStore) Create(context.Context, *domain.Reservation) (*domain.Reservation, error) {
	return nil, errors.New("deadline exceeded")
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	metrics  *recordingMetrics
	uc       *UseCase
}

func newFixture(opts ...memory.Option) *fixture {
	store := memory.NewStore(opts...)
	f := &fixture{
		store:    store,
		notifier: &recordingNotifier{},
		metrics:  &recordingMetrics{},
	}
	checker := check_availability.NewUseCase(store, logger.NewNop())
	f.uc = NewUseCase(store, checker, lock.Nop{}, f.notifier, f.metrics, courses, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: time.Date(2024, time.March, 1, 15, 0, 0, 0, time.UTC)}
	return f
}

func publicRequest(date, slot string) *Request {
	return &Request{
		Public:       true,
		Date:         date,
		Slot:         slot,
		RatePerHour:  "1200",
		CourseID:     "c1",
		Organization: "North High",
		ContactName:  "Lin",
		ContactPhone: "0912345678",
		City:         "Taipei",
	}
}

func TestExecute_PublicSuccess(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))
	require.NoError(t, err)

	r := resp.Reservation
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, calendar.Date(2024, time.March, 4), r.Date)
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.Equal(t, "Digital literacy", r.Details.CourseName)
	assert.Equal(t, "Technology", r.Details.WorkCategory)
	assert.Equal(t, "3600", r.Fee().String())
	assert.False(t, r.CreatedAt.IsZero())

	assert.Equal(t, []string{notifier.EventReservationCreated}, f.notifier.events)
	assert.Equal(t, []string{"public:morning"}, f.metrics.created)
}

func TestExecute_PublicIgnoresRequestedStatus(t *testing.T) {
	f := newFixture()
	req := publicRequest("2024-03-04", "afternoon")
	req.Status = "confirmed"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Reservation.Status)
}

func TestExecute_SequentialDoubleBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, publicRequest("2024-03-04", "morning"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, publicRequest("2024-03-04", "09:00-12:00"))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.SlotMorning, conflict.Slot)
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.Equal(t, []string{stageCheck}, f.metrics.conflicts)
	assert.Equal(t, 1, f.store.Len())
}

func TestExecute_SlotFreedByCancellation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, publicRequest("2024-03-04", "morning"))
	require.NoError(t, err)

	cancelled := domain.StatusCancelled
	_, err = f.store.Update(ctx, resp.Reservation.ID, domain.ReservationPatch{Status: &cancelled})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, publicRequest("2024-03-04", "morning"))
	assert.NoError(t, err)
}

func TestExecute_OperatorPaths(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.uc.Execute(ctx, &Request{
		Date:       "2024-02-20",
		Slot:       "unspecified",
		Status:     "completed",
		CourseName: "Custom workshop",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Reservation.Status)
	assert.Equal(t, "Custom workshop", resp.Reservation.Details.CourseName)
	assert.Equal(t, []string{"operator:unspecified"}, f.metrics.created)

	// целый день блокирует фиксированные слоты
	_, err = f.uc.Execute(ctx, &Request{Date: "2024-02-20", Slot: "afternoon"})
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
}

func TestExecute_RecheckCatchesRace(t *testing.T) {
	f := newFixture()
	metrics := &recordingMetrics{}
	uc := NewUseCase(f.store, &scriptedAvailability{answers: []bool{true, false}},
		lock.Nop{}, f.notifier, metrics, courses, logger.NewNop())
	uc.timeProvider = f.uc.timeProvider

	_, err := uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))

	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.Equal(t, []string{stageRecheck}, metrics.conflicts)
	assert.Zero(t, f.store.Len())
	assert.Empty(t, f.notifier.events)
}

func TestExecute_LockHeld(t *testing.T) {
	f := newFixture()
	f.uc.locker = &stubLocker{acquired: false}

	_, err := f.uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))

	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.Equal(t, []string{stageLock}, f.metrics.conflicts)
	assert.Zero(t, f.store.Len())
}

func TestExecute_LockReleasedAfterInsert(t *testing.T) {
	f := newFixture()
	locker := &stubLocker{acquired: true}
	f.uc.locker = locker

	_, err := f.uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))
	require.NoError(t, err)
	assert.True(t, locker.released)
}

func TestExecute_LockUnavailableFallsBack(t *testing.T) {
	f := newFixture()
	f.uc.locker = &stubLocker{err: lock.ErrLockUnavailable}

	_, err := f.uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))
	assert.NoError(t, err)
}

func TestExecute_StoreUniqueIndex(t *testing.T) {
	f := newFixture(memory.WithUniqueSlots())
	ctx := context.Background()

	_, err := f.store.Create(ctx, &domain.Reservation{
		Date:   calendar.Date(2024, time.March, 4),
		Slot:   domain.SlotMorning,
		Status: domain.StatusConfirmed,
	})
	require.NoError(t, err)

	// проверки видят слот свободным, конфликт ловит хранилище
	f.uc.availability = &scriptedAvailability{answers: []bool{true, true}}

	_, err = f.uc.Execute(ctx, publicRequest("2024-03-04", "morning"))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{stageInsert}, f.metrics.conflicts)
}

func TestExecute_StoreUnavailable(t *testing.T) {
	f := newFixture()
	f.uc.reservationRepo = failingStore{}

	_, err := f.uc.Execute(context.Background(), publicRequest("2024-03-04", "morning"))

	var storeErr *domain.StoreUnavailableError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "create reservation", storeErr.Op)
}

func TestExecute_ConcurrentRequestsOneWinner(t *testing.T) {
	f := newFixture(memory.WithUniqueSlots())
	ctx := context.Background()

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(ctx, publicRequest("2024-03-04", "afternoon"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, domain.ErrSlotOccupied) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.store.Len())
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		field  string
	}{
		{"malformed date", func(r *Request) { r.Date = "2024-02-30" }, "date"},
		{"today is not bookable", func(r *Request) { r.Date = "2024-03-01" }, "date"},
		{"past date", func(r *Request) { r.Date = "2023-12-31" }, "date"},
		{"unknown slot", func(r *Request) { r.Slot = "evening" }, "slot"},
		{"full day is operator only", func(r *Request) { r.Slot = "unspecified" }, "slot"},
		{"missing course", func(r *Request) { r.CourseID = "" }, "course_id"},
		{"unknown course", func(r *Request) { r.CourseID = "c9" }, "course_id"},
		{"missing contact", func(r *Request) { r.ContactName = " " }, "contact_name"},
		{"missing phone", func(r *Request) { r.ContactPhone = "" }, "contact_phone"},
		{"negative rate", func(r *Request) { r.RatePerHour = "-1" }, "rate_per_hour"},
		{"rate not a number", func(r *Request) { r.RatePerHour = "abc" }, "rate_per_hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := publicRequest("2024-03-04", "morning")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Zero(t, f.store.Len())
		})
	}
}

func TestExecute_OperatorInvalidStatus(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{Date: "2024-03-04", Slot: "morning", Status: "done"})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
}
