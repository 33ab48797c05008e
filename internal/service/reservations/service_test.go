package reservations

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
	"github.com/m04kA/SMC-LectureBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-LectureBooking/pkg/logger"
	"github.com/m04kA/SMC-LectureBooking/pkg/ptr"
)

// countingStore считает записи в хранилище
type countingStore struct {
	*memory.Store
	updates int
}

func (c *countingStore) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	c.updates++
	return c.Store.Update(ctx, id, patch)
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(_ context.Context, event string, _ *domain.Reservation) {
	n.events = append(n.events, event)
}

type fixture struct {
	store    *countingStore
	notifier *recordingNotifier
	svc      *Service
}

func newFixture() *fixture {
	store := &countingStore{Store: memory.NewStore()}
	n := &recordingNotifier{}
	log := logger.NewNop()
	courses := []domain.Course{{ID: "c1", Title: "Digital literacy"}}
	return &fixture{
		store:    store,
		notifier: n,
		svc:      NewService(store, check_availability.NewUseCase(store, log), n, courses, log),
	}
}

func (f *fixture) seed(t *testing.T, date string, slot domain.Slot, status domain.ReservationStatus, org string) *domain.Reservation {
	t.Helper()
	d, err := calendar.ParseDate(date)
	require.NoError(t, err)
	r, err := f.store.Create(context.Background(), &domain.Reservation{
		Date:        d,
		Slot:        slot,
		Status:      status,
		RatePerHour: decimal.NewFromInt(1000),
		Details: domain.ReservationDetails{
			Organization: org,
			CourseName:   "Course " + org,
			ContactName:  "Contact " + org,
		},
	})
	require.NoError(t, err)
	return r
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	r := f.seed(t, "2024-03-04", domain.SlotAfternoon, domain.StatusPending, "North")

	resp, err := f.svc.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
	assert.Equal(t, "13:30-16:30", resp.SlotLabel)
	assert.Equal(t, "3000", resp.TotalFee)

	_, err = f.svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestUpdateStatus_IdempotentNoWrite(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusPending, "North")

	resp, err := f.svc.UpdateStatus(ctx, r.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, f.store.updates)

	resp, err = f.svc.UpdateStatus(ctx, r.ID, &models.UpdateStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, f.store.updates)

	assert.Equal(t, []string{notifier.EventReservationConfirmed}, f.notifier.events)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	f := newFixture()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusPending, "North")

	_, err := f.svc.UpdateStatus(context.Background(), r.ID, &models.UpdateStatusRequest{Status: "archived"})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "status", vErr.Field)
	assert.Zero(t, f.store.updates)
}

func TestCancel_FreesSlotAndIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusConfirmed, "North")

	checker := check_availability.NewUseCase(f.store, logger.NewNop())
	free, err := checker.IsFree(ctx, r.Date, r.Slot)
	require.NoError(t, err)
	require.False(t, free)

	_, err = f.svc.Cancel(ctx, r.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, r.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.updates)
	assert.Equal(t, []string{notifier.EventReservationCancelled}, f.notifier.events)

	free, err = checker.IsFree(ctx, r.Date, r.Slot)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestUpdateStatus_ReactivateTakenSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cancelled := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusCancelled, "North")
	f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusPending, "South")

	_, err := f.svc.UpdateStatus(ctx, cancelled.ID, &models.UpdateStatusRequest{Status: "pending"})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, f.store.updates)
}

func TestMarkPaymentAndReceipt(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusCompleted, "North")

	resp, err := f.svc.MarkPayment(ctx, r.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.PaymentReceived)

	_, err = f.svc.MarkPayment(ctx, r.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.updates)

	resp, err = f.svc.MarkReceipt(ctx, r.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.ReceiptSent)
	assert.True(t, resp.PaymentReceived)

	_, err = f.svc.MarkReceipt(ctx, "missing", true)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestUpdateDetails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusPending, "North")

	resp, err := f.svc.UpdateDetails(ctx, r.ID, &models.UpdateDetailsRequest{
		RatePerHour:  ptr.Ptr("1500"),
		CourseID:     "c1",
		Organization: " West High ",
		City:         "Tainan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Digital literacy", resp.CourseName)
	assert.Equal(t, "West High", resp.Organization)
	assert.Equal(t, "4500", resp.TotalFee)
	assert.Equal(t, "2024-03-04", resp.Date)

	_, err = f.svc.UpdateDetails(ctx, r.ID, &models.UpdateDetailsRequest{RatePerHour: ptr.Ptr("-5")})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = f.svc.UpdateDetails(ctx, r.ID, &models.UpdateDetailsRequest{CourseID: "nope"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "course_id", vErr.Field)
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	r := f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusPending, "North")

	require.NoError(t, f.svc.Delete(ctx, r.ID))
	assert.ErrorIs(t, f.svc.Delete(ctx, r.ID), domain.ErrReservationNotFound)
	assert.Zero(t, f.store.Len())
}

func TestList_FilterSearchSort(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seed(t, "2024-03-04", domain.SlotMorning, domain.StatusConfirmed, "North")
	f.seed(t, "2024-03-18", domain.SlotMorning, domain.StatusPending, "South")
	f.seed(t, "2024-03-11", domain.SlotAfternoon, domain.StatusCancelled, "North")
	f.seed(t, "2024-04-01", domain.SlotMorning, domain.StatusPending, "East")

	resp, err := f.svc.List(ctx, &models.ListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, "2024-04-01", resp.Reservations[0].Date)
	assert.Equal(t, []string{"2024-04", "2024-03"}, resp.Facets.Months)
	assert.Equal(t, []string{"East", "North", "South"}, resp.Facets.Organizations)

	resp, err = f.svc.List(ctx, &models.ListRequest{Month: "2024-03", Sort: "date-asc"})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, "2024-03-04", resp.Reservations[0].Date)
	assert.Equal(t, "2024-03-18", resp.Reservations[2].Date)

	resp, err = f.svc.List(ctx, &models.ListRequest{Sort: "status"})
	require.NoError(t, err)
	got := make([]string, 0, resp.Total)
	for _, r := range resp.Reservations {
		got = append(got, r.Status+" "+r.Date)
	}
	assert.Equal(t, []string{
		"pending 2024-04-01",
		"pending 2024-03-18",
		"confirmed 2024-03-04",
		"cancelled 2024-03-11",
	}, got)

	resp, err = f.svc.List(ctx, &models.ListRequest{Search: "NORTH"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	resp, err = f.svc.List(ctx, &models.ListRequest{Search: "2024-04"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	resp, err = f.svc.List(ctx, &models.ListRequest{Organization: "South", Status: "pending"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
}

func TestList_InvalidFilter(t *testing.T) {
	f := newFixture()

	tests := []struct {
		req   models.ListRequest
		field string
	}{
		{models.ListRequest{Month: "2024-3"}, "month"},
		{models.ListRequest{Status: "archived"}, "status"},
		{models.ListRequest{Sort: "random"}, "sort"},
	}

	for _, tt := range tests {
		_, err := f.svc.List(context.Background(), &tt.req)
		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, tt.field, vErr.Field)
	}
}

