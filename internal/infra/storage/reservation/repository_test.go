package reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/pkg/ptr"
)

func TestUpdateQuery_OnlyPatchedColumns(t *testing.T) {
	query, args, err := updateQuery("3f1c2a8e-0000-4000-8000-000000000001", domain.ReservationPatch{
		Status:          ptr.Ptr(domain.StatusConfirmed),
		PaymentReceived: ptr.Ptr(true),
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "UPDATE reservations SET updated_at = NOW(), status = $1, payment_received = $2 WHERE id = $3"), query)
	assert.Contains(t, query, "RETURNING id, date, slot")
	assert.NotContains(t, query, "receipt_sent =")
	assert.Equal(t, []interface{}{domain.StatusConfirmed, true, "3f1c2a8e-0000-4000-8000-000000000001"}, args)
}

func TestUpdateQuery_Details(t *testing.T) {
	query, args, err := updateQuery("id", domain.ReservationPatch{
		RatePerHour: ptr.Ptr(decimal.NewFromInt(1200)),
		Details:     &domain.ReservationDetails{City: "Taichung"},
	})
	require.NoError(t, err)

	assert.Contains(t, query, "rate_per_hour = $1")
	assert.Contains(t, query, "city = ")
	assert.Contains(t, query, "organization = ")
	// 1 ставка + 12 описательных полей + id
	assert.Len(t, args, 14)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: uniqueViolation}
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup)))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestRepository_InvalidIDIsNotFound(t *testing.T) {
	// запрос к БД не выполняется для некорректного UUID
	repo := NewRepository(nil)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "not-a-uuid"), domain.ErrReservationNotFound)

	_, err = repo.Update(ctx, "not-a-uuid", domain.ReservationPatch{ReceiptSent: ptr.Ptr(true)})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

func TestReturning(t *testing.T) {
	assert.Equal(t, len(columns), strings.Count(returning(), ",")+1)
}
