package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/infra/storage/memory"
	checkAvailability "github.com/m04kA/SMC-LectureBooking/internal/usecase/check_availability"
	"github.com/m04kA/SMC-LectureBooking/pkg/logger"
)

func TestHandle(t *testing.T) {
	store := memory.NewStore()
	d, err := calendar.ParseDate("2024-03-04")
	require.NoError(t, err)
	_, err = store.Create(context.Background(), &domain.Reservation{
		Date:   d,
		Slot:   domain.SlotAfternoon,
		Status: domain.StatusPending,
	})
	require.NoError(t, err)

	log := logger.NewNop()
	h := NewHandler(checkAvailability.NewUseCase(store, log), log)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2024-03-04", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-04", body.Date)
	assert.Equal(t, []string{"afternoon"}, body.Occupied)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, "morning", body.Slots[0].Slot)
	assert.True(t, body.Slots[0].Free)
	assert.False(t, body.Slots[1].Free)
}

func TestHandle_BadDate(t *testing.T) {
	log := logger.NewNop()
	h := NewHandler(checkAvailability.NewUseCase(memory.NewStore(), log), log)

	for _, target := range []string{"/api/v1/availability", "/api/v1/availability?date=2024-02-30"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
