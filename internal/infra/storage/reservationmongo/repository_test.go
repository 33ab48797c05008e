package reservationmongo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/pkg/ptr"
)

func TestDocumentRoundTrip(t *testing.T) {
	created := time.Date(2024, time.February, 1, 8, 30, 0, 0, time.UTC)
	res := &domain.Reservation{
		ID:              "abc",
		Date:            time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		Slot:            domain.SlotAfternoon,
		Status:          domain.StatusConfirmed,
		RatePerHour:     decimal.RequireFromString("1250.50"),
		PaymentReceived: true,
		Details: domain.ReservationDetails{
			CourseName:   "Campus lecture tour",
			Organization: "North High",
			City:         "Taipei",
		},
		CreatedAt: created,
		UpdatedAt: created,
	}

	doc, err := toDocument(res)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", doc.Date)
	assert.Equal(t, "afternoon", doc.Slot)

	// документ проходит через bson без потерь
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded document
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	back, err := fromDocument(&decoded)
	require.NoError(t, err)

	assert.Equal(t, res.Date, back.Date)
	assert.Equal(t, res.Slot, back.Slot)
	assert.Equal(t, res.Details, back.Details)
	assert.True(t, res.RatePerHour.Equal(back.RatePerHour))
	assert.True(t, res.Fee().Equal(back.Fee()))
	assert.True(t, created.Equal(back.CreatedAt))
}

func TestUpdateSet(t *testing.T) {
	set, err := updateSet(domain.ReservationPatch{
		Status:      ptr.Ptr(domain.StatusCancelled),
		RatePerHour: ptr.Ptr(decimal.NewFromInt(800)),
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", set["status"])
	assert.Contains(t, set, "rate_per_hour")
	assert.NotContains(t, set, "payment_received")
	assert.NotContains(t, set, "details")
}

func TestFromDocument_BadDate(t *testing.T) {
	_, err := fromDocument(&document{ID: "x", Date: "2024-02-30"})
	assert.ErrorIs(t, err, ErrDecode)
}
