// Package reservationmongo хранит бронирования в коллекции MongoDB.
package reservationmongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

var (
	// ErrDecode возвращается при ошибке декодирования документа
	ErrDecode = errors.New("reservation.mongo: failed to decode document")

	// ErrQuery возвращается при ошибке выполнения операции
	ErrQuery = errors.New("reservation.mongo: failed to execute operation")
)

// document представление бронирования в коллекции
type document struct {
	ID              string               `bson:"_id"`
	Date            string               `bson:"date"`
	Slot            string               `bson:"slot"`
	Status          string               `bson:"status"`
	RatePerHour     primitive.Decimal128 `bson:"rate_per_hour"`
	PaymentReceived bool                 `bson:"payment_received"`
	ReceiptSent     bool                 `bson:"receipt_sent"`
	Details         detailsDocument      `bson:"details"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

type detailsDocument struct {
	CourseID      string `bson:"course_id"`
	CourseName    string `bson:"course_name"`
	Organization  string `bson:"organization"`
	ContactName   string `bson:"contact_name"`
	ContactPhone  string `bson:"contact_phone"`
	ContactEmail  string `bson:"contact_email"`
	ContactSocial string `bson:"contact_social"`
	City          string `bson:"city"`
	Notes         string `bson:"notes"`
	WorkCategory  string `bson:"work_category"`
	FeeType       string `bson:"fee_type"`
	Source        string `bson:"source"`
}

// Repository репозиторий бронирований в MongoDB
type Repository struct {
	coll *mongo.Collection
}

// NewRepository создает репозиторий и индексы коллекции
func NewRepository(ctx context.Context, coll *mongo.Collection) (*Repository, error) {
	r := &Repository{coll: coll}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureIndexes создает частичный уникальный индекс по (date, slot) для активных бронирований
func (r *Repository) ensureIndexes(ctx context.Context) error {
	active := bson.A{
		string(domain.StatusPending),
		string(domain.StatusConfirmed),
		string(domain.StatusCompleted),
	}

	models := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}},
			Options: options.Index().
				SetName("active_slot_uidx").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": active}}),
		},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("%w: create indexes: %v", ErrQuery, err)
	}
	return nil
}

// Create вставляет бронирование
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	now := time.Now().UTC()

	doc, err := toDocument(res)
	if err != nil {
		return nil, err
	}
	doc.ID = uuid.NewString()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotOccupied, doc.Date, doc.Slot)
		}
		return nil, fmt.Errorf("%w: Create - insert: %v", ErrQuery, err)
	}

	return fromDocument(doc)
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var doc document
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - find: %v", ErrQuery, err)
	}
	return fromDocument(&doc)
}

// ListActiveByDate получает неотменённые бронирования на дату
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	filter := bson.M{
		"date":   calendar.Format(date),
		"status": bson.M{"$ne": string(domain.StatusCancelled)},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	return r.find(ctx, "ListActiveByDate", filter, opts)
}

// ListAll получает снимок всей коллекции
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "created_at", Value: 1},
		{Key: "_id", Value: 1},
	})
	return r.find(ctx, "ListAll", bson.M{}, opts)
}

// Update атомарно применяет изменения полей документа
func (r *Repository) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	set, err := updateSet(patch)
	if err != nil {
		return nil, err
	}
	set["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc document
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrReservationNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, fmt.Errorf("%w: reservation id=%s", domain.ErrSlotOccupied, id)
	case err != nil:
		return nil, fmt.Errorf("%w: Update - find and update: %v", ErrQuery, err)
	}

	return fromDocument(&doc)
}

// Delete удаляет документ
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: Delete - delete: %v", ErrQuery, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}

func (r *Repository) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Reservation, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - find: %v", ErrQuery, op, err)
	}
	defer cursor.Close(ctx)

	out := make([]*domain.Reservation, 0)
	for cursor.Next(ctx) {
		var doc document
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
		}
		res, err := fromDocument(&doc)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - cursor: %v", ErrQuery, op, err)
	}

	return out, nil
}

func updateSet(patch domain.ReservationPatch) (bson.M, error) {
	set := bson.M{}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.PaymentReceived != nil {
		set["payment_received"] = *patch.PaymentReceived
	}
	if patch.ReceiptSent != nil {
		set["receipt_sent"] = *patch.ReceiptSent
	}
	if patch.RatePerHour != nil {
		rate, err := toDecimal128(*patch.RatePerHour)
		if err != nil {
			return nil, err
		}
		set["rate_per_hour"] = rate
	}
	if patch.Details != nil {
		set["details"] = toDetailsDocument(*patch.Details)
	}
	return set, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("%w: rate %s: %v", ErrDecode, d, err)
	}
	return v, nil
}

func toDocument(res *domain.Reservation) (*document, error) {
	rate, err := toDecimal128(res.RatePerHour)
	if err != nil {
		return nil, err
	}
	return &document{
		ID:              res.ID,
		Date:            calendar.Format(res.Date),
		Slot:            string(res.Slot),
		Status:          string(res.Status),
		RatePerHour:     rate,
		PaymentReceived: res.PaymentReceived,
		ReceiptSent:     res.ReceiptSent,
		Details:         toDetailsDocument(res.Details),
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}, nil
}

func toDetailsDocument(d domain.ReservationDetails) detailsDocument {
	return detailsDocument{
		CourseID:      d.CourseID,
		CourseName:    d.CourseName,
		Organization:  d.Organization,
		ContactName:   d.ContactName,
		ContactPhone:  d.ContactPhone,
		ContactEmail:  d.ContactEmail,
		ContactSocial: d.ContactSocial,
		City:          d.City,
		Notes:         d.Notes,
		WorkCategory:  d.WorkCategory,
		FeeType:       d.FeeType,
		Source:        d.Source,
	}
}

func fromDocument(doc *document) (*domain.Reservation, error) {
	date, err := calendar.ParseDate(doc.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: id=%s: %v", ErrDecode, doc.ID, err)
	}

	rate, err := decimal.NewFromString(doc.RatePerHour.String())
	if err != nil {
		return nil, fmt.Errorf("%w: id=%s rate: %v", ErrDecode, doc.ID, err)
	}

	d := doc.Details
	return &domain.Reservation{
		ID:              doc.ID,
		Date:            date,
		Slot:            domain.Slot(doc.Slot),
		Status:          domain.ReservationStatus(doc.Status),
		RatePerHour:     rate,
		PaymentReceived: doc.PaymentReceived,
		ReceiptSent:     doc.ReceiptSent,
		Details: domain.ReservationDetails{
			CourseID:      d.CourseID,
			CourseName:    d.CourseName,
			Organization:  d.Organization,
			ContactName:   d.ContactName,
			ContactPhone:  d.ContactPhone,
			ContactEmail:  d.ContactEmail,
			ContactSocial: d.ContactSocial,
			City:          d.City,
			Notes:         d.Notes,
			WorkCategory:  d.WorkCategory,
			FeeType:       d.FeeType,
			Source:        d.Source,
		},
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}
