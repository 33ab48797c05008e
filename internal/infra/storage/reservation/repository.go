package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"date",
	"slot",
	"status",
	"rate_per_hour",
	"payment_received",
	"receipt_sent",
	"course_id",
	"course_name",
	"organization",
	"contact_name",
	"contact_phone",
	"contact_email",
	"contact_social",
	"city",
	"notes",
	"work_category",
	"fee_type",
	"source",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL.
// Уникальность слота обеспечивается частичным уникальным индексом (см. migrations).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Нарушение уникального индекса по (date, slot) возвращается как domain.ErrSlotOccupied
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"date",
			"slot",
			"status",
			"rate_per_hour",
			"payment_received",
			"receipt_sent",
			"course_id",
			"course_name",
			"organization",
			"contact_name",
			"contact_phone",
			"contact_email",
			"contact_social",
			"city",
			"notes",
			"work_category",
			"fee_type",
			"source",
		).
		Values(
			uuid.NewString(),
			calendar.Format(res.Date),
			res.Slot,
			res.Status,
			res.RatePerHour,
			res.PaymentReceived,
			res.ReceiptSent,
			res.Details.CourseID,
			res.Details.CourseName,
			res.Details.Organization,
			res.Details.ContactName,
			res.Details.ContactPhone,
			res.Details.ContactEmail,
			res.Details.ContactSocial,
			res.Details.City,
			res.Details.Notes,
			res.Details.WorkCategory,
			res.Details.FeeType,
			res.Details.Source,
		).
		Suffix("RETURNING " + returning()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotOccupied, calendar.Format(res.Date), res.Slot)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrReservationNotFound
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListActiveByDate получает неотменённые бронирования на дату
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"date": calendar.Format(date)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListActiveByDate", query, args)
}

// ListAll получает снимок всех бронирований для отчётов и списков оператора
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("date ASC", "created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListAll", query, args)
}

// Update атомарно обновляет указанные поля одним запросом
func (r *Repository) Update(ctx context.Context, id string, patch domain.ReservationPatch) (*domain.Reservation, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrReservationNotFound
	}

	query, args, err := updateQuery(id, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: reservation id=%s", domain.ErrSlotOccupied, id)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return res, nil
}

// Delete физически удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrReservationNotFound
	}

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return domain.ErrReservationNotFound
	}

	return nil
}

// updateQuery строит UPDATE только по заданным полям патча
func updateQuery(id string, patch domain.ReservationPatch) (string, []interface{}, error) {
	builder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()"))

	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.PaymentReceived != nil {
		builder = builder.Set("payment_received", *patch.PaymentReceived)
	}
	if patch.ReceiptSent != nil {
		builder = builder.Set("receipt_sent", *patch.ReceiptSent)
	}
	if patch.RatePerHour != nil {
		builder = builder.Set("rate_per_hour", *patch.RatePerHour)
	}
	if d := patch.Details; d != nil {
		builder = builder.SetMap(map[string]interface{}{
			"course_id":      d.CourseID,
			"course_name":    d.CourseName,
			"organization":   d.Organization,
			"contact_name":   d.ContactName,
			"contact_phone":  d.ContactPhone,
			"contact_email":  d.ContactEmail,
			"contact_social": d.ContactSocial,
			"city":           d.City,
			"notes":          d.Notes,
			"work_category":  d.WorkCategory,
			"fee_type":       d.FeeType,
			"source":         d.Source,
		})
	}

	return builder.
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + returning()).
		ToSql()
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

func returning() string {
	return strings.Join(columns, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                  domain.Reservation
		date                 time.Time
		slot, status         string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&date,
		&slot,
		&status,
		&res.RatePerHour,
		&res.PaymentReceived,
		&res.ReceiptSent,
		&res.Details.CourseID,
		&res.Details.CourseName,
		&res.Details.Organization,
		&res.Details.ContactName,
		&res.Details.ContactPhone,
		&res.Details.ContactEmail,
		&res.Details.ContactSocial,
		&res.Details.City,
		&res.Details.Notes,
		&res.Details.WorkCategory,
		&res.Details.FeeType,
		&res.Details.Source,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = calendar.DateOnly(date)
	res.Slot = domain.Slot(slot)
	res.Status = domain.ReservationStatus(status)
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
