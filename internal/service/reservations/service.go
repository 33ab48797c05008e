package reservations

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-LectureBooking/internal/calendar"
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
	"github.com/m04kA/SMC-LectureBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-LectureBooking/internal/service/reservations/models"
)

// Service сервис операций оператора над бронированиями
type Service struct {
	reservationRepo ReservationRepository
	availability    AvailabilityChecker
	notifier        Notifier
	courses         []domain.Course
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	availability AvailabilityChecker,
	notifier Notifier,
	courses []domain.Course,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		availability:    availability,
		notifier:        notifier,
		courses:         courses,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s", id)

	reservation, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(reservation), nil
}

// List получает отфильтрованный и отсортированный список бронирований
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	all, err := s.reservationRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, &domain.StoreUnavailableError{Op: "list reservations", Err: err}
	}

	filtered := applyFilter(all, filter)

	s.logger.Info("List: %d of %d reservations match, sort=%s", len(filtered), len(all), filter.Sort)

	return &models.ReservationListResponse{
		Reservations: models.FromDomainReservationList(filtered),
		Total:        len(filtered),
		Facets:       buildFacets(all),
	}, nil
}

// UpdateStatus обновляет статус бронирования.
// Повторная установка текущего статуса не выполняет запись
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for reservation id=%s", req.Status, id)
		return nil, domain.NewValidationError("status", err.Error())
	}

	s.logger.Info("UpdateStatus: updating reservation id=%s to status=%s", id, status)

	current, err := s.get(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	// Идемпотентность: статус уже установлен
	if current.Status == status {
		s.logger.Info("UpdateStatus: reservation id=%s already has status=%s", id, status)
		return models.FromDomainReservation(current), nil
	}

	// Отменённое бронирование возвращается в работу только если слот свободен
	if !current.IsActive() && status != domain.StatusCancelled {
		free, err := s.availability.IsFree(ctx, current.Date, current.Slot)
		if err != nil {
			return nil, err
		}
		if !free {
			s.logger.Warn("UpdateStatus: cannot reactivate reservation id=%s, slot %s %s is taken",
				id, calendar.Format(current.Date), current.Slot)
			return nil, &domain.ConflictError{Date: current.Date, Slot: current.Slot}
		}
	}

	updated, err := s.update(ctx, "UpdateStatus", current, domain.ReservationPatch{Status: &status})
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.StatusConfirmed:
		s.notifier.Notify(ctx, notifier.EventReservationConfirmed, updated)
	case domain.StatusCancelled:
		s.notifier.Notify(ctx, notifier.EventReservationCancelled, updated)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%s to status=%s", id, status)
	return models.FromDomainReservation(updated), nil
}

// Cancel отменяет бронирование, освобождая слот
func (s *Service) Cancel(ctx context.Context, id string) (*models.ReservationResponse, error) {
	return s.UpdateStatus(ctx, id, &models.UpdateStatusRequest{Status: string(domain.StatusCancelled)})
}

// MarkPayment устанавливает отметку о получении оплаты
func (s *Service) MarkPayment(ctx context.Context, id string, received bool) (*models.ReservationResponse, error) {
	s.logger.Info("MarkPayment: reservation id=%s, received=%t", id, received)

	current, err := s.get(ctx, "MarkPayment", id)
	if err != nil {
		return nil, err
	}
	if current.PaymentReceived == received {
		return models.FromDomainReservation(current), nil
	}

	updated, err := s.update(ctx, "MarkPayment", current, domain.ReservationPatch{PaymentReceived: &received})
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(updated), nil
}

// MarkReceipt устанавливает отметку об отправке квитанции
func (s *Service) MarkReceipt(ctx context.Context, id string, sent bool) (*models.ReservationResponse, error) {
	s.logger.Info("MarkReceipt: reservation id=%s, sent=%t", id, sent)

	current, err := s.get(ctx, "MarkReceipt", id)
	if err != nil {
		return nil, err
	}
	if current.ReceiptSent == sent {
		return models.FromDomainReservation(current), nil
	}

	updated, err := s.update(ctx, "MarkReceipt", current, domain.ReservationPatch{ReceiptSent: &sent})
	if err != nil {
		return nil, err
	}
	return models.FromDomainReservation(updated), nil
}

// UpdateDetails заменяет описательные поля и, если указана, ставку.
// Дата и слот не меняются: перенос выполняется отменой и новым бронированием
func (s *Service) UpdateDetails(ctx context.Context, id string, req *models.UpdateDetailsRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateDetails: reservation id=%s", id)

	details := req.ToDomainDetails()
	if details.CourseID != "" {
		course, ok := domain.FindCourse(s.courses, details.CourseID)
		if !ok {
			return nil, domain.NewValidationError("course_id", "unknown course")
		}
		details.CourseName = course.Title
	}

	patch := domain.ReservationPatch{Details: &details}
	if req.RatePerHour != nil {
		rate, err := domain.ParseRate(*req.RatePerHour)
		if err != nil {
			s.logger.Warn("UpdateDetails: invalid rate for reservation id=%s: %v", id, err)
			return nil, err
		}
		patch.RatePerHour = &rate
	}

	current, err := s.get(ctx, "UpdateDetails", id)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, "UpdateDetails", current, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateDetails: successfully updated reservation id=%s", id)
	return models.FromDomainReservation(updated), nil
}

// Delete физически удаляет бронирование
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting reservation id=%s", id)

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("Delete: reservation id=%s not found", id)
			return domain.ErrReservationNotFound
		}
		s.logger.Error("Delete: repository error for reservation id=%s: %v", id, err)
		return &domain.StoreUnavailableError{Op: "delete reservation", Err: err}
	}

	s.logger.Info("Delete: successfully deleted reservation id=%s", id)
	return nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op, id string) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, domain.ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, &domain.StoreUnavailableError{Op: "get reservation", Err: err}
	}
	return reservation, nil
}

func (s *Service) update(ctx context.Context, op string, current *domain.Reservation, patch domain.ReservationPatch) (*domain.Reservation, error) {
	updated, err := s.reservationRepo.Update(ctx, current.ID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrReservationNotFound):
			s.logger.Warn("%s: reservation id=%s not found during update", op, current.ID)
			return nil, domain.ErrReservationNotFound
		case errors.Is(err, domain.ErrSlotOccupied):
			s.logger.Warn("%s: store rejected update of reservation id=%s: %v", op, current.ID, err)
			return nil, &domain.ConflictError{Date: current.Date, Slot: current.Slot}
		default:
			s.logger.Error("%s: repository error for reservation id=%s: %v", op, current.ID, err)
			return nil, &domain.StoreUnavailableError{Op: "update reservation", Err: err}
		}
	}
	return updated, nil
}
