package create_reservation

import (
	"github.com/m04kA/SMC-LectureBooking/internal/domain"
)

// Request модель запроса на создание бронирования.
// Поля приходят в сыром виде и проверяются в validation.go
type Request struct {
	Public bool // Публичная заявка (true) или ввод оператора

	Date        string // Дата в формате YYYY-MM-DD
	Slot        string // Токен или подпись слота
	Status      string // Начальный статус (только для оператора, по умолчанию pending)
	RatePerHour string // Ставка за час, пустая строка означает 0

	CourseID      string
	CourseName    string
	Organization  string
	ContactName   string
	ContactPhone  string
	ContactEmail  string
	ContactSocial string
	City          string
	Notes         string
	WorkCategory  string
	FeeType       string
	Source        string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
}
