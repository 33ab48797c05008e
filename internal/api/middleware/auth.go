package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-LectureBooking/internal/api/handlers"
)

// OperatorTokenHeader заголовок с токеном оператора
const OperatorTokenHeader = "X-Operator-Token"

const msgUnauthorized = "требуется токен оператора"

// OperatorAuth пропускает только запросы с токеном оператора.
// Пустой token закрывает все маршруты оператора.
func OperatorAuth(token string) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get(OperatorTokenHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
