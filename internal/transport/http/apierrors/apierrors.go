// apierrors стандартизирует ответы об ошибках HTTP-слоя reviews-service.
// На вход он принимает ошибку (сентинелы сервисного слоя),
// а на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
//
// Исходное соглашение системы сохранено сознательно: и отсутствующая,
// и невалидная/просроченная bearer-заявка на защищённом маршруте — 403
// (не 401); 401 остаётся только за неудачным логином. См. DESIGN.md.
package apierrors

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/go-food-reviews/internal/service"
)

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и
// унифицированный ответ для фронта.
//
// Поведение:
//   - err == nil - это программная ошибка вызова: возвращаем 500/internal,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг.
//   - незнакомая ошибка - 500/internal (сырые ошибки стораджа наружу не текут).
func ToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{
			Error: APIError{
				Code:    "internal",
				Message: "internal error",
			},
		}
	}

	httpStatus, code, msg := baseFromService(err)
	return httpStatus, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// baseFromService — базовый маппинг сервисных сентинелов -> HTTP/FE-код/сообщение:
//   - ErrInvalidArgument и ошибки валидации регистрации -> 400
//   - ErrInvalidQueryParameter (битый min_rating) -> 400 со своим кодом
//   - ErrNotFound -> 404
//   - ErrEmailTaken -> 409
//   - ErrInvalidCredentials (логин) -> 401
//   - ErrMissingCredential -> 403 (соглашение исходной системы)
//   - ErrInvalidToken / ErrTokenExpired -> 403, единый код invalid_token
//   - ErrPermissionDenied -> 403
//   - прочее -> 500/internal
func baseFromService(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrInvalidQueryParameter):
		return http.StatusBadRequest, "invalid_query_parameter", "invalid query parameter"
	case errors.Is(err, service.ErrInvalidArgument),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrEmptyPassword):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusConflict, "already_exists", "already exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "unauthenticated", "unauthenticated"
	case errors.Is(err, service.ErrMissingCredential):
		return http.StatusForbidden, "missing_credential", "missing credential"
	case errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired):
		return http.StatusForbidden, "invalid_token", "invalid token"
	case errors.Is(err, service.ErrPermissionDenied):
		return http.StatusForbidden, "permission_denied", "permission denied"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
