package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

const (
	msgInternalError   = "внутренняя ошибка сервера"
	msgExternalFailure = "внешний сервис недоступен, попробуйте позже"
)

var (
	// ErrInvalidParam возвращается, когда параметр пути или запроса некорректен
	ErrInvalidParam = errors.New("invalid request parameter")

	validate = validator.New()
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondDomainError отвечает по классу доменной ошибки:
// validation -> 400, capacity и конфликт состояния -> 409, gated -> 403, внешний сбой -> 502
// Возвращает false, если ошибка не относится ни к одному классу
func RespondDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrOperationInFlight):
		RespondConflict(w, err.Error())
	case errors.Is(err, domain.ErrCapacity):
		RespondConflict(w, err.Error())
	case errors.Is(err, domain.ErrConfigurationGated):
		RespondForbidden(w, err.Error())
	case errors.Is(err, domain.ErrValidation):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, domain.ErrExternalOperation):
		RespondError(w, http.StatusBadGateway, msgExternalFailure)
	default:
		return false
	}
	return true
}

// DecodeJSON читает тело запроса и проверяет его тегами validate
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}
	return nil
}

// PathInt64 читает положительный целый параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return value, nil
}

// PathInt читает неотрицательный целый параметр пути
func PathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParam, name, raw)
	}
	return value, nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidParam, raw)
	}
	return date, nil
}
