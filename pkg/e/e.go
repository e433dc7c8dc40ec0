package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Классы ошибок, с которыми сравниваются типизированные ошибки через errors.Is
	ErrValidation = fmt.Errorf("validation failed")
	ErrNetwork    = fmt.Errorf("network error")
	ErrNotFound   = fmt.Errorf("not found")

	// Ошибки редактора товара
	ErrCategoryCycle    = fmt.Errorf("category parent chain contains a cycle")
	ErrUploadInProgress = &ValidationError{Field: "images", Reason: "image upload is still in progress"}
	ErrSubmitInProgress = &ValidationError{Field: "form", Reason: "product is already being saved"}

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrMissingFields        = fmt.Errorf("missing required fields")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrTitleRequired        = fmt.Errorf("product title is required")
	ErrNoImages             = fmt.Errorf("no images provided")
	ErrTooManyImages        = fmt.Errorf("too many images")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrUnexpectedID         = fmt.Errorf("new product must not carry an id")
	ErrMissingID            = fmt.Errorf("product id is required for update")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}

// ValidationError описывает некорректное значение поля формы или запроса.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (v *ValidationError) Error() string {
	if v.Field == "" {
		return v.Reason
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NetworkError описывает сбой транспорта или ответ API с ошибкой сервера.
// Status равен 0, если ответ не был получен.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func NewNetworkError(op string, status int, err error) *NetworkError {
	return &NetworkError{Op: op, Status: status, Err: err}
}

func (n *NetworkError) Error() string {
	if n.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", n.Op, n.Status, n.Err)
	}
	return fmt.Sprintf("%s: %v", n.Op, n.Err)
}

func (n *NetworkError) Unwrap() error {
	return n.Err
}

func (n *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// Retryable сообщает, имеет ли смысл повторить запрос.
func (n *NetworkError) Retryable() bool {
	return n.Status == 0 || n.Status >= 500 || n.Status == 429
}

// NotFoundError описывает отсутствующую на сервере сущность.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (n *NotFoundError) Error() string {
	if n.ID == "" {
		return fmt.Sprintf("%s not found", n.Resource)
	}
	return fmt.Sprintf("%s %q not found", n.Resource, n.ID)
}

func (n *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsRetryable возвращает true для сетевых ошибок, которые допускают повтор.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Retryable()
	}
	return false
}
