package e

import (
	"errors"
	"fmt"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Виды ошибок, по которым граница HTTP выбирает статус
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")

	// 400 Bad Request (транспорт)
	ErrInvalidProductID   = fmt.Errorf("Invalid product id.")
	ErrInvalidRequestBody = fmt.Errorf("Invalid request body.")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("Internal server error")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnknownStorage       = fmt.Errorf("unknown storage backend")
)

// NotFoundError — запрошенная сущность отсутствует в хранилище.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity string, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (n *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", n.Entity, n.ID)
}

func (n *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError — запрос нарушает бизнес-правило. Message отдаётся клиенту как есть.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (v *ValidationError) Error() string {
	return v.Message
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
