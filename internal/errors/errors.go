package errors

import "fmt"

// ErrorCode represents a tears error code.
type ErrorCode string

const (
	ErrInvalidRequest  ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound        ErrorCode = "NOT_FOUND"         // 404
	ErrFileNotFound    ErrorCode = "FILE_NOT_FOUND"    // 404
	ErrIDAlreadyExists ErrorCode = "ID_ALREADY_EXISTS" // 409
	ErrItemTooLarge    ErrorCode = "ITEM_TOO_LARGE"    // 413
	ErrCatalogInvalid  ErrorCode = "CATALOG_INVALID"   // 422
	ErrCancelled       ErrorCode = "CANCELLED"         // 499
	ErrInternal        ErrorCode = "INTERNAL"          // 500
)

// TearsError represents a structured error with code, status, and details.
type TearsError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TearsError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TearsError {
	return &TearsError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when an item cannot be found.
func NewNotFound(id string) *TearsError {
	return &TearsError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("item not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFileNotFound creates a 404 error for a missing import/export file.
func NewFileNotFound(path string) *TearsError {
	return &TearsError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewIDAlreadyExists creates a 409 error for item ID collisions.
func NewIDAlreadyExists(id string) *TearsError {
	return &TearsError{
		Code:    ErrIDAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("item with id %q already exists", id),
		Details: map[string]any{"id": id},
	}
}

// NewItemTooLarge creates a 413 error when item text exceeds the size limit.
func NewItemTooLarge(max, actual int) *TearsError {
	return &TearsError{
		Code:    ErrItemTooLarge,
		Status:  413,
		Message: fmt.Sprintf("item exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewCatalogInvalid creates a 422 error when stored catalog data fails
// validation. The engine must never run against an invalid catalog.
func NewCatalogInvalid(err error) *TearsError {
	msg := "catalog failed validation"
	if err != nil {
		msg = fmt.Sprintf("catalog failed validation: %v", err)
	}
	return &TearsError{
		Code:    ErrCatalogInvalid,
		Status:  422,
		Message: msg,
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *TearsError {
	return &TearsError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TearsError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TearsError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TearsError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TearsError); ok {
		return tErr.Code == code
	}
	return false
}
