package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	err := NewNotFound("sit-with-them")

	if !strings.Contains(err.Error(), "NOT_FOUND") {
		t.Errorf("Error() = %q, want code included", err.Error())
	}
	if !strings.Contains(err.Error(), "sit-with-them") {
		t.Errorf("Error() = %q, want id included", err.Error())
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["id"] != "sit-with-them" {
		t.Errorf("Details[id] = %v, want sit-with-them", err.Details["id"])
	}
}

func TestIs(t *testing.T) {
	if !Is(NewInvalidRequest("bad"), ErrInvalidRequest) {
		t.Error("Is(NewInvalidRequest, ErrInvalidRequest) = false, want true")
	}
	if Is(NewInvalidRequest("bad"), ErrNotFound) {
		t.Error("Is(NewInvalidRequest, ErrNotFound) = true, want false")
	}
	if Is(stderrors.New("plain"), ErrInternal) {
		t.Error("Is(plain error, ErrInternal) = true, want false")
	}
	if Is(nil, ErrInternal) {
		t.Error("Is(nil, ErrInternal) = true, want false")
	}
}

func TestNewItemTooLarge(t *testing.T) {
	err := NewItemTooLarge(4000, 5000)

	if err.Code != ErrItemTooLarge {
		t.Errorf("Code = %q, want %q", err.Code, ErrItemTooLarge)
	}
	if err.Details["max_chars"] != 4000 || err.Details["actual_chars"] != 5000 {
		t.Errorf("Details = %v, want max/actual chars", err.Details)
	}
}

func TestNewInternal_NilError(t *testing.T) {
	err := NewInternal(nil)

	if err.Message != "internal error" {
		t.Errorf("Message = %q, want 'internal error'", err.Message)
	}
}

func TestNewCatalogInvalid(t *testing.T) {
	err := NewCatalogInvalid(stderrors.New("duplicate item id: x"))

	if err.Code != ErrCatalogInvalid {
		t.Errorf("Code = %q, want %q", err.Code, ErrCatalogInvalid)
	}
	if !strings.Contains(err.Message, "duplicate item id: x") {
		t.Errorf("Message = %q, want cause included", err.Message)
	}
}
