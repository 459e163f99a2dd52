package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedCodes(t *testing.T) {
	err := fmt.Errorf("outer: %w", DuplicateUsername())

	assert.True(t, Is(err, CodeDuplicateUsername))
	assert.False(t, Is(err, CodeNotFound))
	assert.False(t, Is(errors.New("plain"), CodeNotFound))
}

func TestErrorStringIncludesField(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR: is empty (title)", Validation("title", "is empty").Error())
	assert.Equal(t, "NOT_FOUND: Item not found", NotFound("Item", nil).Error())
}

func TestStatusMapping(t *testing.T) {
	cases := map[*AppError]int{
		InvalidID("id", nil):          http.StatusBadRequest,
		InvalidSoldValue():            http.StatusUnprocessableEntity,
		Mismatch("x"):                 http.StatusNotFound,
		DuplicateUniversity("x"):      http.StatusConflict,
		Unauthorized("x", nil):        http.StatusUnauthorized,
		Persistence("x", nil):         http.StatusInternalServerError,
		TooManyRequests("slow down"):  http.StatusTooManyRequests,
	}
	for appErr, status := range cases {
		assert.Equal(t, status, appErr.Status, appErr.Code)
	}
}

func TestUnwrapAndAs(t *testing.T) {
	cause := errors.New("bcrypt: boom")
	err := Unauthorized("invalid credentials", cause)

	assert.ErrorIs(t, err, cause)

	appErr, ok := As(fmt.Errorf("wrap: %w", err))
	assert.True(t, ok)
	assert.Equal(t, CodeUnauthorized, appErr.Code)

	_, ok = As(cause)
	assert.False(t, ok)
}
