package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{Validation("dob", "invalid date"), http.StatusBadRequest},
		{NotFound("patient", "P999"), http.StatusNotFound},
		{InvalidTransition("bill", "paid", "paid"), http.StatusConflict},
		{Conflict("double booking"), http.StatusConflict},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode(), tt.err.Message)
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("staff", "S001")))
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("plain error")))

	wrapped := fmt.Errorf("creating appointment: %w", Conflict("slot taken"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindValidation))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "patient P007 not found", NotFound("patient", "P007").Error())
	assert.Equal(t, "appointment cannot transition from cancelled to cancelled",
		InvalidTransition("appointment", "cancelled", "cancelled").Error())

	internal := Internal(fmt.Errorf("db down"))
	assert.Contains(t, internal.Error(), "db down")
	assert.EqualError(t, internal.Unwrap(), "db down")
}
