package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejected(t *testing.T) {
	err := NewRejected([]string{"Name required", "Code required"})

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, TypeValidation, gerr.Type())
	assert.Equal(t, CodeInvalidInput, gerr.Code())
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
	assert.Equal(t, []string{"Name required", "Code required"}, gerr.Messages())
	assert.Equal(t, "Validation error", err.Error())
}

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType Type
		wantCode Code
		wantHTTP int
	}{
		{"not found relayed", http.StatusNotFound, TypeBusiness, CodeNotFound, http.StatusNotFound},
		{"conflict relayed", http.StatusConflict, TypeBusiness, CodeConflict, http.StatusConflict},
		{"teapot relayed", http.StatusTeapot, TypeBusiness, CodeUpstream, http.StatusTeapot},
		{"server error", http.StatusInternalServerError, TypeServer, CodeUpstream, http.StatusBadGateway},
		{"unavailable", http.StatusServiceUnavailable, TypeServer, CodeUpstream, http.StatusBadGateway},
		{"unexpected 3xx", http.StatusFound, TypeServer, CodeUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBackend(tt.status, "Error adding department", []string{"Code taken"})

			var gerr *Error
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.wantType, gerr.Type())
			assert.Equal(t, tt.wantCode, gerr.Code())
			assert.Equal(t, tt.wantHTTP, gerr.StatusCode())
			assert.Equal(t, "Error adding department", gerr.Msg())
			assert.Equal(t, []string{"Code taken"}, gerr.Messages())
		})
	}
}

func TestNewServer(t *testing.T) {
	cause := errors.New("boom")
	err := NewServer(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", err.Error())

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, http.StatusInternalServerError, gerr.StatusCode())
}

func TestNewBusiness(t *testing.T) {
	err := NewBusiness("No changes detected", CodeInvalidInput)

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "No changes detected", err.Error())
	assert.Equal(t, TypeBusiness, gerr.Type())
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
}

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput(nil, "id", "must be a number")

	var gerr *Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, map[string]string{"id": "must be a number"}, gerr.Fields())

	err = NewInvalidInput(nil, "odd")
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, CodeInvalidFormat, gerr.Code())
}

func TestNewInvalidFormat(t *testing.T) {
	assert.Equal(t, "Invalid request body", NewInvalidFormat().Error())
	assert.Equal(t, "bad", NewInvalidFormat("bad").Error())
}
