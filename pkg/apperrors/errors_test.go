package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := Wrap(cause, CodeDatabaseError, "gateway", "query failed", http.StatusBadGateway)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "query failed")
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestGatewayErrorKeepsRawMessage(t *testing.T) {
	cause := errors.New(`duplicate key value violates unique constraint "idx_users_email"`)
	appErr := GatewayError(cause)

	// The raw message survives so it can be shown verbatim as a banner.
	assert.Equal(t, cause.Error(), appErr.Message)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPCode)
}

func TestMarshalJSONHidesInternals(t *testing.T) {
	appErr := Wrap(errors.New("secret detail"), CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret detail")
	assert.NotContains(t, string(data), "500")
	assert.Contains(t, string(data), "Internal server error")
}

func TestValidationErrorCarriesFieldMap(t *testing.T) {
	appErr := ValidationError(map[string]string{"email": "Must be a valid email address"})

	assert.Equal(t, CodeValidationFailed, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid email address", details["email"])
}

func TestAsAppError(t *testing.T) {
	appErr, ok := AsAppError(ErrInvalidCredentials)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}
