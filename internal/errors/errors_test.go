package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeUpstream, http.StatusBadGateway},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("person %d not found", 42)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrUpstream))
	assert.Equal(t, "person 42 not found", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")
	err := Wrap(cause, CodeUpstream, "fetch person")

	assert.True(t, Is(err, ErrUpstream))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch person: dial tcp: timeout", err.Error())
}

func TestWithDetails_DoesNotMutateSentinel(t *testing.T) {
	detailed := ErrValidation.WithDetails(map[string]string{"mode": "is required"})

	assert.Nil(t, ErrValidation.Details)
	assert.NotNil(t, detailed.Details)
	assert.True(t, Is(detailed, ErrValidation))
}
