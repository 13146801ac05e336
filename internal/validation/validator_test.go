package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/reiverr/reiverr-server/internal/errors"
	"github.com/reiverr/reiverr-server/internal/validation"
)

type geometryRequest struct {
	TopHeight      float64 `json:"top_height" validate:"gte=0"`
	ViewportHeight float64 `json:"viewport_height" validate:"gte=0,lte=100000"`
	Mode           string  `json:"mode" validate:"required,oneof=modal full"`
	Internal       string  `json:"-"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(geometryRequest{TopHeight: 500, ViewportHeight: 900, Mode: "full"})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       geometryRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "negative height",
			req:       geometryRequest{TopHeight: -1, Mode: "modal"},
			wantField: "top_height",
			wantMsg:   "must be greater than or equal to 0",
		},
		{
			name:      "unknown mode",
			req:       geometryRequest{Mode: "fullscreen"},
			wantField: "mode",
			wantMsg:   "must be one of: modal, full",
		},
		{
			name:      "missing mode",
			req:       geometryRequest{},
			wantField: "mode",
			wantMsg:   "is required",
		},
		{
			name:      "viewport too large",
			req:       geometryRequest{ViewportHeight: 200000, Mode: "full"},
			wantField: "viewport_height",
			wantMsg:   "must be less than or equal to 100000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_NonStructInput(t *testing.T) {
	v := validation.New()

	err := v.Validate("not a struct")
	require.Error(t, err)
	assert.False(t, domainerrors.Is(err, domainerrors.ErrValidation))
}
