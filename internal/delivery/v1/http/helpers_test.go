package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfgForTest = cfg.HTTPConfig{Port: "0"}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "not found keeps message through wrapping",
			err:      e.Wrap("op", e.NewNotFoundError("Product", "7")),
			wantCode: http.StatusNotFound,
			wantMsg:  "Product: 7 not found",
		},
		{
			name:     "validation message is returned as is",
			err:      e.Wrap("op", e.NewValidationError("New price cannot be negative.")),
			wantCode: http.StatusBadRequest,
			wantMsg:  "New price cannot be negative.",
		},
		{
			name:     "invalid id",
			err:      e.Wrap("op", e.ErrInvalidProductID),
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid product id.",
		},
		{
			name:     "invalid body",
			err:      e.ErrInvalidRequestBody,
			wantCode: http.StatusBadRequest,
			wantMsg:  "Invalid request body.",
		},
		{
			name:     "anything else",
			err:      errors.New("pq: relation does not exist"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "90", want: "90.00"},
		{in: "0", want: "0.00"},
		{in: "33.335", want: "33.34"},
		{in: "1234567.8", want: "1234567.80"},
	}

	for _, tt := range tests {
		data, err := Amount(decimal.RequireFromString(tt.in)).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(data))
	}
}
