package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestAddItemRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     AddItemRequest
		wantID  string
		wantErr error
	}{
		{name: "valid", req: AddItemRequest{ProductID: "4"}, wantID: "4"},
		{name: "trimmed", req: AddItemRequest{ProductID: "  12 "}, wantID: "12"},
		{name: "blank", req: AddItemRequest{ProductID: "   "}, wantErr: ErrInvalidProductID},
		{name: "empty", req: AddItemRequest{}, wantErr: ErrInvalidProductID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, tt.req.ProductID)
		})
	}
}

func TestUpdateQuantityRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		delta   *int
		wantErr bool
	}{
		{name: "increment", delta: intPtr(1)},
		{name: "decrement", delta: intPtr(-5)},
		{name: "zero is a no-op", delta: intPtr(0)},
		{name: "upper bound", delta: intPtr(MaxQuantityDelta)},
		{name: "lower bound", delta: intPtr(-MaxQuantityDelta)},
		{name: "missing", delta: nil, wantErr: true},
		{name: "too large", delta: intPtr(MaxQuantityDelta + 1), wantErr: true},
		{name: "too small", delta: intPtr(-MaxQuantityDelta - 1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&UpdateQuantityRequest{Delta: tt.delta}).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDelta)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "product_id: must not be blank", ErrInvalidProductID.Error())
}
