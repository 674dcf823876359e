package utils

import (
	"telemed-service/internal/pkg/dto/requests"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_PositiveDecimal(t *testing.T) {
	t.Run("Positive amounts pass", func(t *testing.T) {
		err := ValidateStruct(&requests.TopUpWallet{UserID: "patient-1", Amount: decimal.RequireFromString("0.01")})
		assert.NoError(t, err)
	})

	t.Run("Zero and negative amounts fail", func(t *testing.T) {
		assert.Error(t, ValidateStruct(&requests.TopUpWallet{UserID: "patient-1", Amount: decimal.Zero}))
		assert.Error(t, ValidateStruct(&requests.TopUpWallet{UserID: "patient-1", Amount: decimal.NewFromInt(-5)}))
	})
}
