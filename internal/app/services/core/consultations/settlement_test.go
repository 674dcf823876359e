package consultations

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitCommission(t *testing.T) {
	rate := decimal.RequireFromString("0.20")

	tests := []struct {
		name       string
		cost       int64
		commission string
		income     string
	}{
		{name: "Round cost splits evenly", cost: 100, commission: "20.00", income: "80.00"},
		{name: "Odd cost keeps two decimals", cost: 33, commission: "6.60", income: "26.40"},
		{name: "Single point", cost: 1, commission: "0.20", income: "0.80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commission, income := SplitCommission(decimal.NewFromInt(tt.cost), rate)
			assert.Equal(t, tt.commission, commission.StringFixed(2))
			assert.Equal(t, tt.income, income.StringFixed(2))
			assert.True(t, commission.Add(income).Equal(decimal.NewFromInt(tt.cost)), "commission and income must add up to the cost")
		})
	}

	t.Run("Commission is truncated, never rounded up", func(t *testing.T) {
		commission, income := SplitCommission(decimal.NewFromInt(7), decimal.RequireFromString("0.333"))
		assert.Equal(t, "2.33", commission.StringFixed(2))
		assert.Equal(t, "4.67", income.StringFixed(2))
	})

	t.Run("Zero rate pays the doctor everything", func(t *testing.T) {
		commission, income := SplitCommission(decimal.NewFromInt(50), decimal.Zero)
		assert.True(t, commission.IsZero())
		assert.True(t, income.Equal(decimal.NewFromInt(50)))
	})
}
