package exceptions

import (
	"errors"
	"fmt"
	"telemed-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("Matches a coded error through wrapping", func(t *testing.T) {
		err := fmt.Errorf("booking: %w", ErrInsufficientFunds("patient-1", "10", "150"))
		assert.True(t, HasCode(err, CodeInsufficientFunds))
		assert.False(t, HasCode(err, CodeSlotUnavailable))
	})

	t.Run("Plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeNotFound))
		assert.False(t, HasCode(nil, CodeNotFound))
	})
}

func TestBuildNewCustomError(t *testing.T) {
	t.Run("Keeps the deepest classification", func(t *testing.T) {
		inner := ErrSlotNotFound("slot-1")
		outer := BuildNewCustomError(inner, constvars.StatusInternalServerError, "outer", "outer")

		assert.Same(t, inner, outer)
		assert.Equal(t, constvars.StatusNotFound, outer.StatusCode)
		assert.Len(t, outer.Locations, 2)
	})

	t.Run("Wraps plain errors", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := ErrPostgresDBFindData(cause)

		require.ErrorIs(t, err, cause)
		assert.Equal(t, constvars.StatusInternalServerError, err.StatusCode)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
