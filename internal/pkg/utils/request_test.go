package utils

import (
	"net/http/httptest"
	"telemed-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaginationRequest(t *testing.T) {
	t.Run("Defaults apply without query params", func(t *testing.T) {
		pagination, err := BuildPaginationRequest(httptest.NewRequest("GET", "/wallet/transactions", nil), 20)

		require.NoError(t, err)
		assert.Equal(t, 20, pagination.Limit)
		assert.Equal(t, 0, pagination.Offset)
	})

	t.Run("Query params override defaults", func(t *testing.T) {
		pagination, err := BuildPaginationRequest(httptest.NewRequest("GET", "/wallet/transactions?limit=5&offset=10", nil), 20)

		require.NoError(t, err)
		assert.Equal(t, 5, pagination.Limit)
		assert.Equal(t, 10, pagination.Offset)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		pagination, err := BuildPaginationRequest(httptest.NewRequest("GET", "/wallet/transactions?limit=100000", nil), 20)

		require.NoError(t, err)
		assert.Equal(t, constvars.MaxListLimit, pagination.Limit)
	})

	t.Run("Invalid values are rejected", func(t *testing.T) {
		_, err := BuildPaginationRequest(httptest.NewRequest("GET", "/wallet/transactions?limit=abc", nil), 20)
		assert.Error(t, err)

		_, err = BuildPaginationRequest(httptest.NewRequest("GET", "/wallet/transactions?offset=-1", nil), 20)
		assert.Error(t, err)
	})
}

func TestParseBoolQueryParam(t *testing.T) {
	value, err := ParseBoolQueryParam(httptest.NewRequest("GET", "/notifications?unread_only=true", nil), "unread_only")
	require.NoError(t, err)
	assert.True(t, value)

	value, err = ParseBoolQueryParam(httptest.NewRequest("GET", "/notifications", nil), "unread_only")
	require.NoError(t, err)
	assert.False(t, value)

	_, err = ParseBoolQueryParam(httptest.NewRequest("GET", "/notifications?unread_only=maybe", nil), "unread_only")
	assert.Error(t, err)
}
