package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	offset, limit := Calculate(2, 6)
	require.Equal(t, 6, offset)
	require.Equal(t, 6, limit)

	offset, limit = Calculate(0, 0)
	require.Equal(t, 0, offset)
	require.Equal(t, DefaultPageSize, limit)

	_, limit = Calculate(1, 1000)
	require.Equal(t, DefaultPageSize, limit)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, int64(2), TotalPages(10, 6))
	require.Equal(t, int64(1), TotalPages(6, 6))
	require.Equal(t, int64(0), TotalPages(0, 6))
	require.Equal(t, int64(0), TotalPages(10, 0))
}
