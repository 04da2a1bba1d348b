package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsufficientStockErrorMatching(t *testing.T) {
	err := fmt.Errorf("approve: %w", &InsufficientStockError{Available: 4, Requested: 6})

	assert.ErrorIs(t, err, ErrInsufficientStock)

	var stockErr *InsufficientStockError
	assert.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 4, stockErr.Available)
	assert.Contains(t, err.Error(), "available 4")
}

func TestIsStorageDown(t *testing.T) {
	assert.False(t, IsStorageDown(nil))
	assert.False(t, IsStorageDown(errors.New("record not found")))
	assert.True(t, IsStorageDown(ErrStorageDown))
	assert.True(t, IsStorageDown(errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")))
	assert.True(t, IsStorageDown(errors.New("driver: bad connection")))
}
