package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy surfaced by the ledger and its collaborators. Controllers
// map these to HTTP statuses with errors.Is / errors.As.
var (
	ErrValidation        = errors.New("validation failed")
	ErrFarmerNotFound    = errors.New("farmer not found")
	ErrFarmerInactive    = errors.New("farmer is inactive")
	ErrFeedNotFound      = errors.New("feed not found")
	ErrRequestNotFound   = errors.New("request not found")
	ErrInvalidTransition = errors.New("request is not pending")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrConflict          = errors.New("concurrent write conflict")
	ErrStorageDown       = errors.New("storage unavailable")
)

// IsStorageDown classifies low-level driver failures where the database
// itself is unreachable. Nothing can be assumed committed in that case.
func IsStorageDown(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStorageDown) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "bad connection") ||
		strings.Contains(msg, "invalid connection") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "i/o timeout")
}

// InsufficientStockError reports the quantity actually available so the
// caller can adjust the request instead of guessing.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d bags, available %d", e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
