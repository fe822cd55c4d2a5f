package repository

import "errors"

// Repository errors define common error conditions across all repositories.
var (
	// ErrMaterialNotFound is returned when a material cannot be found by name.
	ErrMaterialNotFound = errors.New("material not found")

	// ErrInvalidInput is returned when repository receives invalid input.
	ErrInvalidInput = errors.New("invalid input provided")
)

// IsNotFoundError checks if the error is a not found error.
//
// Parameters:
//   - err: error to check
//
// Returns:
//   - bool: true if the error indicates a resource was not found
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrMaterialNotFound)
}
