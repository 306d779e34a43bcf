// Package repositories holds what every repository and store shares.
package repositories

import "errors"

// Store level errors. Stores translate driver errors into these so
// repositories never look at driver types.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
