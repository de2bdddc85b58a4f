package cell

import "fmt"

var (
	// ErrNotFound is returned when a cell for the given session / id pair
	// does not exist in the underlying store.
	ErrNotFound = fmt.Errorf("cell not found")
)
