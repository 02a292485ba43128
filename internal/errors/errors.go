// internal/errors/errors.go
package errors

import "fmt"

// ErrInvalidRepoFormat is returned when an entry in the backfill repository
// list cannot be split into 'owner/name'.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("backfill repository %q is not in 'owner/name' form", e.Repo)
}
