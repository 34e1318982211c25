package workspace

import (
	"errors"
	"fmt"

	"github.com/nhle/flowstate/internal/metrics"
)

var (
	// ErrNotFound is returned when an id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the acting user's role does not allow
	// the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalid is returned for arguments no operation accepts, such as a
	// blank project name.
	ErrInvalid = errors.New("invalid argument")
)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalid)
}

// result maps an operation error to its metrics label.
func result(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrForbidden):
		return metrics.ResultForbidden
	case errors.Is(err, ErrInvalid):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
