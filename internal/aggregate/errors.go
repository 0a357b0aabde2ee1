package aggregate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientSources is matched by errors.Is for any
// *InsufficientSourcesError.
var ErrInsufficientSources = errors.New("at least two source tables are required")

// InsufficientSourcesError reports a merge called with fewer than two tables.
// A single table is not a merge and is rejected rather than passed through.
type InsufficientSourcesError struct {
	Category string
	Got      int
}

func (e *InsufficientSourcesError) Error() string {
	return fmt.Sprintf("%s: %d source table(s) supplied: %v", e.Category, e.Got, ErrInsufficientSources)
}

// Is makes errors.Is(err, ErrInsufficientSources) succeed.
func (e *InsufficientSourcesError) Is(target error) bool { return target == ErrInsufficientSources }

// MissingKeyError reports two tables that share no identity column, so no
// player in one could be matched to a player in the other.
type MissingKeyError struct {
	Category string
	// Source is the position of the table that could not be joined.
	Source int
	Table  string
	// Have lists the identity columns the accumulated result carries, Want
	// those of the incoming table.
	Have []string
	Want []string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: source %d (%s) shares no identity column with the merged result (have [%s], table has [%s])",
		e.Category, e.Source, e.Table, strings.Join(e.Have, ","), strings.Join(e.Want, ","))
}
