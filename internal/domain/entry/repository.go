package entry

import (
	"context"
)

// Repository defines work-order persistence operations. Upsert is a single
// atomic replace-if-exists keyed on ID; Delete of a missing ID is a no-op.
type Repository interface {
	Upsert(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error

	// ListAll returns every entry ordered by date descending, with the
	// photo and parts sub-lists decoded.
	ListAll(ctx context.Context) ([]*Entry, error)

	// ListByDateRange returns entries whose canonical date falls within
	// [from, to] inclusive, with sub-lists decoded.
	ListByDateRange(ctx context.Context, from, to string) ([]*Entry, error)
}
