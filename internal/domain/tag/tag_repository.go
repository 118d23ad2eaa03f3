package tag

import (
	"context"

	"github.com/thankyou/backend/internal/domain/shared"
)

// Filter narrows tag listings
type Filter struct {
	shared.Page
	// Name is a case-insensitive substring match; empty matches all
	Name string
	// OrderBy is a column name; empty means name
	OrderBy  string
	OrderDir string
}

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID returns shared.ErrNotFound when the tag does not exist
	FindByID(ctx context.Context, id int64) (*Tag, error)

	// FindByIDs returns the existing tags keyed by ID; missing IDs are absent
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*Tag, error)

	FindAll(ctx context.Context, filter Filter) ([]*Tag, error)

	Count(ctx context.Context) (int64, error)

	// ExistsByName reports whether another tag (ID != excludeID) has name
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)

	// Create inserts the tag and assigns its ID. Returns ErrDuplicateName
	// when the storage uniqueness constraint rejects the name.
	Create(ctx context.Context, tag *Tag) error

	// Update persists every field. Returns ErrDuplicateName on a name clash.
	Update(ctx context.Context, tag *Tag) error
}
