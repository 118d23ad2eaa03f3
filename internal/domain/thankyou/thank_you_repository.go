package thankyou

import (
	"context"

	"github.com/thankyou/backend/internal/domain/shared"
)

// ListFilter narrows the recent thank-you listing
type ListFilter struct {
	shared.Page
	// WithThanked loads thanked references; otherwise Thanked() is nil
	WithThanked bool
}

// ThankYouRepository defines the interface for thank-you persistence.
// Loaded thank yous carry thanked references, recipient ids, and tags;
// display details are resolved by the caller.
type ThankYouRepository interface {
	// FindByID returns shared.ErrNotFound when absent
	FindByID(ctx context.Context, id int64) (*ThankYou, error)

	// FindRecent returns thank yous newest first
	FindRecent(ctx context.Context, filter ListFilter) ([]*ThankYou, error)

	// FindForUser returns thank yous the user received, newest first
	FindForUser(ctx context.Context, userID int64, page shared.Page) ([]*ThankYou, error)

	// CountForUser returns how many thank yous the user received
	CountForUser(ctx context.Context, userID int64) (int64, error)

	// Save inserts or updates the thank you with its thanked references,
	// recipients and tags in a single transaction, assigning the ID on insert.
	Save(ctx context.Context, t *ThankYou) error

	// Delete removes the thank you; shared.ErrNotFound when absent
	Delete(ctx context.Context, id int64) error
}
