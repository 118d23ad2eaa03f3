package tag

import (
	"time"

	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/tag"
)

// ListTagsQuery holds list parameters
type ListTagsQuery struct {
	Limit  int
	Offset int
	Name   string
}

// TagResponse represents a tag in API responses. CreatedBy and ModifiedBy
// are display names, null when the user is unknown.
type TagResponse struct {
	ID           int64     `json:"id"`
	Active       bool      `json:"active"`
	Name         string    `json:"name"`
	CreatedBy    *string   `json:"created_by"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedBy   *string   `json:"modified_by"`
	ModifiedDate time.Time `json:"modified_date"`
	BgColour     *string   `json:"bg_colour"`
}

// ToTagResponse converts a domain Tag to a response using users for names
func ToTagResponse(t *tag.Tag, users map[int64]directory.User) TagResponse {
	return TagResponse{
		ID:           t.ID,
		Active:       t.Active,
		Name:         t.Name,
		CreatedBy:    userName(users, t.CreatedBy),
		CreatedDate:  t.CreatedAt,
		ModifiedBy:   userName(users, t.ModifiedBy),
		ModifiedDate: t.ModifiedAt(),
		BgColour:     t.BackgroundColour,
	}
}

func userName(users map[int64]directory.User, id int64) *string {
	u, ok := users[id]
	if !ok {
		return nil
	}
	name := u.Name
	return &name
}
