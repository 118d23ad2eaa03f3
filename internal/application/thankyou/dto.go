package thankyou

import (
	"time"

	"github.com/thankyou/backend/internal/domain/thankyou"
)

// ListThankYousQuery holds list parameters
type ListThankYousQuery struct {
	Limit  int
	Offset int
	// Thanked populates the thanked entities of each item
	Thanked bool
}

// UserResponse is a user in API responses
type UserResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ObjectTypeResponse names an owner class
type ObjectTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ThankableResponse is a thanked entity in API responses
type ThankableResponse struct {
	ID             int64               `json:"id"`
	ExtranetAreaID *int64              `json:"extranet_area_id"`
	Name           string              `json:"name"`
	ObjectType     *ObjectTypeResponse `json:"object_type"`
	ProfileURL     string              `json:"profile_url,omitempty"`
	ImageURL       string              `json:"image_url,omitempty"`
}

// TagSummary is a tag attached to a thank you
type TagSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	BgColour *string `json:"bg_colour"`
	Active   bool    `json:"active"`
}

// ThankYouResponse is a thank you in API responses. Thanked is null when
// it was not requested.
type ThankYouResponse struct {
	ID          int64               `json:"id"`
	Author      UserResponse        `json:"author"`
	DateCreated time.Time           `json:"date_created"`
	Description string              `json:"description"`
	Thanked     []ThankableResponse `json:"thanked"`
	Users       []UserResponse      `json:"users"`
	Tags        []TagSummary        `json:"tags"`
	CanEdit     bool                `json:"can_edit"`
	CanDelete   bool                `json:"can_delete"`
}

// CreateResult identifies the created thank you
type CreateResult struct {
	ID int64
	// NotifyErr is set when the thank you was saved but notification failed
	NotifyErr error
}

// classNamer names owner classes for object_type
type classNamer interface {
	ClassName(id thankyou.OwnerClass) (string, bool)
}

// ToThankYouResponse converts a hydrated domain ThankYou to a response
func ToThankYouResponse(t *thankyou.ThankYou, names classNamer, canEdit, canDelete bool) ThankYouResponse {
	resp := ThankYouResponse{
		ID:          t.ID,
		Author:      UserResponse{ID: t.Author().ID, Name: t.Author().Name},
		DateCreated: t.DateCreated(),
		Description: t.Description(),
		Users:       make([]UserResponse, 0, len(t.Users())),
		Tags:        make([]TagSummary, 0, len(t.Tags())),
		CanEdit:     canEdit,
		CanDelete:   canDelete,
	}

	if thanked := t.Thanked(); thanked != nil {
		resp.Thanked = make([]ThankableResponse, 0, len(thanked))
		for _, th := range thanked {
			resp.Thanked = append(resp.Thanked, toThankableResponse(th, names))
		}
	}

	for _, u := range t.Users() {
		resp.Users = append(resp.Users, UserResponse{ID: u.ID, Name: u.Name})
	}
	for _, tg := range t.Tags() {
		resp.Tags = append(resp.Tags, TagSummary{
			ID:       tg.ID,
			Name:     tg.Name,
			BgColour: tg.BackgroundColour,
			Active:   tg.Active,
		})
	}
	return resp
}

func toThankableResponse(th thankyou.Thankable, names classNamer) ThankableResponse {
	resp := ThankableResponse{
		ID:             th.ID,
		ExtranetAreaID: th.ExtranetAreaID,
		Name:           th.DisplayName(),
	}
	if link, ok := th.ProfileLink(); ok {
		resp.ProfileURL = link
	}
	if img, ok := th.Image(); ok {
		resp.ImageURL = img
	}
	if name, ok := names.ClassName(th.OwnerClass); ok {
		resp.ObjectType = &ObjectTypeResponse{ID: int(th.OwnerClass), Name: name}
	}
	return resp
}
