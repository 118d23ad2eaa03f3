package thankyou

import (
	"context"

	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/thankyou"
)

// UserThankable resolves people through the directory
type UserThankable struct {
	dir directory.Directory
}

// NewUserThankable creates the handler for OwnerClassUser
func NewUserThankable(dir directory.Directory) *UserThankable {
	return &UserThankable{dir: dir}
}

func (h *UserThankable) OwnerClass() thankyou.OwnerClass { return thankyou.OwnerClassUser }

func (h *UserThankable) Name() string { return "User" }

func (h *UserThankable) Resolve(ctx context.Context, ids []int64) (map[int64]thankyou.Thankable, error) {
	users, err := h.dir.UsersByIDs(ctx, directory.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	out := make(map[int64]thankyou.Thankable, len(users))
	for id, u := range users {
		out[id] = thankyou.Thankable{
			OwnerClass: thankyou.OwnerClassUser,
			ID:         id,
			Name:       u.Name,
			ProfileURL: u.ProfileURL,
			ImageURL:   u.PhotoURL,
		}
	}
	return out, nil
}

// Recipients returns the ids of the users that exist
func (h *UserThankable) Recipients(ctx context.Context, ids []int64) ([]int64, error) {
	ids = directory.UniqueIDs(ids)
	users, err := h.dir.UsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]int64, 0, len(users))
	for _, id := range ids {
		if _, ok := users[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// GroupThankable resolves groups; thanking a group thanks its members
type GroupThankable struct {
	dir directory.Directory
}

// NewGroupThankable creates the handler for OwnerClassGroup
func NewGroupThankable(dir directory.Directory) *GroupThankable {
	return &GroupThankable{dir: dir}
}

func (h *GroupThankable) OwnerClass() thankyou.OwnerClass { return thankyou.OwnerClassGroup }

func (h *GroupThankable) Name() string { return "Group" }

func (h *GroupThankable) Resolve(ctx context.Context, ids []int64) (map[int64]thankyou.Thankable, error) {
	groups, err := h.dir.GroupsByIDs(ctx, directory.UniqueIDs(ids))
	if err != nil {
		return nil, err
	}

	out := make(map[int64]thankyou.Thankable, len(groups))
	for id, g := range groups {
		out[id] = thankyou.Thankable{
			OwnerClass:     thankyou.OwnerClassGroup,
			ID:             id,
			Name:           g.Name,
			ExtranetAreaID: g.ExtranetAreaID,
		}
	}
	return out, nil
}

// Recipients returns the members of the groups in group order
func (h *GroupThankable) Recipients(ctx context.Context, ids []int64) ([]int64, error) {
	ids = directory.UniqueIDs(ids)
	members, err := h.dir.GroupMembers(ctx, ids)
	if err != nil {
		return nil, err
	}

	var out []int64
	for _, id := range ids {
		out = append(out, members[id]...)
	}
	return directory.UniqueIDs(out), nil
}

var (
	_ thankyou.ThankableHandler = (*UserThankable)(nil)
	_ thankyou.ThankableHandler = (*GroupThankable)(nil)
)
