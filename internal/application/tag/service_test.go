package tag

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/application/payload"
	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"go.uber.org/zap"
)

// memTagRepository is an in-memory TagRepository
type memTagRepository struct {
	mu     sync.Mutex
	tags   map[int64]*tag.Tag
	nextID int64
	err    error
}

func newMemTagRepository() *memTagRepository {
	return &memTagRepository{tags: make(map[int64]*tag.Tag), nextID: 1}
}

func (r *memTagRepository) FindByID(_ context.Context, id int64) (*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tags[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (r *memTagRepository) FindByIDs(_ context.Context, ids []int64) (map[int64]*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int64]*tag.Tag)
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (r *memTagRepository) FindAll(_ context.Context, f tag.Filter) ([]*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []*tag.Tag
	for id := int64(1); id < r.nextID; id++ {
		t, ok := r.tags[id]
		if !ok {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *memTagRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tags)), r.err
}

func (r *memTagRepository) ExistsByName(_ context.Context, name string, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	for id, t := range r.tags {
		if id != excludeID && t.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memTagRepository) Create(_ context.Context, t *tag.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	t.ID = r.nextID
	r.nextID++
	c := *t
	r.tags[t.ID] = &c
	return nil
}

func (r *memTagRepository) Update(_ context.Context, t *tag.Tag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	c := *t
	r.tags[t.ID] = &c
	return nil
}

type stubDirectory struct {
	users map[int64]directory.User
}

func (d stubDirectory) UsersByIDs(_ context.Context, ids []int64) (map[int64]directory.User, error) {
	out := make(map[int64]directory.User)
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d stubDirectory) GroupsByIDs(context.Context, []int64) (map[int64]directory.Group, error) {
	return map[int64]directory.Group{}, nil
}

func (d stubDirectory) GroupMembers(context.Context, []int64) (map[int64][]int64, error) {
	return map[int64][]int64{}, nil
}

func (d stubDirectory) HasAdminCapability(_ context.Context, userID int64) (bool, error) {
	return d.users[userID].IsAdmin, nil
}

var (
	created  = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	modified = time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
)

func newTestService(t *testing.T) (*TagService, *memTagRepository) {
	t.Helper()
	repo := newMemTagRepository()
	dir := stubDirectory{users: map[int64]directory.User{
		1: {ID: 1, Name: "Ada"},
		2: {ID: 2, Name: "Grace"},
	}}
	svc := NewTagService(repo, dir, zap.NewNop(), Config{NameMaxLength: 10, MaxLimit: 100})
	svc.SetClock(func() time.Time { return created })
	return svc, repo
}

func TestTagService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates active tag with names", func(t *testing.T) {
		svc, repo := newTestService(t)

		resp, violations, err := svc.Create(ctx, 1, payload.Payload{"name": "  Kindness ", "bg_colour": "#ff0"})
		require.NoError(t, err)
		require.Empty(t, violations)

		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Kindness", resp.Name)
		assert.True(t, resp.Active)
		require.NotNil(t, resp.CreatedBy)
		assert.Equal(t, "Ada", *resp.CreatedBy)
		require.NotNil(t, resp.BgColour)
		assert.Equal(t, "#ff0", *resp.BgColour)
		assert.Equal(t, created, resp.CreatedDate)

		stored, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Kindness", stored.Name)
	})

	t.Run("missing name", func(t *testing.T) {
		svc, repo := newTestService(t)

		resp, violations, err := svc.Create(ctx, 1, payload.Payload{})
		require.NoError(t, err)
		assert.Nil(t, resp)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeNameUndefined, violations[0].Code)
		assert.Empty(t, repo.tags)
	})

	t.Run("null name counts as missing", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, violations, err := svc.Create(ctx, 1, payload.Payload{"name": nil})
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeNameUndefined, violations[0].Code)
	})

	t.Run("name rules", func(t *testing.T) {
		cases := []struct {
			name string
			in   any
			code string
		}{
			{"not a string", 12, CodeNameInvalid},
			{"blank", "   ", CodeNameEmpty},
			{"too long", "abcdefghijk", CodeNameTooLong},
			{"control character", "bad\x07", CodeNameCharset},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc, _ := newTestService(t)
				_, violations, err := svc.Create(ctx, 1, payload.Payload{"name": tc.in})
				require.NoError(t, err)
				require.Len(t, violations, 1)
				assert.Equal(t, FieldName, violations[0].Name)
				assert.Equal(t, tc.code, violations[0].Code)
			})
		}
	})

	t.Run("bg_colour must be a string", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, violations, err := svc.Create(ctx, 1, payload.Payload{"name": "x", "bg_colour": true})
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, FieldBgColour, violations[0].Name)
	})

	t.Run("duplicate name", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, _, err := svc.Create(ctx, 1, payload.Payload{"name": "Team"})
		require.NoError(t, err)

		resp, violations, err := svc.Create(ctx, 2, payload.Payload{"name": " Team "})
		assert.Nil(t, resp)
		assert.Empty(t, violations)
		assert.ErrorIs(t, err, tag.ErrDuplicateName)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestService(t)
		repo.err = shared.NewRepositoryError("create", errors.New("disk full"))

		_, _, err := svc.Create(ctx, 1, payload.Payload{"name": "x"})
		assert.ErrorIs(t, err, shared.ErrRepository)
	})
}

func TestTagService_Update(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*TagService, *memTagRepository) {
		svc, repo := newTestService(t)
		_, _, err := svc.Create(ctx, 1, payload.Payload{"name": "Team", "bg_colour": "#000"})
		require.NoError(t, err)
		_, _, err = svc.Create(ctx, 1, payload.Payload{"name": "Care"})
		require.NoError(t, err)
		svc.SetClock(func() time.Time { return modified })
		return svc, repo
	}

	t.Run("stamps modifier on every update", func(t *testing.T) {
		svc, _ := seed(t)

		resp, violations, err := svc.Update(ctx, 2, 1, payload.Payload{"active": false})
		require.NoError(t, err)
		require.Empty(t, violations)
		assert.False(t, resp.Active)
		assert.Equal(t, "Team", resp.Name)
		require.NotNil(t, resp.ModifiedBy)
		assert.Equal(t, "Grace", *resp.ModifiedBy)
		assert.Equal(t, modified, resp.ModifiedDate)
		assert.Equal(t, created, resp.CreatedDate)
	})

	t.Run("non-boolean active is ignored", func(t *testing.T) {
		svc, _ := seed(t)

		resp, violations, err := svc.Update(ctx, 2, 1, payload.Payload{"active": "no"})
		require.NoError(t, err)
		require.Empty(t, violations)
		assert.True(t, resp.Active)
	})

	t.Run("rename", func(t *testing.T) {
		svc, repo := seed(t)

		resp, _, err := svc.Update(ctx, 1, 1, payload.Payload{"name": "Teamwork"})
		require.NoError(t, err)
		assert.Equal(t, "Teamwork", resp.Name)
		assert.Equal(t, "Teamwork", repo.tags[1].Name)
	})

	t.Run("same name is not a clash", func(t *testing.T) {
		svc, _ := seed(t)

		_, violations, err := svc.Update(ctx, 1, 1, payload.Payload{"name": "Team"})
		require.NoError(t, err)
		assert.Empty(t, violations)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		svc, repo := seed(t)

		_, _, err := svc.Update(ctx, 1, 1, payload.Payload{"name": "Care"})
		assert.ErrorIs(t, err, tag.ErrDuplicateName)
		assert.Equal(t, "Team", repo.tags[1].Name)
	})

	t.Run("invalid name leaves tag untouched", func(t *testing.T) {
		svc, repo := seed(t)

		_, violations, err := svc.Update(ctx, 2, 1, payload.Payload{"name": "", "active": false})
		require.NoError(t, err)
		require.Len(t, violations, 1)
		assert.Equal(t, CodeNameEmpty, violations[0].Code)
		assert.True(t, repo.tags[1].Active)
		assert.Equal(t, int64(1), repo.tags[1].ModifiedBy)
	})

	t.Run("null bg_colour clears", func(t *testing.T) {
		svc, _ := seed(t)

		resp, _, err := svc.Update(ctx, 1, 1, payload.Payload{"bg_colour": nil})
		require.NoError(t, err)
		assert.Nil(t, resp.BgColour)
	})

	t.Run("unknown tag", func(t *testing.T) {
		svc, _ := seed(t)

		_, _, err := svc.Update(ctx, 1, 99, payload.Payload{"active": true})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTagService_List(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, name := range []string{"Team", "Care", "Teach"} {
		_, _, err := svc.Create(ctx, 1, payload.Payload{"name": name})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, ListTagsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := svc.List(ctx, ListTagsQuery{Name: "tea"})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Team", filtered[0].Name)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestTagService_UnknownUserHasNullName(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	resp, _, err := svc.Create(ctx, 404, payload.Payload{"name": "Ghost"})
	require.NoError(t, err)
	assert.Nil(t, resp.CreatedBy)
	assert.Nil(t, resp.ModifiedBy)
}

func TestNameViolationCode(t *testing.T) {
	assert.Equal(t, CodeNameNotUnique, NameViolationCode(tag.ErrDuplicateName))
	assert.Equal(t, CodeNameInvalid, NameViolationCode(errors.New("other")))
	assert.Equal(t, CodeNameInvalid, NameViolationCode(tag.ErrInvalidName))
}
