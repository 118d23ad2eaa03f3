package thankyou

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"
	"github.com/thankyou/backend/internal/domain/directory"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
)

// MockThankYouRepository is a mock implementation of ThankYouRepository
type MockThankYouRepository struct {
	mock.Mock
}

func (m *MockThankYouRepository) FindByID(ctx context.Context, id int64) (*thankyou.ThankYou, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*thankyou.ThankYou), args.Error(1)
}

func (m *MockThankYouRepository) FindRecent(ctx context.Context, filter thankyou.ListFilter) ([]*thankyou.ThankYou, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*thankyou.ThankYou), args.Error(1)
}

func (m *MockThankYouRepository) FindForUser(ctx context.Context, userID int64, page shared.Page) ([]*thankyou.ThankYou, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*thankyou.ThankYou), args.Error(1)
}

func (m *MockThankYouRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockThankYouRepository) Save(ctx context.Context, t *thankyou.ThankYou) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockThankYouRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTagLookup is a mock implementation of TagLookup
type MockTagLookup struct {
	mock.Mock
}

func (m *MockTagLookup) FindByIDs(ctx context.Context, ids []int64) (map[int64]*tag.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]*tag.Tag), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeDirectory is an in-memory directory
type fakeDirectory struct {
	users   map[int64]directory.User
	groups  map[int64]directory.Group
	members map[int64][]int64
	err     error
	calls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		users: map[int64]directory.User{
			1:  {ID: 1, Name: "Ada Author"},
			2:  {ID: 2, Name: "Grace Admin", IsAdmin: true},
			42: {ID: 42, Name: "Bob", ProfileURL: "/people/42", PhotoURL: "/img/42.png"},
			43: {ID: 43, Name: "Cy"},
		},
		groups: map[int64]directory.Group{
			7: {ID: 7, Name: "Platform"},
		},
		members: map[int64][]int64{
			7: {43, 42},
		},
	}
}

func (d *fakeDirectory) UsersByIDs(_ context.Context, ids []int64) (map[int64]directory.User, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[int64]directory.User)
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (d *fakeDirectory) GroupsByIDs(_ context.Context, ids []int64) (map[int64]directory.Group, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[int64]directory.Group)
	for _, id := range ids {
		if g, ok := d.groups[id]; ok {
			out[id] = g
		}
	}
	return out, nil
}

func (d *fakeDirectory) GroupMembers(_ context.Context, ids []int64) (map[int64][]int64, error) {
	if d.err != nil {
		return nil, d.err
	}
	out := make(map[int64][]int64)
	for _, id := range ids {
		if m, ok := d.members[id]; ok {
			out[id] = m
		}
	}
	return out, nil
}

func (d *fakeDirectory) HasAdminCapability(_ context.Context, userID int64) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.users[userID].IsAdmin, nil
}

// fakeSettings returns fixed option values
type fakeSettings struct {
	values setting.Values
	err    error
}

func (f *fakeSettings) Values(context.Context) (setting.Values, error) {
	return f.values, f.err
}

var errStorage = errors.New("connection refused")

func newTestResolver(dir directory.Directory) *Resolver {
	r, err := NewResolver(NewUserThankable(dir), NewGroupThankable(dir))
	if err != nil {
		panic(err)
	}
	return r
}
