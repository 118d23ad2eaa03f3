package thankyou

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/domain/setting"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
	"github.com/thankyou/backend/internal/domain/thankyou"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	repo     *MockThankYouRepository
	tags     *MockTagLookup
	events   *MockEventPublisher
	dir      *fakeDirectory
	settings *fakeSettings
	logs     *observer.ObservedLogs
	service  *ThankYouService
}

func newServiceFixture(adminMode bool) *serviceFixture {
	f := &serviceFixture{
		repo:     new(MockThankYouRepository),
		tags:     new(MockTagLookup),
		events:   new(MockEventPublisher),
		dir:      newFakeDirectory(),
		settings: &fakeSettings{values: setting.Values{}},
	}
	core, logs := observer.New(zapcore.DebugLevel)
	f.logs = logs
	f.service = NewThankYouService(f.repo, f.tags, newTestResolver(f.dir), f.dir, f.settings,
		f.events, zap.New(core), Config{AdminMode: adminMode, MaxLimit: 100})
	f.service.SetClock(func() time.Time { return fixedNow })
	return f
}

func storedThankYou() *thankyou.ThankYou {
	return thankyou.Restore(5, thankyou.UserRef{ID: 1}, "Before", fixedNow, fixedNow, 1,
		[]thankyou.Thankable{{OwnerClass: thankyou.OwnerClassUser, ID: 42}},
		[]thankyou.UserRef{{ID: 42}},
		[]*tag.Tag{{BaseEntity: shared.BaseEntity{ID: 3}, Name: "Teamwork", Active: true}})
}

func TestThankYouService_Create_Success(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()

	var saved *thankyou.ThankYou
	f.repo.On("Save", ctx, mock.AnythingOfType("*thankyou.ThankYou")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*thankyou.ThankYou)
			saved.ID = 77
		}).Return(nil)
	f.events.On("Publish", ctx, mock.Anything).Return(nil)

	result, violations, err := f.service.Create(ctx, 1, mustPayload(t, `{"thanked":[{"oclass":1,"id":42},{"oclass":3,"id":7}],"description":"Great job"}`))

	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, result)
	assert.Equal(t, int64(77), result.ID)
	assert.NoError(t, result.NotifyErr)

	assert.Equal(t, "Ada Author", saved.Author().Name)
	assert.Len(t, saved.Thanked(), 2)
	assert.Equal(t, []int64{42, 43}, saved.UserIDs())
	assert.Equal(t, fixedNow, saved.DateCreated())
	assert.Empty(t, saved.PendingEvents())

	published := f.events.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
	require.Len(t, published, 1)
	assert.Equal(t, thankyou.EventTypeThankYouCreated, published[0].EventType())
	f.repo.AssertExpectations(t)
}

func TestThankYouService_Create_ViolationsDoNotWrite(t *testing.T) {
	f := newServiceFixture(false)

	result, violations, err := f.service.Create(context.Background(), 1, mustPayload(t, `{"thanked":[],"description":""}`))

	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Len(t, violations, 2)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestThankYouService_Create_WithTags(t *testing.T) {
	f := newServiceFixture(false)
	f.settings.values = setting.Values{setting.KeyTagsEnabled: true}
	ctx := context.Background()

	teamwork := &tag.Tag{BaseEntity: shared.BaseEntity{ID: 3}, Name: "Teamwork"}
	f.tags.On("FindByIDs", ctx, []int64{3}).Return(map[int64]*tag.Tag{3: teamwork}, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.events.On("Publish", ctx, mock.Anything).Return(nil)

	_, violations, err := f.service.Create(ctx, 1, mustPayload(t, `{"thanked":[{"oclass":1,"id":42}],"description":"ok","tags":[3]}`))
	require.NoError(t, err)
	assert.Empty(t, violations)

	saved := f.repo.Calls[0].Arguments.Get(1).(*thankyou.ThankYou)
	assert.Equal(t, []int64{3}, saved.TagIDs())
}

func TestThankYouService_Create_RepositoryError(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()

	f.repo.On("Save", ctx, mock.Anything).Return(shared.NewRepositoryError("save thank you", errStorage))

	result, _, err := f.service.Create(ctx, 1, mustPayload(t, `{"thanked":[{"oclass":1,"id":42}],"description":"ok"}`))

	assert.Nil(t, result)
	assert.ErrorIs(t, err, shared.ErrRepository)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestThankYouService_Create_NotificationFailureStillSucceeds(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()

	f.repo.On("Save", ctx, mock.Anything).Return(nil)
	f.events.On("Publish", ctx, mock.Anything).Return(errStorage)

	result, violations, err := f.service.Create(ctx, 1, mustPayload(t, `{"thanked":[{"oclass":1,"id":42}],"description":"ok"}`))

	require.NoError(t, err)
	assert.Empty(t, violations)
	require.NotNil(t, result)
	assert.ErrorIs(t, result.NotifyErr, errStorage)
	assert.Zero(t, f.logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestThankYouService_Update_DescriptionOnly(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()
	stored := storedThankYou()

	f.repo.On("FindByID", ctx, int64(5)).Return(stored, nil)
	f.repo.On("Save", ctx, stored).Return(nil)
	f.events.On("Publish", ctx, mock.Anything).Return(nil)

	violations, err := f.service.Update(ctx, 1, 5, mustPayload(t, `{"description":"x"}`))
	require.NoError(t, err)
	assert.Empty(t, violations)

	assert.Equal(t, "x", stored.Description())
	assert.Equal(t, []thankyou.Reference{{OwnerClass: thankyou.OwnerClassUser, ID: 42}}, stored.References())
	assert.Equal(t, []int64{42}, stored.UserIDs())
	assert.Equal(t, []int64{3}, stored.TagIDs())
	assert.Equal(t, 2, stored.Version)

	violations, err = f.service.Update(ctx, 1, 5, mustPayload(t, `{"description":"x"}`))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestThankYouService_Update_ThankedRecomputesRecipients(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()
	stored := storedThankYou()

	f.repo.On("FindByID", ctx, int64(5)).Return(stored, nil)
	f.repo.On("Save", ctx, stored).Return(nil)
	f.events.On("Publish", ctx, mock.Anything).Return(nil)

	_, err := f.service.Update(ctx, 1, 5, mustPayload(t, `{"thanked":[{"oclass":3,"id":7}]}`))
	require.NoError(t, err)

	assert.Equal(t, []int64{43, 42}, stored.UserIDs())
	assert.Equal(t, "Before", stored.Description())
}

func TestThankYouService_Update_ValidationBeforeLoad(t *testing.T) {
	f := newServiceFixture(false)

	violations, err := f.service.Update(context.Background(), 1, 5, mustPayload(t, `{"description":""}`))

	require.NoError(t, err)
	assert.Equal(t, []string{CodeDescriptionEmpty}, codes(violations))
	f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestThankYouService_Update_Forbidden(t *testing.T) {
	ctx := context.Background()

	t.Run("non-author is rejected", func(t *testing.T) {
		f := newServiceFixture(true)
		f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)

		_, err := f.service.Update(ctx, 42, 5, mustPayload(t, `{"description":"x"}`))
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admin needs admin mode", func(t *testing.T) {
		f := newServiceFixture(false)
		f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)

		_, err := f.service.Update(ctx, 2, 5, mustPayload(t, `{"description":"x"}`))
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin in admin mode may edit", func(t *testing.T) {
		f := newServiceFixture(true)
		f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)
		f.repo.On("Save", ctx, mock.Anything).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := f.service.Update(ctx, 2, 5, mustPayload(t, `{"description":"x"}`))
		assert.NoError(t, err)
	})
}

func TestThankYouService_Update_NotFound(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()
	f.repo.On("FindByID", ctx, int64(9)).Return(nil, shared.ErrNotFound)

	_, err := f.service.Update(ctx, 1, 9, mustPayload(t, `{"description":"x"}`))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestThankYouService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes", func(t *testing.T) {
		f := newServiceFixture(false)
		f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)
		f.repo.On("Delete", ctx, int64(5)).Return(nil)
		f.events.On("Publish", ctx, mock.Anything).Return(nil)

		require.NoError(t, f.service.Delete(ctx, 1, 5))
		f.repo.AssertExpectations(t)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newServiceFixture(false)
		f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)

		assert.ErrorIs(t, f.service.Delete(ctx, 43, 5), shared.ErrForbidden)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		f := newServiceFixture(false)
		f.repo.On("FindByID", ctx, int64(5)).Return(nil, shared.ErrNotFound)

		assert.ErrorIs(t, f.service.Delete(ctx, 1, 5), shared.ErrNotFound)
	})
}

func TestThankYouService_GetByID(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()
	f.repo.On("FindByID", ctx, int64(5)).Return(storedThankYou(), nil)

	resp, err := f.service.GetByID(ctx, 1, 5)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, UserResponse{ID: 1, Name: "Ada Author"}, resp.Author)
	assert.Equal(t, "Before", resp.Description)
	require.Len(t, resp.Thanked, 1)
	assert.Equal(t, "Bob", resp.Thanked[0].Name)
	require.NotNil(t, resp.Thanked[0].ObjectType)
	assert.Equal(t, ObjectTypeResponse{ID: 1, Name: "User"}, *resp.Thanked[0].ObjectType)
	assert.Equal(t, []UserResponse{{ID: 42, Name: "Bob"}}, resp.Users)
	assert.Equal(t, "Teamwork", resp.Tags[0].Name)
	assert.True(t, resp.CanEdit)
	assert.True(t, resp.CanDelete)
}

func TestThankYouService_List(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()

	withoutThanked := thankyou.Restore(6, thankyou.UserRef{ID: 2}, "Hi", fixedNow, fixedNow, 1,
		nil, []thankyou.UserRef{{ID: 43}}, nil)
	f.repo.On("FindRecent", ctx, thankyou.ListFilter{Page: shared.Page{Limit: 100, Offset: 0}}).
		Return([]*thankyou.ThankYou{withoutThanked}, nil)

	items, err := f.service.List(ctx, 1, ListThankYousQuery{Limit: 500})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Nil(t, items[0].Thanked)
	assert.Equal(t, "Grace Admin", items[0].Author.Name)
	assert.Equal(t, "Cy", items[0].Users[0].Name)
	assert.False(t, items[0].CanEdit)
}

func TestThankYouService_CountForUser(t *testing.T) {
	f := newServiceFixture(false)
	ctx := context.Background()
	f.repo.On("CountForUser", ctx, int64(42)).Return(int64(3), nil)

	n, err := f.service.CountForUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
