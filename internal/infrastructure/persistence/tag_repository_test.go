package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thankyou/backend/internal/domain/shared"
	"github.com/thankyou/backend/internal/domain/tag"
)

func newTestTag(t *testing.T, name string) *tag.Tag {
	t.Helper()
	tg, err := tag.NewTag(name, 1, 0, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return tg
}

func TestGormTagRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	colour := "#ff0000"
	tg := newTestTag(t, "Teamwork")
	tg.SetBackgroundColour(&colour)
	require.NoError(t, repo.Create(ctx, tg))
	require.NotZero(t, tg.ID)

	found, err := repo.FindByID(ctx, tg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teamwork", found.Name)
	assert.True(t, found.Active)
	require.NotNil(t, found.BackgroundColour)
	assert.Equal(t, "#ff0000", *found.BackgroundColour)
	assert.Equal(t, int64(1), found.CreatedBy)

	_, err = repo.FindByID(ctx, tg.ID+100)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTagRepository_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestTag(t, "Courage")))

	err := repo.Create(ctx, newTestTag(t, "Courage"))
	assert.ErrorIs(t, err, tag.ErrDuplicateName)

	other := newTestTag(t, "Kindness")
	require.NoError(t, repo.Create(ctx, other))
	other.Name = "Courage"
	assert.ErrorIs(t, repo.Update(ctx, other), tag.ErrDuplicateName)
}

func TestGormTagRepository_ConcurrentCreateKeepsNamesUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tg, err := tag.NewTag("Ownership", int64(i+1), 0, time.Now())
			if err != nil {
				errs[i] = err
				return
			}
			errs[i] = repo.Create(ctx, tg)
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, tag.ErrDuplicateName)
	}
	assert.Equal(t, 1, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormTagRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Zeal", "teamwork", "Team spirit", "Courage"} {
		require.NoError(t, repo.Create(ctx, newTestTag(t, name)))
	}

	t.Run("orders by name by default", func(t *testing.T) {
		tags, err := repo.FindAll(ctx, tag.Filter{})
		require.NoError(t, err)
		require.Len(t, tags, 4)
		assert.Equal(t, "Courage", tags[0].Name)
	})

	t.Run("filters by case-insensitive substring", func(t *testing.T) {
		tags, err := repo.FindAll(ctx, tag.Filter{Name: "TEAM"})
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("pages results", func(t *testing.T) {
		tags, err := repo.FindAll(ctx, tag.Filter{Page: shared.Page{Limit: 2, Offset: 1}})
		require.NoError(t, err)
		assert.Len(t, tags, 2)
	})

	t.Run("ignores unknown sort columns", func(t *testing.T) {
		tags, err := repo.FindAll(ctx, tag.Filter{OrderBy: "name; DROP TABLE tags", OrderDir: "desc"})
		require.NoError(t, err)
		require.Len(t, tags, 4)
		assert.Equal(t, "Courage", tags[3].Name)
	})
}

func TestGormTagRepository_FindAllNameIsLiteral(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	for _, name := range []string{"100% effort", "1000 effort", "on_call", "oncall", `back\slash`} {
		require.NoError(t, repo.Create(ctx, newTestTag(t, name)))
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"%", []string{"100% effort"}},
		{"0% e", []string{"100% effort"}},
		{"_", []string{"on_call"}},
		{"n_c", []string{"on_call"}},
		{`\`, []string{`back\slash`}},
		{"effort", []string{"100% effort", "1000 effort"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			tags, err := repo.FindAll(ctx, tag.Filter{Name: tt.query})
			require.NoError(t, err)
			names := make([]string, len(tags))
			for i, tg := range tags {
				names[i] = tg.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestGormTagRepository_ExistsByNameAndFindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	tg := newTestTag(t, "Focus")
	require.NoError(t, repo.Create(ctx, tg))

	exists, err := repo.ExistsByName(ctx, "Focus", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "Focus", tg.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	found, err := repo.FindByIDs(ctx, []int64{tg.ID, 999})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, tg.ID)
}

func TestGormTagRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormTagRepository(db)
	ctx := context.Background()

	colour := "blue"
	tg := newTestTag(t, "Care")
	tg.SetBackgroundColour(&colour)
	require.NoError(t, repo.Create(ctx, tg))

	tg.SetActive(false)
	tg.SetBackgroundColour(nil)
	tg.Touch(7, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Update(ctx, tg))

	found, err := repo.FindByID(ctx, tg.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)
	assert.Nil(t, found.BackgroundColour)
	assert.Equal(t, int64(7), found.ModifiedBy)

	missing := newTestTag(t, "Ghost")
	missing.ID = 404
	assert.ErrorIs(t, repo.Update(ctx, missing), shared.ErrNotFound)
}

func TestGormTagRepository_StorageFailure(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormTagRepository(db.DB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "tags"`).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Count(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrRepository)
	assert.Contains(t, err.Error(), "count tags")
	assert.NoError(t, mock.ExpectationsWereMet())
}
