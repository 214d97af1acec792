package repository

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"indoor-map/internal/converter/models"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "maps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := New(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func Test_Repository(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Ping(ctx))

	first := &models.MapDocument{ID: "a", Name: "office.xml", Floors: 2, Walls: 14}
	second := &models.MapDocument{ID: "b", Name: "lab.xml", Floors: 1, Walls: 3}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.NotEmpty(t, first.CreatedAt)

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, first, got)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		docs, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b", docs[0].ID)
		assert.Equal(t, "a", docs[1].ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		assert.Error(t, repo.Create(ctx, &models.MapDocument{ID: "a", Name: "again"}))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "a"))
		assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrNotFound)

		docs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})
}

func Test_Repository_Init_Is_Idempotent(t *testing.T) {
	repo := newRepo(t)
	assert.NoError(t, repo.Init(context.Background()))
}

func Test_Repository_Empty_List(t *testing.T) {
	docs, err := newRepo(t).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}
