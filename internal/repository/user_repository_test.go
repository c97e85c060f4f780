package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/socialcore/internal/model"
)

func TestUserExistsAndGet(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "a")

	ok, err := repo.Exists(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Exists(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, ok)

	u, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Equal(t, "a", u.ID)

	u, err = repo.Get(ctx, "ghost")
	require.NoError(t, err)
	require.Nil(t, u)
}

func TestListExcluding(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"u1", "u2", "u3", "u4", "u5"} {
		u := model.User{ID: id, Mobile: "m-" + id, Username: id, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(&u).Error)
	}

	users, total, err := repo.ListExcluding(ctx, []string{"u1", "u3"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	// created_at DESC 稳定排序
	require.Equal(t, []string{"u5", "u4", "u2"}, idsOf(users))

	// 分页切片与总数
	page, total, err := repo.ListExcluding(ctx, []string{"u1"}, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Equal(t, []string{"u4", "u3"}, idsOf(page))
}

func TestListByIDs(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "a")
	seedUser(t, db, "b")

	users, err := repo.ListByIDs(ctx, []string{"a", "b", "ghost"})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, idsOf(users))

	users, err = repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, users)
}

func idsOf(users []*model.User) []string {
	res := make([]string, len(users))
	for i, u := range users {
		res[i] = u.ID
	}
	return res
}
