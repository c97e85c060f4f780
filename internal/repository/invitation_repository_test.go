package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
)

func TestInvitationCreateAndFind(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	inv, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusPending, inv.Status)
	require.Equal(t, model.InvitationPairKey("a", "b"), inv.PairKey)

	// 两个方向都能查到同一条 pending
	found, err := repo.FindPending(ctx, "a", "b")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, inv.ID, found.ID)

	found, err = repo.FindPending(ctx, "b", "a")
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, inv.ID, found.ID)

	byID, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)

	missing, err := repo.FindByID(ctx, "no-such-id")
	require.NoError(t, err)
	require.Nil(t, missing)

	nonePending, err := repo.FindPending(ctx, "a", "c")
	require.NoError(t, err)
	require.Nil(t, nonePending)
}

func TestInvitationPendingOrderedPairUnique(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)

	// 同向重复 pending 被存储层拒绝
	_, err = repo.Create(ctx, "a", "b")
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 对向 pending 存储层放行（互邀并发场景，由 reconciliation 收敛）
	_, err = repo.Create(ctx, "b", "a")
	require.NoError(t, err)
}

func TestInvitationStatusCAS(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	inv, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)

	updated, err := repo.UpdateStatusIfPending(ctx, inv.ID, model.InviteStatusDeclined)
	require.NoError(t, err)
	require.True(t, updated)

	// 终态后 CAS 落空
	updated, err = repo.UpdateStatusIfPending(ctx, inv.ID, model.InviteStatusAccepted)
	require.NoError(t, err)
	require.False(t, updated)

	byID, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusDeclined, byID.Status)

	// 了结之后允许重新邀请
	_, err = repo.Create(ctx, "a", "b")
	require.NoError(t, err)
}

func TestInvitationLists(t *testing.T) {
	db := setupRepoTestDB(t)
	repo := NewInvitationRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "a", "c")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "c", "a")
	require.NoError(t, err)

	sent, err := repo.ListByInviter(ctx, "a")
	require.NoError(t, err)
	require.Len(t, sent, 2)

	received, err := repo.ListByInvitee(ctx, "a")
	require.NoError(t, err)
	require.Len(t, received, 1)
	require.Equal(t, "c", received[0].InviterID)
}
