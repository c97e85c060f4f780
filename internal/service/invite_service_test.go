package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/internal/repository"
)

func newInviteService(t testing.TB, db *gorm.DB) (InviteService, repository.InvitationRepository) {
	t.Helper()
	inviteRepo := repository.NewInvitationRepository(db)
	return NewInviteService(repository.NewUserRepository(db), inviteRepo), inviteRepo
}

func TestSendInvite(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	inv, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusPending, inv.Status)
	require.Equal(t, "a", inv.InviterID)
	require.Equal(t, "b", inv.InviteeID)
}

func TestSendInviteValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	_, err := svc.SendInvite(ctx, "a", "a")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SendInvite(ctx, "a", "ghost")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SendInvite(ctx, "ghost", "b")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSendInviteOutstandingBlocksBothDirections(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	_, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)

	// 同向重发被拒
	_, err = svc.SendInvite(ctx, "a", "b")
	require.ErrorIs(t, err, ErrForbidden)

	// 对向也被未决邀请挡住
	_, err = svc.SendInvite(ctx, "b", "a")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAcceptInvite(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, repo := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	inv, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)

	// 只有被邀请人能接受
	_, err = svc.AcceptInvite(ctx, inv.ID, "a")
	require.ErrorIs(t, err, ErrForbidden)
	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusPending, stored.Status)

	accepted, err := svc.AcceptInvite(ctx, inv.ID, "b")
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusAccepted, accepted.Status)

	// 终态不可再变
	_, err = svc.AcceptInvite(ctx, inv.ID, "b")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.RejectInvite(ctx, inv.ID, "b")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestRejectInvite(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, repo := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	inv, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)

	declined, err := svc.RejectInvite(ctx, inv.ID, "b")
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusDeclined, declined.Status)

	stored, err := repo.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusDeclined, stored.Status)

	// 拒绝之后允许重新邀请
	_, err = svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)
}

func TestResolveUnknownInvite(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	_, err := svc.AcceptInvite(ctx, "no-such-id", "b")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = svc.RejectInvite(ctx, "no-such-id", "b")
	require.ErrorIs(t, err, ErrNotFound)
}

// 互邀并发的遗留状态：两条对向 pending 同时存在
// （绕过 service 预检直接写库模拟竞态窗口）
func TestMutualInviteReconciliationOnAccept(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, repo := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	inv1, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	inv2, err := repo.Create(ctx, "b", "a")
	require.NoError(t, err)

	// a 接受 b 发来的邀请，两条一并 accepted
	resolved, err := svc.AcceptInvite(ctx, inv2.ID, "a")
	require.NoError(t, err)
	require.Equal(t, inv2.ID, resolved.ID)
	require.Equal(t, model.InviteStatusAccepted, resolved.Status)

	stored1, err := repo.FindByID(ctx, inv1.ID)
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusAccepted, stored1.Status)

	none, err := repo.FindPending(ctx, "a", "b")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestMutualInviteReconciliationOnReject(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, repo := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b")

	inv1, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)
	inv2, err := repo.Create(ctx, "b", "a")
	require.NoError(t, err)

	// 拒绝与接受对称：对向 pending 也一并 declined
	_, err = svc.RejectInvite(ctx, inv1.ID, "b")
	require.NoError(t, err)

	stored2, err := repo.FindByID(ctx, inv2.ID)
	require.NoError(t, err)
	require.Equal(t, model.InviteStatusDeclined, stored2.Status)
}

func TestGetUserInvites(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b", "c")

	_, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)
	_, err = svc.SendInvite(ctx, "c", "a")
	require.NoError(t, err)

	sent, received, err := svc.GetUserInvites(ctx, "a")
	require.NoError(t, err)
	require.Len(t, sent, 1)
	require.Equal(t, "b", sent[0].InviteeID)
	require.Len(t, received, 1)
	require.Equal(t, "c", received[0].InviterID)
}

func TestGetAcceptedConnections(t *testing.T) {
	db := setupServiceTestDB(t)
	svc, _ := newInviteService(t, db)
	ctx := context.Background()

	seedUsers(t, db, "a", "b", "c", "d")

	// a→b 接受，c→a 接受，a→d 拒绝
	invAB, err := svc.SendInvite(ctx, "a", "b")
	require.NoError(t, err)
	_, err = svc.AcceptInvite(ctx, invAB.ID, "b")
	require.NoError(t, err)

	invCA, err := svc.SendInvite(ctx, "c", "a")
	require.NoError(t, err)
	_, err = svc.AcceptInvite(ctx, invCA.ID, "a")
	require.NoError(t, err)

	invAD, err := svc.SendInvite(ctx, "a", "d")
	require.NoError(t, err)
	_, err = svc.RejectInvite(ctx, invAD.ID, "d")
	require.NoError(t, err)

	acceptedSent, acceptedReceived, err := svc.GetAcceptedConnections(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, userIDs(acceptedSent))
	require.Equal(t, []string{"c"}, userIDs(acceptedReceived))
}
