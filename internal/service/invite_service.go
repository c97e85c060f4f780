package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
	"github.com/d60-Lab/socialcore/internal/repository"
)

// InviteService 邀请状态机
// pending → accepted / declined，终态不可再变；
// 双方互发邀请时，任一方先表态即同时了结对向 pending（reconciliation）
type InviteService interface {
	SendInvite(ctx context.Context, inviterID, inviteeID string) (*model.Invitation, error)
	AcceptInvite(ctx context.Context, inviteID, actingUserID string) (*model.Invitation, error)
	RejectInvite(ctx context.Context, inviteID, actingUserID string) (*model.Invitation, error)
	GetUserInvites(ctx context.Context, userID string) (sent, received []*model.Invitation, err error)
	GetAcceptedConnections(ctx context.Context, userID string) (acceptedSent, acceptedReceived []*model.User, err error)
}

type inviteService struct {
	userRepo   repository.UserRepository
	inviteRepo repository.InvitationRepository
}

func NewInviteService(userRepo repository.UserRepository, inviteRepo repository.InvitationRepository) InviteService {
	return &inviteService{userRepo: userRepo, inviteRepo: inviteRepo}
}

func (s *inviteService) SendInvite(ctx context.Context, inviterID, inviteeID string) (*model.Invitation, error) {
	if inviterID == inviteeID {
		return nil, fmt.Errorf("cannot invite self: %w", ErrForbidden)
	}
	for _, id := range []string{inviterID, inviteeID} {
		ok, err := s.userRepo.Exists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
		}
	}

	// 任一方向已有 pending 即拒绝
	existing, err := s.inviteRepo.FindPending(ctx, inviterID, inviteeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("outstanding invite exists: %w", ErrForbidden)
	}

	inv, err := s.inviteRepo.Create(ctx, inviterID, inviteeID)
	if err != nil {
		// 预检与写入之间的并发窗口由部分唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("concurrent invite for pair: %w", ErrConflict)
		}
		return nil, err
	}
	return inv, nil
}

func (s *inviteService) AcceptInvite(ctx context.Context, inviteID, actingUserID string) (*model.Invitation, error) {
	return s.resolve(ctx, inviteID, actingUserID, model.InviteStatusAccepted)
}

func (s *inviteService) RejectInvite(ctx context.Context, inviteID, actingUserID string) (*model.Invitation, error) {
	return s.resolve(ctx, inviteID, actingUserID, model.InviteStatusDeclined)
}

func (s *inviteService) resolve(ctx context.Context, inviteID, actingUserID string, status model.InviteStatus) (*model.Invitation, error) {
	inv, err := s.inviteRepo.FindByID(ctx, inviteID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("invitation %s: %w", inviteID, ErrNotFound)
	}
	if inv.InviteeID != actingUserID {
		return nil, fmt.Errorf("only the invitee may resolve an invitation: %w", ErrForbidden)
	}
	if inv.Status != model.InviteStatusPending {
		return nil, fmt.Errorf("invitation already resolved: %w", ErrForbidden)
	}

	updated, err := s.inviteRepo.UpdateStatusIfPending(ctx, inv.ID, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		// 并发表态，CAS 落败
		return nil, fmt.Errorf("invitation resolved concurrently: %w", ErrConflict)
	}
	inv.Status = status

	// 对向 reconciliation：本条已出 pending，剩余的只能是 invitee→inviter
	opposite, err := s.inviteRepo.FindPending(ctx, inv.InviterID, inv.InviteeID)
	if err != nil {
		return nil, err
	}
	if opposite != nil {
		// CAS 落败说明对方同时表了态，结果一致，无需回滚
		if _, err := s.inviteRepo.UpdateStatusIfPending(ctx, opposite.ID, status); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

func (s *inviteService) GetUserInvites(ctx context.Context, userID string) ([]*model.Invitation, []*model.Invitation, error) {
	sent, err := s.inviteRepo.ListByInviter(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	received, err := s.inviteRepo.ListByInvitee(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return sent, received, nil
}

func (s *inviteService) GetAcceptedConnections(ctx context.Context, userID string) ([]*model.User, []*model.User, error) {
	sent, received, err := s.GetUserInvites(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	sentIDs := make([]string, 0, len(sent))
	for _, inv := range sent {
		if inv.Status == model.InviteStatusAccepted {
			sentIDs = append(sentIDs, inv.InviteeID)
		}
	}
	receivedIDs := make([]string, 0, len(received))
	for _, inv := range received {
		if inv.Status == model.InviteStatusAccepted {
			receivedIDs = append(receivedIDs, inv.InviterID)
		}
	}

	acceptedSent, err := s.userRepo.ListByIDs(ctx, sentIDs)
	if err != nil {
		return nil, nil, err
	}
	acceptedReceived, err := s.userRepo.ListByIDs(ctx, receivedIDs)
	if err != nil {
		return nil, nil, err
	}
	return acceptedSent, acceptedReceived, nil
}
