package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
)

// InvitationRepository 邀请存储
// 状态合法性由 service 层把关，这里只做读写与存储级约束
type InvitationRepository interface {
	// Create 新建 pending 邀请；同一有序对已有 pending 时
	// 命中部分唯一索引，返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, inviterID, inviteeID string) (*model.Invitation, error)
	// FindPending 查找两人之间任一方向的 pending 邀请，不存在返回 (nil, nil)
	FindPending(ctx context.Context, a, b string) (*model.Invitation, error)
	// FindByID 不存在返回 (nil, nil)
	FindByID(ctx context.Context, id string) (*model.Invitation, error)
	// UpdateStatusIfPending CAS：仅当当前为 pending 时写入新状态
	UpdateStatusIfPending(ctx context.Context, id string, status model.InviteStatus) (bool, error)
	ListByInviter(ctx context.Context, userID string) ([]*model.Invitation, error)
	ListByInvitee(ctx context.Context, userID string) ([]*model.Invitation, error)
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inviterID, inviteeID string) (*model.Invitation, error) {
	inv := &model.Invitation{
		ID:        uuid.New().String(),
		InviterID: inviterID,
		InviteeID: inviteeID,
		PairKey:   model.InvitationPairKey(inviterID, inviteeID),
		Status:    model.InviteStatusPending,
	}
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) FindPending(ctx context.Context, a, b string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Where("status = ? AND pair_key = ?", model.InviteStatusPending, model.InvitationPairKey(a, b)).
		First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) FindByID(ctx context.Context, id string) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *invitationRepository) UpdateStatusIfPending(ctx context.Context, id string, status model.InviteStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Invitation{}).
		Where("id = ? AND status = ?", id, model.InviteStatusPending).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *invitationRepository) ListByInviter(ctx context.Context, userID string) ([]*model.Invitation, error) {
	var res []*model.Invitation
	err := r.db.WithContext(ctx).
		Where("inviter_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *invitationRepository) ListByInvitee(ctx context.Context, userID string) ([]*model.Invitation, error) {
	var res []*model.Invitation
	err := r.db.WithContext(ctx).
		Where("invitee_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}
