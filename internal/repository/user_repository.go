package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/socialcore/internal/model"
)

// UserRepository 用户只读视图（账号写入由外部系统负责，Create 仅供种子与测试）
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Exists(ctx context.Context, id string) (bool, error)
	// Get 不存在时返回 (nil, nil)
	Get(ctx context.Context, id string) (*model.User, error)
	// ListExcluding 返回排除集合之外的用户分页与总数，排序跨页稳定
	ListExcluding(ctx context.Context, excludedIDs []string, offset, limit int) ([]*model.User, int64, error)
	ListByIDs(ctx context.Context, ids []string) ([]*model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Exists(ctx context.Context, id string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userRepository) Get(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Preload("Profile").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListExcluding(ctx context.Context, excludedIDs []string, offset, limit int) ([]*model.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.User{})
	if len(excludedIDs) > 0 {
		q = q.Where("id NOT IN ?", excludedIDs)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	err := q.Preload("Profile").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	var users []*model.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&users).Error
	return users, err
}
