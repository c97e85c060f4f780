package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/socialcore/internal/model"
)

// InteractionRepository 互动存储：每个 (actor, target) 一条当前态度
type InteractionRepository interface {
	// SetDisposition 原子 upsert；重复写入幂等，仅刷新 updated_at
	SetDisposition(ctx context.Context, actorID, targetID string, d model.Disposition) (*model.Interaction, error)
	DispositionsOf(ctx context.Context, actorID string) ([]*model.Interaction, error)
	TargetsWithDisposition(ctx context.Context, actorID string, d model.Disposition) ([]string, error)
}

type interactionRepository struct {
	db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) SetDisposition(ctx context.Context, actorID, targetID string, d model.Disposition) (*model.Interaction, error) {
	row := &model.Interaction{
		ID:          uuid.New().String(),
		ActorID:     actorID,
		TargetID:    targetID,
		Disposition: d,
	}
	// 唯一键 (actor_id, target_id) 上冲突则覆盖态度，后写胜出
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "actor_id"}, {Name: "target_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"disposition": d,
			"updated_at":  time.Now(),
		}),
	}).Create(row).Error
	if err != nil {
		return nil, err
	}

	// 冲突路径下保留的是旧行 ID，回读取回真实记录
	var out model.Interaction
	err = r.db.WithContext(ctx).
		Where("actor_id = ? AND target_id = ?", actorID, targetID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *interactionRepository) DispositionsOf(ctx context.Context, actorID string) ([]*model.Interaction, error) {
	var rows []*model.Interaction
	err := r.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("updated_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *interactionRepository) TargetsWithDisposition(ctx context.Context, actorID string, d model.Disposition) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Interaction{}).
		Where("actor_id = ? AND disposition = ?", actorID, d).
		Order("updated_at DESC").
		Pluck("target_id", &ids).Error
	return ids, err
}
