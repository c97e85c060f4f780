package model

import (
	"time"
)

// Disposition 用户对另一用户的当前态度
type Disposition string

const (
	DispositionBookmarked Disposition = "bookmarked"
	DispositionPassedBy   Disposition = "passedBy"
)

// Interaction 定向互动记录（A 对 B）
// 每个有序对最多一条，后写覆盖前写
type Interaction struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ActorID  string `json:"actor_id" gorm:"type:varchar(36);index:idx_interaction_actor;index:idx_interaction_pair,unique;not null"`
	TargetID string `json:"target_id" gorm:"type:varchar(36);not null;index:idx_interaction_pair,unique"`
	// 复合唯一键，保证单对单条
	// idx_interaction_pair = (actor_id, target_id)
	Disposition Disposition `json:"disposition" gorm:"type:varchar(16);index:idx_interaction_disposition;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Interaction) TableName() string { return "interactions" }
