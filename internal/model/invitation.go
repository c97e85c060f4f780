package model

import (
	"time"
)

// InviteStatus 邀请状态：pending 为初始态，accepted/declined 为终态
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invitation 定向邀请（inviter → invitee）
type Invitation struct {
	ID string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	// 部分唯一索引：同一有序对最多一条 pending，
	// 同向并发 sendInvite 在存储层落败；对向并发靠 reconciliation 收敛
	// ux_invitation_pending = (inviter_id, invitee_id) WHERE status = 'pending'
	InviterID string `json:"inviter_id" gorm:"type:varchar(36);index:idx_invitation_inviter;uniqueIndex:ux_invitation_pending,where:status = 'pending';not null"`
	InviteeID string `json:"invitee_id" gorm:"type:varchar(36);index:idx_invitation_invitee;uniqueIndex:ux_invitation_pending,where:status = 'pending';not null"`
	// PairKey 无序对键，加速两人之间任一方向的 pending 查找
	PairKey string       `json:"-" gorm:"type:varchar(73);not null;index:idx_invitation_pair"`
	Status  InviteStatus `json:"status" gorm:"type:varchar(16);index:idx_invitation_status;not null;default:'pending'"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_invitation_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Invitation) TableName() string { return "invitations" }

// InvitationPairKey 归一化无序对键
func InvitationPairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}
