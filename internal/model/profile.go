package model

import "time"

// Profile 用户资料（feed 返回时随候选人一并带出）
type Profile struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string `json:"user_id" gorm:"type:varchar(36);uniqueIndex:ux_profile_user;not null"`
	Name           string `json:"name" gorm:"type:varchar(128)"`
	Age            int    `json:"age"`
	Location       string `json:"location" gorm:"type:varchar(128)"`
	Linkedin       string `json:"linkedin" gorm:"type:varchar(255)"`
	SchedulingLink string `json:"scheduling_link" gorm:"type:varchar(255)"`
	Pitch          string `json:"pitch" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
