package model

import (
	"time"
)

// User 用户主体（账号生命周期由外部负责，这里只做只读引用与 feed 候选）
type User struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Mobile   string `json:"mobile" gorm:"type:varchar(20);uniqueIndex:ux_user_mobile;not null"`
	Username string `json:"username" gorm:"type:varchar(64)"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Age      int    `json:"age"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_user_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
