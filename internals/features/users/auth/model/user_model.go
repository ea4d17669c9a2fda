package model

import "time"

type User struct {
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Email     string    `gorm:"column:email;type:varchar(150);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;type:varchar(100);not null" json:"-"`
	Role      string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	StudentID *int64    `gorm:"column:student_id" json:"student_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
