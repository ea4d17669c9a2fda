package model

import "time"

type Feedback struct {
	FeedbackID   int64     `gorm:"column:feedback_id;primaryKey;autoIncrement" json:"feedback_id"`
	StudentID    int64     `gorm:"column:student_id;not null;index" json:"student_id"`
	Email        string    `gorm:"column:email;type:varchar(150);not null" json:"email"`
	FeedbackType string    `gorm:"column:feedback_type;type:varchar(50);not null" json:"feedback_type"`
	Message      string    `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}
