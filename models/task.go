package models

import "time"

const (
	TaskTypeFollow = "follow"
	TaskTypeLike   = "like"
	TaskTypeShare  = "share"
	TaskTypeCustom = "custom"
)

type Task struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Reward      int64     `gorm:"not null" json:"reward"`
	TaskType    string    `gorm:"size:20;not null" json:"taskType"`
	IsAdvanced  bool      `gorm:"not null;default:false" json:"isAdvanced"`
	IsActive    bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Task) TableName() string {
	return "tasks"
}

type TaskSubmission struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"size:36;not null;index" json:"userId"`
	TaskID        string    `gorm:"size:36;not null;index" json:"taskId"`
	ScreenshotURL string    `gorm:"size:512" json:"screenshotUrl"`
	Status        string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func (TaskSubmission) TableName() string {
	return "task_submissions"
}
