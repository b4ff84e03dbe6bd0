package models

import "time"

// SignupBonus is the balance every newly verified user starts with, in paisa.
const SignupBonus int64 = 500

type User struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	InstagramHandle   string    `gorm:"size:100;uniqueIndex;not null" json:"instagramHandle"`
	IsVerified        bool      `gorm:"not null;default:false" json:"isVerified"`
	Balance           int64     `gorm:"not null;default:500" json:"balance"`
	CompletedTasks    int       `gorm:"not null;default:0" json:"completedTasks"`
	HasAdvancedAccess bool      `gorm:"not null;default:false" json:"hasAdvancedAccess"`
	IsInstagramBound  bool      `gorm:"not null;default:false" json:"isInstagramBound"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
