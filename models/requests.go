package models

import "time"

const (
	WithdrawalTypeUPI        = "upi"
	WithdrawalTypeAmazon     = "amazon"
	WithdrawalTypeFlipkart   = "flipkart"
	WithdrawalTypeGooglePlay = "googleplay"
)

type VerificationRequest struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	InstagramHandle string    `gorm:"size:100;not null;index" json:"instagramHandle"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (VerificationRequest) TableName() string {
	return "verification_requests"
}

type InstagramBindingRequest struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   string `gorm:"size:36;not null;index" json:"userId"`
	Username string `gorm:"size:100;not null" json:"username"`
	// Password is stored and returned as submitted; the admin panel relays it
	// to the operator who performs the manual bind.
	Password   string    `gorm:"size:255;not null" json:"password"`
	AccessCode string    `gorm:"size:100" json:"accessCode,omitempty"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (InstagramBindingRequest) TableName() string {
	return "instagram_binding_requests"
}

// WithdrawalDetails is the payout destination. Which fields are set depends on
// the request type: UPI uses UPIID, gift cards use Email and Mobile.
type WithdrawalDetails struct {
	UPIID  string `json:"upiId,omitempty"`
	Email  string `json:"email,omitempty"`
	Mobile string `json:"mobile,omitempty"`
}

type WithdrawalRequest struct {
	ID        string            `gorm:"primaryKey;size:36" json:"id"`
	UserID    string            `gorm:"size:36;not null;index" json:"userId"`
	Type      string            `gorm:"size:20;not null" json:"type"`
	Amount    int64             `gorm:"not null" json:"amount"`
	Details   WithdrawalDetails `gorm:"serializer:json" json:"details"`
	Status    string            `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}

type SupportRequest struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Status    string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SupportRequest) TableName() string {
	return "support_requests"
}
