package models

import "time"

type PasswordResetRequest struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;index" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE;" json:"user,omitempty"`

	Status      string     `gorm:"size:20;not null;default:'pending';index:idx_reset_requests_status" json:"status"`
	RequestedAt time.Time  `gorm:"not null" json:"requested_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	ReviewedBy  *uint      `json:"reviewed_by"`
	Reviewer    *User      `gorm:"foreignKey:ReviewedBy;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}
