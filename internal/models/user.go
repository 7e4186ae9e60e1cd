package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
)

type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"size:100;uniqueIndex;not null" json:"username"`
	BarberID *uint   `gorm:"index" json:"barber_id"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber,omitempty"`

	PasswordHash           string `gorm:"size:255;not null" json:"-"`
	Role                   string `gorm:"size:20;not null;default:'barber';check:chk_users_role,role IN ('admin','barber')" json:"role"`
	RequiresPasswordChange bool   `gorm:"not null;default:false" json:"requires_password_change"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
