package dto

import "time"

type PasswordRequestDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	BarberName  *string   `json:"barber_name"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}
