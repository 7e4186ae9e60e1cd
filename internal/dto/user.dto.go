package dto

type UserDTO struct {
	ID                     uint    `json:"id"`
	Username               string  `json:"username"`
	Role                   string  `json:"role"`
	BarberID               *uint   `json:"barber_id"`
	BarberName             *string `json:"barber_name"`
	RequiresPasswordChange bool    `json:"requires_password_change"`
}
