package dto

import "github.com/BruksfildServices01/barber-sales/internal/models"

func FromVisit(v models.Visit) VisitListDTO {
	out := VisitListDTO{
		ID:            v.ID,
		VisitDate:     v.VisitDate,
		BarberID:      v.BarberID,
		CustomerID:    v.CustomerID,
		TotalAmount:   v.TotalAmount,
		PaymentMethod: v.PaymentMethod,
		MomoReference: v.MomoReference,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		Services:      make([]VisitLineDTO, 0, len(v.Services)),
	}
	if v.Barber != nil {
		out.BarberName = v.Barber.Name
	}
	if v.Customer != nil {
		out.CustomerName = v.Customer.Name
	}
	for _, l := range v.Services {
		line := VisitLineDTO{
			ServiceID: l.ServiceID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		}
		if l.Service != nil {
			line.ServiceName = l.Service.Name
		}
		out.Services = append(out.Services, line)
	}
	return out
}

func FromUser(u models.User) UserDTO {
	out := UserDTO{
		ID:                     u.ID,
		Username:               u.Username,
		Role:                   u.Role,
		BarberID:               u.BarberID,
		RequiresPasswordChange: u.RequiresPasswordChange,
	}
	if u.Barber != nil {
		name := u.Barber.Name
		out.BarberName = &name
	}
	return out
}

func FromPasswordRequest(r models.PasswordResetRequest) PasswordRequestDTO {
	out := PasswordRequestDTO{
		ID:          r.ID,
		UserID:      r.UserID,
		Status:      r.Status,
		RequestedAt: r.RequestedAt,
	}
	if r.User != nil {
		out.Username = r.User.Username
		if r.User.Barber != nil {
			name := r.User.Barber.Name
			out.BarberName = &name
		}
	}
	return out
}
