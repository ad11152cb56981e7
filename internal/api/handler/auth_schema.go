package handler

import "github.com/heatwatch/heatwave-alerts/internal/core/domain"

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	LastName    string `json:"last_name" validate:"required,max=25"`
	FirstName   string `json:"first_name" validate:"max=30"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Role        string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// loginResponse returns the bearer token together with the redacted user
// representation; the password artifact is excluded by the domain json tags.
type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
