package dto

import (
	"roombook/internal/domains/user/model"
	"roombook/shared/constant"
	gDto "roombook/shared/dto"
	"roombook/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Level     string  `json:"level"`
	FullName  *string `json:"full_name,omitempty"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Email = user.Email
	r.Level = user.Level
	r.FullName = user.FullName
	r.Active = user.Active

	if user.LastLogin.Valid {
		lastLogin := timezone.Format(user.LastLogin.Time, constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(user.Metadata)
}
