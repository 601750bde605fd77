package model

import (
	"database/sql"
	"roombook/shared/constant"
	"roombook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldLevel     = "level"
	FieldFullName  = "full_name"
	FieldLastLogin = "last_login"
	FieldActive    = "active"
)

// User is a staff account allowed to manage the catalog.
type User struct {
	ID        string       `db:"id"`
	Email     string       `db:"email"`
	Password  string       `db:"password"`
	Level     string       `db:"level"`
	FullName  *string      `db:"full_name"`
	LastLogin sql.NullTime `db:"last_login"`
	Active    bool         `db:"active"`
	model.Metadata
}

func (u User) IsAdmin() bool {
	return u.Level == constant.RoleAdmin
}
