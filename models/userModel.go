package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleKitchen = "kitchen"
	RoleStaff   = "staff"
)

type User struct {
	gorm.Model
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Password               string     `json:"password"`
	Role                   string     `json:"role"`
	AccountActivated       bool       `json:"accountActivated"`
	AccountActivationToken string     `json:"-"`
	PasswordResetToken     string     `json:"-"`
	LastLoginAt            *time.Time `json:"lastLoginAt"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
