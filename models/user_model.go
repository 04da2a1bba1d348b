package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

type User struct {
	gorm.Model
	Name      string `json:"name"`
	Mobile    string `json:"mobile" gorm:"unique"`
	Email     string `json:"email"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"default:'admin'"`
	CreatedBy string
	UpdatedBy string
}

type UserSession struct {
	gorm.Model
	UserID         uint      `json:"user_id"`
	SessionID      string    `json:"session_id" gorm:"index"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	LastActivityAt time.Time `json:"last_activity_at"`
	ExpiresAt      time.Time `json:"expires_at"`
}
