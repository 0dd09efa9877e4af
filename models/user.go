package models

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleUser    UserRole = "user"
)

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Password    string    `json:"-" gorm:"not null"`
	Name        string    `json:"name" gorm:"not null"`
	Role        UserRole  `json:"role" gorm:"default:'user'"`
	IsSuperuser bool      `json:"is_superuser" gorm:"default:false"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanWrite reports whether the user may create or edit records.
func (u *User) CanWrite() bool {
	return u.IsSuperuser || u.Role == RoleAdmin || u.Role == RoleManager
}

// CanDelete reports whether the user may delete records.
func (u *User) CanDelete() bool {
	return u.IsSuperuser || u.Role == RoleAdmin
}
