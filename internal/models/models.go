package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type RobotStatus string

const (
	StatusActive      RobotStatus = "active"
	StatusInactive    RobotStatus = "inactive"
	StatusMaintenance RobotStatus = "maintenance"
)

type Robot struct {
	ID        string      `gorm:"primaryKey;size:64" json:"id"`
	Name      string      `gorm:"not null;size:50" json:"name"`
	Status    RobotStatus `gorm:"not null;default:inactive;size:16" json:"status"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

type Session struct {
	Token     string     `gorm:"primaryKey;size:64" json:"-"`
	UserID    string     `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
