package models

import "time"

type User struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Profile fields, all optional
	Age        *int       `json:"age,omitempty"`
	Birthday   *time.Time `json:"birthday,omitempty"`
	Motherland string     `gorm:"size:100" json:"motherland,omitempty"`
	School     string     `gorm:"size:100" json:"school,omitempty"`
	Major      string     `gorm:"size:50" json:"major,omitempty"`
	City       string     `gorm:"size:100" json:"city,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
