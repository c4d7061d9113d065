package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"` // bcrypt-хэш, наружу не отдаем
	Role     Role   `gorm:"size:20;default:USER" json:"role"`
	Image    string `json:"image"`
	GoogleID string `gorm:"index" json:"-"` // заполнен только для OAuth-аккаунтов
}
