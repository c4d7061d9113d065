package models

import "time"

// Course (Курс)
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Title       string  `gorm:"index" json:"title"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	Price       float64 `gorm:"type:decimal(10,2);index" json:"price"`
	IsPublished bool    `json:"is_published"`

	Lessons    []Lesson   `json:"lessons,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:course_categories;"`
}

// Category (Категория)
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"uniqueIndex;size:255" json:"name"`
	Description string `json:"description"`
}

// CourseCategory — join-строка курс↔категория. Явная модель нужна
// для транзакционной замены набора связей в админке.
type CourseCategory struct {
	CourseID   uint `gorm:"primaryKey" json:"course_id"`
	CategoryID uint `gorm:"primaryKey" json:"category_id"`
}

func (CourseCategory) TableName() string { return "course_categories" }

// Lesson (Урок)
type Lesson struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	CourseID    uint   `gorm:"index;uniqueIndex:idx_course_position" json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url"`
	Position    int    `gorm:"uniqueIndex:idx_course_position" json:"position"`
	IsPublished bool   `json:"is_published"`
}
