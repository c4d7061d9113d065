package models

import "time"

// Enrollment — доступ пользователя к курсу. Пара (user, course) уникальна
// на уровне БД; приложение полагается на этот constraint при гонках.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint `gorm:"uniqueIndex:idx_user_course" json:"user_id"`
	CourseID uint `gorm:"uniqueIndex:idx_user_course" json:"course_id"`

	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// Progress — отметка о прохождении урока. Пара (user, lesson) уникальна.
type Progress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID    uint `gorm:"uniqueIndex:idx_user_lesson" json:"user_id"`
	LessonID  uint `gorm:"uniqueIndex:idx_user_lesson" json:"lesson_id"`
	Completed bool `json:"completed"`
}
