package storage

import (
	"errors"
	"math"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
	"gorm.io/gorm"
)

// ProgressSummary — прогресс пользователя по одному курсу.
type ProgressSummary struct {
	TotalLessons int
	DoneLessons  int
	Percent      int
	DoneMap      map[uint]bool // lessonID → completed
	NextLessonID uint          // первый непройденный, иначе первый урок
}

// CourseProgress считает прогресс по опубликованным урокам курса.
// Курс без уроков — это всегда 0%, деления на ноль нет.
func CourseProgress(db *gorm.DB, userID, courseID uint) (ProgressSummary, error) {
	summary := ProgressSummary{DoneMap: make(map[uint]bool)}

	var lessons []models.Lesson
	err := db.Where("course_id = ? AND is_published = ?", courseID, true).
		Order("position asc").
		Find(&lessons).Error
	if err != nil {
		return summary, err
	}
	summary.TotalLessons = len(lessons)
	if len(lessons) == 0 {
		return summary, nil
	}

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	var rows []models.Progress
	err = db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error
	if err != nil {
		return summary, err
	}

	for _, p := range rows {
		if p.Completed {
			summary.DoneMap[p.LessonID] = true
			summary.DoneLessons++
		}
	}

	summary.Percent = int(math.Round(100 * float64(summary.DoneLessons) / float64(summary.TotalLessons)))

	// Следующий урок: первый в порядке позиций, который не пройден.
	// Если пройдено все — возвращаемся к первому.
	summary.NextLessonID = lessons[0].ID
	for _, l := range lessons {
		if !summary.DoneMap[l.ID] {
			summary.NextLessonID = l.ID
			break
		}
	}

	return summary, nil
}

// MarkLessonComplete — идемпотентный upsert по (user, lesson): создает
// запись или ставит completed=true существующей. Обратной операции нет,
// отметка никогда не снимается.
func MarkLessonComplete(db *gorm.DB, userID, lessonID uint) error {
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Assign(models.Progress{Completed: true}).
		FirstOrCreate(&models.Progress{UserID: userID, LessonID: lessonID, Completed: true}).Error

	// Гонка двух запросов: между SELECT и INSERT апсерта строку успел
	// вставить параллельный запрос. Отметка уже стоит, как в Enroll.
	if err != nil && database.IsDuplicateKey(err) {
		return nil
	}
	return err
}

// LessonCompleted сообщает, пройден ли урок пользователем.
func LessonCompleted(db *gorm.DB, userID, lessonID uint) (bool, error) {
	var p models.Progress
	err := db.Where("user_id = ? AND lesson_id = ? AND completed = ?", userID, lessonID, true).First(&p).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}
