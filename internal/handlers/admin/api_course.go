package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

// ==========================================
// 1. GET  /api/courses      (список)
// 2. POST /api/courses      (создание)
// ==========================================
func (s *Service) HandleCoursesAPI(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getCourses(w, r)
	case http.MethodPost:
		s.createCourse(w, r)
	default:
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// ==========================================
// 3. GET    /api/courses/{id} (детали)
// 4. PATCH  /api/courses/{id} (обновление)
// 5. DELETE /api/courses/{id} (удаление)
// ==========================================
func (s *Service) HandleCourseByIDAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getCourseByID(w, r, uint(id))
	case http.MethodPatch:
		s.updateCourse(w, r, uint(id))
	case http.MethodDelete:
		s.deleteCourse(w, r, uint(id))
	default:
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// -------------------------------------------------------------------------
// Логика
// -------------------------------------------------------------------------

func (s *Service) getCourses(w http.ResponseWriter, r *http.Request) {
	var courses []models.Course
	err := s.DB.Preload("Categories").Order("created_at desc").Find(&courses).Error
	if err != nil {
		log.Error().Err(err).Msg("admin course listing failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

type courseCreateInput struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Price       float64 `json:"price" validate:"gte=0"`
	IsPublished bool    `json:"is_published"`
	CategoryIDs []uint  `json:"category_ids"`
}

func (s *Service) createCourse(w http.ResponseWriter, r *http.Request) {
	var input courseCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !s.ValidateJSONBody(w, input) {
		return
	}

	course := models.Course{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL, // пустая строка так и остается пустой, не NULL
		Price:       input.Price,
		IsPublished: input.IsPublished,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&course).Error; err != nil {
			return err
		}
		return replaceCategoryLinks(tx, course.ID, input.CategoryIDs)
	})
	if err != nil {
		log.Error().Err(err).Msg("course creation failed")
		jsonError(w, "Failed to create course", http.StatusInternalServerError)
		return
	}

	s.DB.Preload("Categories").First(&course, course.ID)
	writeJSON(w, http.StatusCreated, course)
}

func (s *Service) getCourseByID(w http.ResponseWriter, r *http.Request, id uint) {
	var course models.Course
	err := s.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Categories").
		First(&course, id).Error
	if database.IsNotFound(err) {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("course_id", id).Msg("admin course fetch failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

// courseUpdateInput — частичное обновление: nil-поле значит «не трогать».
type courseUpdateInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=3"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,url"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	IsPublished *bool    `json:"is_published"`
	CategoryIDs []uint   `json:"category_ids"`
}

func (s *Service) updateCourse(w http.ResponseWriter, r *http.Request, id uint) {
	var course models.Course
	if err := s.DB.First(&course, id).Error; err != nil {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}

	var input courseUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !s.ValidateJSONBody(w, input) {
		return
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}

	// Скалярные поля и замена связей с категориями — одна транзакция:
	// при сбое на середине старый набор связей остается нетронутым.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&course).Updates(updates).Error; err != nil {
				return err
			}
		}
		if input.CategoryIDs != nil {
			return replaceCategoryLinks(tx, course.ID, input.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("course_id", id).Msg("course update failed")
		jsonError(w, "Failed to update course", http.StatusInternalServerError)
		return
	}

	storage.InvalidateCourse(r.Context(), s.Cache, id)

	var updated models.Course
	s.DB.Preload("Categories").First(&updated, id)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Service) deleteCourse(w http.ResponseWriter, r *http.Request, id uint) {
	var course models.Course
	if err := s.DB.First(&course, id).Error; err != nil {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}

	// Жесткое удаление; уроки и join-строки снимает каскад на уровне БД.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		log.Error().Err(err).Uint("course_id", id).Msg("course delete failed")
		jsonError(w, "Failed to delete course", http.StatusInternalServerError)
		return
	}

	storage.InvalidateCourse(r.Context(), s.Cache, id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Course deleted successfully"})
}

// replaceCategoryLinks меняет набор связей курса: удалить все старые,
// вставить новые одним батчем. Вызывается только внутри транзакции.
func replaceCategoryLinks(tx *gorm.DB, courseID uint, categoryIDs []uint) error {
	if err := tx.Where("course_id = ?", courseID).Delete(&models.CourseCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]models.CourseCategory, 0, len(categoryIDs))
	for _, catID := range categoryIDs {
		links = append(links, models.CourseCategory{CourseID: courseID, CategoryID: catID})
	}
	return tx.Create(&links).Error
}
