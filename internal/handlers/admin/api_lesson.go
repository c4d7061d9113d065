package admin

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

type lessonCreateInput struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
}

// CreateLessonAPI — POST /api/courses/{id}/lessons. Позиция назначается
// автоматически: следующая за максимальной в курсе.
func (s *Service) CreateLessonAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := s.DB.First(&course, courseID).Error; err != nil {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}

	var input lessonCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !s.ValidateJSONBody(w, input) {
		return
	}

	var maxPos int
	s.DB.Model(&models.Lesson{}).Where("course_id = ?", courseID).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos)

	lesson := models.Lesson{
		CourseID:    uint(courseID),
		Title:       input.Title,
		Description: input.Description,
		Content:     input.Content,
		VideoURL:    input.VideoURL,
		Position:    maxPos + 1,
		IsPublished: input.IsPublished,
	}
	if err := s.DB.Create(&lesson).Error; err != nil {
		log.Error().Err(err).Uint64("course_id", courseID).Msg("lesson creation failed")
		jsonError(w, "Failed to create lesson", http.StatusInternalServerError)
		return
	}

	storage.InvalidateCourse(r.Context(), s.Cache, uint(courseID))
	writeJSON(w, http.StatusCreated, lesson)
}

type lessonUpdateInput struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url"`
	IsPublished *bool   `json:"is_published"`
}

// UpdateLessonAPI — PATCH /api/lessons/{id}.
func (s *Service) UpdateLessonAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	var lesson models.Lesson
	if err := s.DB.First(&lesson, id).Error; err != nil {
		if database.IsNotFound(err) {
			jsonError(w, "Lesson not found", http.StatusNotFound)
			return
		}
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var input lessonUpdateInput
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
	if input.Content != nil {
		updates["content"] = *input.Content
	}
	if input.VideoURL != nil {
		updates["video_url"] = *input.VideoURL
	}
	if input.IsPublished != nil {
		updates["is_published"] = *input.IsPublished
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&lesson).Updates(updates).Error; err != nil {
			log.Error().Err(err).Uint64("lesson_id", id).Msg("lesson update failed")
			jsonError(w, "Failed to update lesson", http.StatusInternalServerError)
			return
		}
	}

	storage.InvalidateCourse(r.Context(), s.Cache, lesson.CourseID)
	writeJSON(w, http.StatusOK, lesson)
}

// DeleteLessonAPI — DELETE /api/lessons/{id}.
func (s *Service) DeleteLessonAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	var lesson models.Lesson
	if err := s.DB.First(&lesson, id).Error; err != nil {
		jsonError(w, "Lesson not found", http.StatusNotFound)
		return
	}

	if err := s.DB.Delete(&lesson).Error; err != nil {
		log.Error().Err(err).Uint64("lesson_id", id).Msg("lesson delete failed")
		jsonError(w, "Failed to delete lesson", http.StatusInternalServerError)
		return
	}

	storage.InvalidateCourse(r.Context(), s.Cache, lesson.CourseID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted successfully"})
}
