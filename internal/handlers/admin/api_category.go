package admin

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

// GetCategoriesAPI — GET /api/categories. Доступен любому
// аутентифицированному пользователю (нужен формам фильтров).
func (s *Service) GetCategoriesAPI(w http.ResponseWriter, r *http.Request) {
	categories, err := storage.ListCategories(s.DB)
	if err != nil {
		log.Error().Err(err).Msg("category listing failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

type categoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateCategoryAPI — POST /api/categories. Имя обязательно и уникально;
// дубликат — это пользовательский 409, в отличие от enrollment, где
// конфликт уникальности глотается.
func (s *Service) CreateCategoryAPI(w http.ResponseWriter, r *http.Request) {
	var input categoryInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	if !s.ValidateJSONBody(w, input) {
		return
	}

	category := models.Category{
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.DB.Create(&category).Error; err != nil {
		if database.IsDuplicateKey(err) {
			jsonError(w, "A category with this name already exists", http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("category creation failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}
