package admin

import (
	"encoding/json"
	"net/http"

	"github.com/s/coursehub/internal/handlers"
	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

// Service — админские обработчики поверх базового Handler.
// Проверка роли ADMIN выполняется в middleware до вызова любого из них.
type Service struct {
	handlers.Handler
}

func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// HandleAdminPage — дашборд админки со сводными цифрами.
func (s *Service) HandleAdminPage(w http.ResponseWriter, r *http.Request) {
	data := s.BasePageData(r, "Панель Администратора")

	s.DB.Model(&models.Course{}).Count(&data.StatCourses)
	s.DB.Model(&models.User{}).Count(&data.StatUsers)
	s.DB.Model(&models.Enrollment{}).Count(&data.StatEnrollments)

	s.Render(w, "adminIndex", data)
}

// HandleCoursePage — страница управления курсами.
func (s *Service) HandleCoursePage(w http.ResponseWriter, r *http.Request) {
	data := s.BasePageData(r, "Курсы — админка")

	categories, err := storage.ListCategories(s.DB)
	if err == nil {
		data.Categories = categories
	}

	s.Render(w, "adminCourses", data)
}

// HandleCouponsPage — страница купонов.
func (s *Service) HandleCouponsPage(w http.ResponseWriter, r *http.Request) {
	data := s.BasePageData(r, "Купоны — админка")

	var coupons []models.Coupon
	if err := s.DB.Order("created_at desc").Find(&coupons).Error; err == nil {
		data.Coupons = coupons
	}

	s.Render(w, "adminCoupons", data)
}
