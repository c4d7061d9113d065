package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/models"
	"github.com/s/coursehub/internal/storage"
)

// HandleMain — главная страница: свежие опубликованные курсы.
func (h *Handler) HandleMain(w http.ResponseWriter, r *http.Request) {
	courses, err := storage.ListPublishedCourses(r.Context(), h.DB, h.Cache, storage.CatalogFilter{
		MinPrice: storage.DefaultMinPrice,
		MaxPrice: storage.DefaultMaxPrice,
	})
	if err != nil {
		log.Error().Err(err).Msg("main page: course listing failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	if len(courses) > 6 {
		courses = courses[:6]
	}

	data := h.basePageData(r, "CourseHub")
	data.Courses = courses
	h.render(w, "index", data)
}

// HandleCourses — каталог с фильтрами и сортировкой.
// GET /courses?category=&sort=&search=&minPrice=&maxPrice=
func (h *Handler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	filter := storage.ParseCatalogFilter(r.URL.Query())

	courses, err := storage.ListPublishedCourses(r.Context(), h.DB, h.Cache, filter)
	if err != nil {
		log.Error().Err(err).Msg("catalog listing failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	categories, err := storage.ListCategories(h.DB)
	if err != nil {
		log.Error().Err(err).Msg("category listing failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	data := h.basePageData(r, "Курсы")
	data.Courses = courses
	data.Categories = categories
	data.TotalFound = len(courses)
	data.Filter = CatalogFilterView{
		Category: filter.Category,
		Search:   filter.Search,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
		Sort:     filter.Sort,
	}
	h.render(w, "courses", data)
}

// HandleCourseDetail — страница курса. 404, если курса нет или он снят
// с публикации.
func (h *Handler) HandleCourseDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	course, err := storage.GetPublishedCourse(r.Context(), h.DB, h.Cache, uint(courseID))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := h.basePageData(r, course.Title)
	data.Course = *course

	if data.IsAuthenticated {
		enrolled, err := storage.IsEnrolled(h.DB, data.UserID, course.ID)
		if err == nil {
			data.IsEnrolled = enrolled
		}

		var sub models.Subscription
		if err := h.DB.Where("user_id = ? AND status = ?", data.UserID, models.SubscriptionActive).
			First(&sub).Error; err == nil {
			data.HasSubscription = true
		}
	}

	h.render(w, "courseDetail", data)
}
