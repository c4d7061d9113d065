package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/storage"
)

// HandleDashboard — «моё обучение»: записанные курсы с процентом
// прохождения каждого.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	enrollments, err := storage.EnrollmentsForUser(h.DB, userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("dashboard enrollments failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	views := make([]EnrolledCourseView, 0, len(enrollments))
	for _, e := range enrollments {
		summary, err := storage.CourseProgress(h.DB, userID, e.CourseID)
		if err != nil {
			log.Error().Err(err).Uint("course_id", e.CourseID).Msg("dashboard progress failed")
			continue
		}
		views = append(views, EnrolledCourseView{
			Enrollment: e,
			Progress: ProgressView{
				Total:   summary.TotalLessons,
				Done:    summary.DoneLessons,
				Percent: summary.Percent,
				NextID:  summary.NextLessonID,
			},
		})
	}

	data := h.basePageData(r, "Моё обучение")
	data.Enrollments = views
	h.render(w, "dashboard", data)
}
