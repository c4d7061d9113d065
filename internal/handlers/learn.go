package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/storage"
)

// HandleCourseLearn — страница обучения: список уроков, прогресс-бар,
// кнопка «продолжить». Доступ только при наличии Enrollment.
func (h *Handler) HandleCourseLearn(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	// 1. ПРОВЕРКА ДОСТУПА
	enrolled, err := storage.IsEnrolled(h.DB, userID, uint(courseID))
	if err != nil || !enrolled {
		http.Redirect(w, r, "/courses/"+vars["id"], http.StatusSeeOther)
		return
	}

	// 2. ЗАГРУЗКА КУРСА
	course, err := storage.GetPublishedCourse(r.Context(), h.DB, h.Cache, uint(courseID))
	if err != nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}

	// 3. ПРОГРЕСС
	summary, err := storage.CourseProgress(h.DB, userID, uint(courseID))
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("progress aggregation failed")
		http.Error(w, "Ошибка сервера", http.StatusInternalServerError)
		return
	}

	data := h.basePageData(r, course.Title)
	data.Course = *course
	data.Progress = ProgressView{
		Total:   summary.TotalLessons,
		Done:    summary.DoneLessons,
		Percent: summary.Percent,
		DoneMap: summary.DoneMap,
		NextID:  summary.NextLessonID,
	}
	h.render(w, "courseLearn", data)
}

// HandleLessonView — страница урока с навигацией назад/вперед.
func (h *Handler) HandleLessonView(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err1 := strconv.ParseUint(vars["id"], 10, 32)
	lessonID, err2 := strconv.ParseUint(vars["lesson_id"], 10, 32)
	if err1 != nil || err2 != nil {
		http.NotFound(w, r)
		return
	}

	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	enrolled, err := storage.IsEnrolled(h.DB, userID, uint(courseID))
	if err != nil || !enrolled {
		http.Redirect(w, r, "/courses/"+vars["id"], http.StatusSeeOther)
		return
	}

	course, err := storage.GetPublishedCourse(r.Context(), h.DB, h.Cache, uint(courseID))
	if err != nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}

	// Ищем урок и соседей в порядке позиций.
	currentIndex := -1
	for i, l := range course.Lessons {
		if l.ID == uint(lessonID) {
			currentIndex = i
			break
		}
	}
	if currentIndex == -1 {
		http.Redirect(w, r, "/learn/"+vars["id"], http.StatusSeeOther)
		return
	}

	var prevID, nextID uint
	if currentIndex > 0 {
		prevID = course.Lessons[currentIndex-1].ID
	}
	if currentIndex < len(course.Lessons)-1 {
		nextID = course.Lessons[currentIndex+1].ID
	}

	done, _ := storage.LessonCompleted(h.DB, userID, uint(lessonID))

	data := h.basePageData(r, course.Lessons[currentIndex].Title)
	data.Course = *course
	data.Lesson = course.Lessons[currentIndex]
	data.LessonIndex = currentIndex
	data.PrevLessonID = prevID
	data.NextLessonID = nextID
	data.IsLessonDone = done
	h.render(w, "lessonView", data)
}

// MarkLessonCompleteAPI — POST /api/lessons/{id}/complete.
// Идемпотентный upsert: повторный вызов не меняет ничего.
func (h *Handler) MarkLessonCompleteAPI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	lessonID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}

	if err := storage.MarkLessonComplete(h.DB, userID, uint(lessonID)); err != nil {
		log.Error().Err(err).Uint("user_id", userID).Uint64("lesson_id", lessonID).
			Msg("progress upsert failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"completed": true})
}
