package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/storage"
)

// HandleCheckoutPage — GET /checkout?courseId=N. Сюда ведет кнопка записи
// на платный курс без подписки.
func (h *Handler) HandleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.GetAuthenticatedUserID(r); !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	courseID, err := strconv.ParseUint(r.URL.Query().Get("courseId"), 10, 32)
	if err != nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}

	course, err := storage.GetPublishedCourse(r.Context(), h.DB, h.Cache, uint(courseID))
	if err != nil {
		http.Redirect(w, r, "/courses", http.StatusSeeOther)
		return
	}

	data := h.basePageData(r, "Оплата")
	data.Course = *course
	h.render(w, "checkout", data)
}

type checkoutInput struct {
	CourseID   uint   `json:"course_id" validate:"required"`
	CouponCode string `json:"coupon_code"`
}

// HandleCheckoutAPI — POST /api/checkout. Применяет купон, пишет Payment
// и создает Enrollment одной транзакцией.
func (h *Handler) HandleCheckoutAPI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input checkoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !h.ValidateJSONBody(w, input) {
		return
	}

	payment, enrollment, err := storage.Checkout(h.DB, userID, input.CourseID, input.CouponCode)
	switch {
	case errors.Is(err, storage.ErrCourseNotFound):
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrCouponInvalid),
		errors.Is(err, storage.ErrCouponExpired),
		errors.Is(err, storage.ErrCouponUsedUp):
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Error().Err(err).Uint("user_id", userID).Uint("course_id", input.CourseID).
			Msg("checkout failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"payment":    payment,
		"enrollment": enrollment,
	})
}
