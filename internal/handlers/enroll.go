package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/storage"
)

// HandleEnrollAPI — POST /api/courses/{id}/enroll.
//
// Ответы: 401 без сессии, 404 нет курса, 409 уже записан, 402 нужна
// оплата, 201 запись создана. Дубликат на вставке (гонка двух запросов)
// схлопывается в успех — строка в любом случае ровно одна.
func (h *Handler) HandleEnrollAPI(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.GetAuthenticatedUserID(r)
	if !ok {
		jsonError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	eligibility, _, err := storage.CheckEligibility(h.DB, userID, uint(courseID))
	if errors.Is(err, storage.ErrCourseNotFound) {
		jsonError(w, "Course not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Uint64("course_id", courseID).
			Msg("eligibility check failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch eligibility {
	case storage.AlreadyEnrolled:
		jsonError(w, "Already enrolled", http.StatusConflict)

	case storage.PaymentRequired:
		jsonError(w, "Payment required", http.StatusPaymentRequired)

	case storage.FreeEnrollOk, storage.SubscriptionCoversIt:
		enrollment, _, err := storage.Enroll(h.DB, userID, uint(courseID))
		if err != nil {
			log.Error().Err(err).Uint("user_id", userID).Uint64("course_id", courseID).
				Msg("enrollment insert failed")
			jsonError(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, enrollment)
	}
}
