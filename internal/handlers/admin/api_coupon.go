package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/s/coursehub/internal/database"
	"github.com/s/coursehub/internal/models"
)

// HandleCouponsAPI — GET (список) и POST (создание) /api/coupons.
func (s *Service) HandleCouponsAPI(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var coupons []models.Coupon
		if err := s.DB.Order("created_at desc").Find(&coupons).Error; err != nil {
			log.Error().Err(err).Msg("coupon listing failed")
			jsonError(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, coupons)
	case http.MethodPost:
		s.createCoupon(w, r)
	default:
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type couponInput struct {
	Code            string     `json:"code" validate:"required,min=3"`
	DiscountPercent int        `json:"discount_percent" validate:"gte=0,lte=100"`
	DiscountAmount  float64    `json:"discount_amount" validate:"gte=0"`
	ExpiresAt       *time.Time `json:"expires_at"`
	MaxUses         *int       `json:"max_uses" validate:"omitempty,gt=0"`
	IsActive        bool       `json:"is_active"`
}

func (s *Service) createCoupon(w http.ResponseWriter, r *http.Request) {
	var input couponInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if !s.ValidateJSONBody(w, input) {
		return
	}

	coupon := models.Coupon{
		Code:            input.Code,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		ExpiresAt:       input.ExpiresAt,
		MaxUses:         input.MaxUses,
		IsActive:        input.IsActive,
	}
	if err := s.DB.Create(&coupon).Error; err != nil {
		if database.IsDuplicateKey(err) {
			jsonError(w, "A coupon with this code already exists", http.StatusConflict)
			return
		}
		log.Error().Err(err).Msg("coupon creation failed")
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, coupon)
}

// HandleCouponByIDAPI — PATCH (активация/деактивация) и DELETE /api/coupons/{id}.
func (s *Service) HandleCouponByIDAPI(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		jsonError(w, "Invalid coupon ID", http.StatusBadRequest)
		return
	}

	var coupon models.Coupon
	if err := s.DB.First(&coupon, id).Error; err != nil {
		jsonError(w, "Coupon not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var input struct {
			IsActive *bool `json:"is_active"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			jsonError(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
		if input.IsActive != nil {
			if err := s.DB.Model(&coupon).Update("is_active", *input.IsActive).Error; err != nil {
				jsonError(w, "Failed to update coupon", http.StatusInternalServerError)
				return
			}
		}
		writeJSON(w, http.StatusOK, coupon)

	case http.MethodDelete:
		if err := s.DB.Delete(&coupon).Error; err != nil {
			jsonError(w, "Failed to delete coupon", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Coupon deleted successfully"})

	default:
		jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
