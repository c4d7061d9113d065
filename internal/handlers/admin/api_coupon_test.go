package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/coursehub/internal/models"
)

func couponRouter(s *Service) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/coupons", s.HandleCouponsAPI).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/api/coupons/{id}", s.HandleCouponByIDAPI).Methods(http.MethodPatch, http.MethodDelete)
	return r
}

func TestCreateCoupon(t *testing.T) {
	s := newTestService(t)

	body := `{"code":"SAVE20","discount_percent":20,"max_uses":100,"is_active":true}`
	rec := doJSON(couponRouter(s), http.MethodPost, "/api/coupons", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var coupon models.Coupon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &coupon))
	assert.Equal(t, "SAVE20", coupon.Code)
	assert.Equal(t, 20, coupon.DiscountPercent)
	require.NotNil(t, coupon.MaxUses)
	assert.Equal(t, 100, *coupon.MaxUses)
}

func TestCreateCouponDuplicateCode(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.DB.Create(&models.Coupon{Code: "SAVE20", IsActive: true}).Error)

	rec := doJSON(couponRouter(s), http.MethodPost, "/api/coupons", `{"code":"SAVE20"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateCouponValidation(t *testing.T) {
	s := newTestService(t)

	rec := doJSON(couponRouter(s), http.MethodPost, "/api/coupons", `{"code":"OK","discount_percent":120}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleCoupon(t *testing.T) {
	s := newTestService(t)
	router := couponRouter(s)

	coupon := models.Coupon{Code: "SAVE20", IsActive: true}
	require.NoError(t, s.DB.Create(&coupon).Error)

	rec := doJSON(router, http.MethodPatch, fmt.Sprintf("/api/coupons/%d", coupon.ID), `{"is_active":false}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Coupon
	require.NoError(t, s.DB.First(&reloaded, coupon.ID).Error)
	assert.False(t, reloaded.IsActive)
}

func TestDeleteCoupon(t *testing.T) {
	s := newTestService(t)
	router := couponRouter(s)

	coupon := models.Coupon{Code: "SAVE20"}
	require.NoError(t, s.DB.Create(&coupon).Error)

	rec := doJSON(router, http.MethodDelete, fmt.Sprintf("/api/coupons/%d", coupon.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, s.DB.Model(&models.Coupon{}).Count(&count).Error)
	assert.Zero(t, count)
}
