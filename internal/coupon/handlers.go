package coupon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/common"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
)

// AdminStore widens Store with the mutations the admin endpoints need.
type AdminStore interface {
	Store
	Insert(ctx context.Context, rule *Rule) error
	List(ctx context.Context) ([]Rule, error)
	Deactivate(ctx context.Context, code string) error
}

// Handler exposes coupon validation and administrative management endpoints.
type Handler struct {
	Resolver *Resolver
	Admin    AdminStore
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type validateRequest struct {
	Code        string   `json:"code"`
	TotalAmount *float64 `json:"totalAmount"`
}

type createRequest struct {
	Code          string    `json:"code" validate:"required"`
	DiscountType  string    `json:"discountType" validate:"required"`
	DiscountValue float64   `json:"discountValue" validate:"gte=0"`
	MaxDiscount   *float64  `json:"maxDiscount" validate:"omitempty,gte=0"`
	ExpiryDate    time.Time `json:"expiryDate" validate:"required"`
}

// ValidateCoupon checks a code against the persisted store and projects the
// discount it would yield on the supplied total.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Resolver == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon resolver not configured", nil)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(req.Code) == "" || req.TotalAmount == nil {
		countValidation("bad_request")
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code and totalAmount are required", nil)
		return
	}
	rule, err := h.Resolver.Resolve(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			countValidation("not_found")
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "invalid or expired coupon", nil)
			return
		}
		countValidation("error")
		h.Logger.Error().Err(err).Msg("resolve coupon")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to validate coupon", nil)
		return
	}
	applied := billing.Project(rule.Discount(), *req.TotalAmount)
	countValidation("ok")
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"code":           rule.Code,
			"type":           applied.Type,
			"discountAmount": applied.Amount,
			"finalAmount":    applied.FinalAmount,
		},
	})
}

// Create inserts a new coupon rule. Admin only; the router enforces the gate.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if err := h.validate().Struct(req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code, discountType and expiryDate are required", nil)
		return
	}
	discountType, ok := billing.ParseDiscountType(req.DiscountType)
	if !ok {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "discountType must be percentage or fixed", nil)
		return
	}
	rule := Rule{
		Code:          Canonical(req.Code),
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		IsActive:      true,
		ExpiryDate:    req.ExpiryDate,
	}
	if err := h.Admin.Insert(r.Context(), &rule); err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "coupon code already exists", nil)
			return
		}
		h.Logger.Error().Err(err).Msg("create coupon")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create coupon", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": rule})
}

// List returns all coupon rules for administrative review.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	rules, err := h.Admin.List(r.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("list coupons")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list coupons", nil)
		return
	}
	if rules == nil {
		rules = []Rule{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": rules})
}

// DeactivateByCode flips a coupon inactive without deleting its record.
func (h *Handler) DeactivateByCode(w http.ResponseWriter, r *http.Request) {
	if h.Admin == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	code := Canonical(chi.URLParam(r, "code"))
	if code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	if err := h.Admin.Deactivate(r.Context(), code); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "coupon not found", nil)
			return
		}
		h.Logger.Error().Err(err).Msg("deactivate coupon")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to deactivate coupon", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"code": code, "isActive": false}})
}

func (h *Handler) validate() *validator.Validate {
	if h.Validate != nil {
		return h.Validate
	}
	return validator.New()
}

func countValidation(result string) {
	if obs.CouponValidationsTotal != nil {
		obs.CouponValidationsTotal.WithLabelValues(result).Inc()
	}
}
