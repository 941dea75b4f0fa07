package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/common"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/coupon"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
)

// Repo is the persistence collaborator consumed by the handlers.
type Repo interface {
	Insert(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID string) ([]Order, error)
}

// Handler exposes bill quoting and order placement endpoints.
type Handler struct {
	Repo     Repo
	Resolver *coupon.Resolver
	Logger   zerolog.Logger
}

type cartRequest struct {
	Items      []billing.LineItem `json:"items"`
	CouponCode string             `json:"couponCode"`
}

// Quote computes the bill for a cart without persisting anything. An
// unresolvable coupon code is a not-found signal, distinct from a cart that
// simply carries no coupon.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	bill, err := h.computeBill(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": bill})
}

// Place persists an order with a server-computed bill. The client never
// supplies totals; the cart is re-priced here.
func (h *Handler) Place(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order repo not configured", nil)
		return
	}
	identity, ok := common.IdentityFromContext(r.Context())
	if !ok || strings.TrimSpace(identity.UserID) == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
		return
	}
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if len(req.Items) == 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "items are required", nil)
		return
	}
	bill, err := h.computeBill(r.Context(), req)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	o := Order{
		UserID:     identity.UserID,
		Items:      req.Items,
		CouponCode: coupon.Canonical(req.CouponCode),
		Bill:       bill,
		Status:     StatusPlaced,
	}
	if err := h.Repo.Insert(r.Context(), &o); err != nil {
		h.Logger.Error().Err(err).Msg("insert order")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to place order", nil)
		return
	}
	if obs.OrdersPlacedTotal != nil {
		obs.OrdersPlacedTotal.Inc()
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": o})
}

// List returns the caller's order history.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "order repo not configured", nil)
		return
	}
	identity, ok := common.IdentityFromContext(r.Context())
	if !ok || strings.TrimSpace(identity.UserID) == "" {
		common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid token", nil)
		return
	}
	orders, err := h.Repo.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("list orders")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load orders", nil)
		return
	}
	if orders == nil {
		orders = []Order{}
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": orders})
}

func (h *Handler) computeBill(ctx context.Context, req cartRequest) (billing.BillResult, error) {
	var rule *billing.DiscountRule
	if strings.TrimSpace(req.CouponCode) != "" {
		if h.Resolver == nil {
			return billing.BillResult{}, common.Internal("coupon resolver not configured", nil)
		}
		resolved, err := h.Resolver.Resolve(ctx, req.CouponCode)
		if err != nil {
			if errors.Is(err, coupon.ErrNotFound) {
				return billing.BillResult{}, common.NotFound("invalid or expired coupon")
			}
			h.Logger.Error().Err(err).Msg("resolve coupon for bill")
			return billing.BillResult{}, common.Internal("unable to validate coupon", err)
		}
		discount := resolved.Discount()
		rule = &discount
	}
	bill := billing.Compute(req.Items, rule)
	if obs.BillsComputedTotal != nil {
		obs.BillsComputedTotal.WithLabelValues(boolLabel(rule != nil)).Inc()
	}
	return bill, nil
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
