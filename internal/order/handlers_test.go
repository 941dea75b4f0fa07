package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/billing"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/common"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/coupon"
)

type fakeRepo struct {
	orders []Order
	err    error
}

func (f *fakeRepo) Insert(_ context.Context, o *Order) error {
	if f.err != nil {
		return f.err
	}
	o.CreatedAt = time.Now()
	f.orders = append(f.orders, *o)
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID string) ([]Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type stubCouponStore struct {
	rules map[string]coupon.Rule
}

func (s *stubCouponStore) FindActive(_ context.Context, code string, at time.Time) (coupon.Rule, error) {
	rule, ok := s.rules[code]
	if !ok || !rule.Usable(at) {
		return coupon.Rule{}, coupon.ErrNotFound
	}
	return rule, nil
}

func newTestHandler(repo *fakeRepo, rules map[string]coupon.Rule) *Handler {
	return &Handler{
		Repo:     repo,
		Resolver: &coupon.Resolver{Store: &stubCouponStore{rules: rules}},
		Logger:   zerolog.Nop(),
	}
}

func authed(r *http.Request, userID string) *http.Request {
	ctx := common.WithIdentity(r.Context(), common.Identity{UserID: userID, Role: "user"})
	return r.WithContext(ctx)
}

func TestQuoteWithoutCoupon(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, nil)

	body := `{"items":[{"price":100,"qty":2},{"price":50,"qty":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/quote", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data billing.BillResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 250.0, resp.Data.Subtotal)
	require.Equal(t, 6.0, resp.Data.ServiceCharge)
	require.Equal(t, 12.5, resp.Data.Tax)
	require.Equal(t, 0.0, resp.Data.Discount)
	require.Equal(t, 268.5, resp.Data.Total)
}

func TestQuoteAppliesCoupon(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour)
	cap := 20.0
	rules := map[string]coupon.Rule{
		"WELCOME10": {
			Code:          "WELCOME10",
			DiscountType:  billing.DiscountPercentage,
			DiscountValue: 10,
			MaxDiscount:   &cap,
			IsActive:      true,
			ExpiryDate:    expiry,
		},
	}
	h := newTestHandler(&fakeRepo{}, rules)

	body := `{"items":[{"price":100,"qty":2},{"price":50,"qty":1}],"couponCode":"welcome10"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/quote", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data billing.BillResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 20.0, resp.Data.Discount)
	require.Equal(t, 248.5, resp.Data.Total)
}

func TestQuoteUnknownCouponIsNotFound(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, nil)

	body := `{"items":[{"price":100,"qty":1}],"couponCode":"NOPE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/billing/quote", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlaceRequiresIdentity(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, nil)

	body := `{"items":[{"price":100,"qty":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Place(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceRequiresItems(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(`{"items":[]}`))
	rec := httptest.NewRecorder()
	h.Place(rec, authed(req, "u-1"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlacePersistsServerComputedBill(t *testing.T) {
	repo := &fakeRepo{}
	h := newTestHandler(repo, nil)

	body := `{"items":[{"price":120,"qty":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Place(rec, authed(req, "u-1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.orders, 1)
	placed := repo.orders[0]
	require.Equal(t, "u-1", placed.UserID)
	require.Equal(t, StatusPlaced, placed.Status)
	require.Equal(t, 240.0, placed.Bill.Subtotal)
	require.Equal(t, 4.0, placed.Bill.ServiceCharge)
	require.Equal(t, 12.0, placed.Bill.Tax)
	require.Equal(t, 256.0, placed.Bill.Total)
}

func TestPlaceCanonicalizesCouponCode(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	rules := map[string]coupon.Rule{
		"FLAT50": {
			Code:          "FLAT50",
			DiscountType:  billing.DiscountFixed,
			DiscountValue: 50,
			IsActive:      true,
			ExpiryDate:    expiry,
		},
	}
	repo := &fakeRepo{}
	h := newTestHandler(repo, rules)

	body := `{"items":[{"price":100,"qty":3}],"couponCode":"  flat50 "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	h.Place(rec, authed(req, "u-2"))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.orders, 1)
	require.Equal(t, "FLAT50", repo.orders[0].CouponCode)
	require.Equal(t, 50.0, repo.orders[0].Bill.Discount)
}

func TestListReturnsOnlyCallersOrders(t *testing.T) {
	repo := &fakeRepo{orders: []Order{
		{UserID: "u-1", Status: StatusPlaced},
		{UserID: "u-2", Status: StatusPlaced},
		{UserID: "u-1", Status: StatusCancelled},
	}}
	h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, authed(req, "u-1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
}

func TestListEmptyHistoryIsEmptyArray(t *testing.T) {
	h := newTestHandler(&fakeRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, authed(req, "u-9"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[]}`, rec.Body.String())
}
