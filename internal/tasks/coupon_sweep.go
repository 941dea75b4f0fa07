package tasks

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
)

// TypeCouponExpirySweep identifies the periodic job that deactivates expired
// coupons. The resolver already treats past-expiry rules as unusable, so the
// sweep only keeps the stored flags honest for admin listings and indexes.
const TypeCouponExpirySweep = "coupon:expiry_sweep"

// NewCouponExpirySweepTask builds the sweep task with no payload.
func NewCouponExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TypeCouponExpirySweep, nil)
}

// ExpiryStore is the persistence hook the sweeper needs.
type ExpiryStore interface {
	DeactivateExpired(ctx context.Context, before time.Time) (int64, error)
}

// CouponSweeper handles expiry sweep tasks.
type CouponSweeper struct {
	Store  ExpiryStore
	Logger zerolog.Logger
	Now    func() time.Time
}

// HandleCouponExpirySweep deactivates every coupon whose expiry has passed.
func (s CouponSweeper) HandleCouponExpirySweep(ctx context.Context, _ *asynq.Task) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	modified, err := s.Store.DeactivateExpired(ctx, now)
	if err != nil {
		s.Logger.Error().Err(err).Msg("coupon expiry sweep")
		return err
	}
	if modified > 0 {
		if obs.CouponSweepDeactivated != nil {
			obs.CouponSweepDeactivated.Add(float64(modified))
		}
		s.Logger.Info().Int64("deactivated", modified).Msg("coupon expiry sweep")
	}
	return nil
}
