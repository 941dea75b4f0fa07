package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	before   time.Time
	modified int64
	err      error
}

func (r *recordingStore) DeactivateExpired(_ context.Context, before time.Time) (int64, error) {
	r.before = before
	return r.modified, r.err
}

func TestSweepPassesCurrentInstant(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := &recordingStore{modified: 3}
	sweeper := CouponSweeper{
		Store:  store,
		Logger: zerolog.Nop(),
		Now:    func() time.Time { return fixed },
	}

	err := sweeper.HandleCouponExpirySweep(context.Background(), NewCouponExpirySweepTask())
	require.NoError(t, err)
	require.Equal(t, fixed, store.before)
}

func TestSweepPropagatesStoreError(t *testing.T) {
	store := &recordingStore{err: errors.New("mongo down")}
	sweeper := CouponSweeper{Store: store, Logger: zerolog.Nop()}

	err := sweeper.HandleCouponExpirySweep(context.Background(), NewCouponExpirySweepTask())
	require.Error(t, err)
}
