package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CouponValidationsTotal counts coupon validation attempts by outcome.
	CouponValidationsTotal *prometheus.CounterVec
	// MenuWritesTotal counts menu mutation attempts by action and outcome.
	MenuWritesTotal *prometheus.CounterVec
	// OrdersPlacedTotal counts successfully placed orders.
	OrdersPlacedTotal prometheus.Counter
	// BillsComputedTotal counts bill computations, split by coupon usage.
	BillsComputedTotal *prometheus.CounterVec
	// CouponSweepDeactivated counts coupons deactivated by the expiry sweeper.
	CouponSweepDeactivated prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CouponValidationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_validations_total",
			Help:      "Count of coupon validation requests by outcome.",
		}, []string{"result"})
		MenuWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_writes_total",
			Help:      "Count of menu create/update/delete attempts by outcome.",
		}, []string{"action", "result"})
		OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Total number of orders placed.",
		})
		BillsComputedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_computed_total",
			Help:      "Count of bill computations by whether a coupon applied.",
		}, []string{"coupon_applied"})
		CouponSweepDeactivated = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_sweep_deactivated_total",
			Help:      "Number of expired coupons deactivated by the background sweep.",
		})

		mustRegisterCollector(reg, CouponValidationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CouponValidationsTotal = v
			}
		})
		mustRegisterCollector(reg, MenuWritesTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				MenuWritesTotal = v
			}
		})
		mustRegisterCollector(reg, OrdersPlacedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				OrdersPlacedTotal = v
			}
		})
		mustRegisterCollector(reg, BillsComputedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				BillsComputedTotal = v
			}
		})
		mustRegisterCollector(reg, CouponSweepDeactivated, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CouponSweepDeactivated = v
			}
		})
	})
}
