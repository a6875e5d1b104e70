package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/cart"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

var testNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func seededStore(t *testing.T) *cart.MemoryStore {
	t.Helper()
	s := cart.NewMemoryStore()
	s.Add("r1",
		cart.MenuItem{
			ID:        "burger",
			Names:     map[string]string{"en": "Burger", "zh": "漢堡"},
			BasePrice: 500,
		},
		&cart.SelectedOption{
			ID:         "large",
			Names:      map[string]string{"en": "Large"},
			PriceDelta: 200,
		},
		nil, 2)
	return s
}

func deliverySelection() DeliverySelection {
	return DeliverySelection{
		Method:  MethodDelivery,
		Timing:  TimingImmediate,
		Address: "123 Main St, Vancouver",
	}
}

func TestBuildOrderPayload_DeliveryScenario(t *testing.T) {
	// Burger $5.00 + Large $2.00, quantity 2, delivery $4.99, tax 5%, tip 15%
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	p, err := agg.BuildOrderPayload("r1", deliverySelection(), TipPercent(15), "tok_123", "en")
	require.NoError(t, err)

	assert.Equal(t, money.Money(1400), p.Totals.Subtotal)
	assert.Equal(t, money.Money(499), p.Totals.DeliveryFee)
	assert.Equal(t, money.Money(70), p.Totals.Taxes)
	assert.Equal(t, money.Money(210), p.Totals.Tip)
	assert.Equal(t, money.Money(2179), p.Totals.GrandTotal)

	require.Len(t, p.Items, 1)
	assert.Equal(t, "Burger", p.Items[0].Name)
	assert.Equal(t, "Large", p.Items[0].OptionName)
	assert.Equal(t, money.Money(200), p.Items[0].OptionDelta)
	assert.Equal(t, 2, p.Items[0].Quantity)
	assert.Equal(t, money.Money(1400), p.Items[0].LineTotal)

	assert.NotEmpty(t, p.IdempotencyKey)
	assert.Equal(t, "tok_123", p.PaymentMethodToken)
	assert.Equal(t, testNow, p.CreatedAt)
}

func TestBuildOrderPayload_PickupHasNoFeeAndNeedsNoAddress(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	p, err := agg.BuildOrderPayload("r1",
		DeliverySelection{Method: MethodPickup, Timing: TimingImmediate},
		TipSelection{}, "tok_123", "en")
	require.NoError(t, err)

	assert.Equal(t, money.Money(0), p.Totals.DeliveryFee)
	assert.Equal(t, money.Money(0), p.Totals.Tip)
	assert.Equal(t, money.Money(1400+70), p.Totals.GrandTotal)
}

func TestBuildOrderPayload_EmptyCart(t *testing.T) {
	agg := NewAggregator(cart.NewMemoryStore(), DefaultPricing, fixedNow)

	_, err := agg.BuildOrderPayload("r1", deliverySelection(), TipSelection{}, "tok_123", "en")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderPayload_DeliveryWithoutAddress(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	sel := deliverySelection()
	sel.Address = "   "
	_, err := agg.BuildOrderPayload("r1", sel, TipSelection{}, "tok_123", "en")
	assert.ErrorIs(t, err, ErrMissingAddress)
}

func TestBuildOrderPayload_ScheduleMustBeFuture(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	sel := deliverySelection()
	sel.Timing = TimingScheduled

	sel.ScheduledAt = testNow.Add(-time.Hour)
	_, err := agg.BuildOrderPayload("r1", sel, TipSelection{}, "tok_123", "en")
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	// exactly now is still invalid: strictly in the future
	sel.ScheduledAt = testNow
	_, err = agg.BuildOrderPayload("r1", sel, TipSelection{}, "tok_123", "en")
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	sel.ScheduledAt = testNow.Add(30 * time.Minute)
	_, err = agg.BuildOrderPayload("r1", sel, TipSelection{}, "tok_123", "en")
	assert.NoError(t, err)
}

func TestBuildOrderPayload_MissingPaymentMethod(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	_, err := agg.BuildOrderPayload("r1", deliverySelection(), TipSelection{}, "", "en")
	assert.ErrorIs(t, err, ErrMissingPaymentMethod)
}

func TestBuildOrderPayload_FreshIdempotencyKeyPerAttempt(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	p1, err := agg.BuildOrderPayload("r1", deliverySelection(), TipSelection{}, "tok_123", "en")
	require.NoError(t, err)
	p2, err := agg.BuildOrderPayload("r1", deliverySelection(), TipSelection{}, "tok_123", "en")
	require.NoError(t, err)

	assert.NotEqual(t, p1.IdempotencyKey, p2.IdempotencyKey)
}

func TestBuildOrderPayload_DenormalizedFromLiveMenu(t *testing.T) {
	store := seededStore(t)
	agg := NewAggregator(store, DefaultPricing, fixedNow)

	p, err := agg.BuildOrderPayload("r1", deliverySelection(), TipSelection{}, "tok_123", "zh")
	require.NoError(t, err)

	// zh name resolved at order time
	assert.Equal(t, "漢堡", p.Items[0].Name)
	// option has no zh name, falls back to en
	assert.Equal(t, "Large", p.Items[0].OptionName)

	// mutating the cart afterwards does not touch the payload
	store.Clear("r1")
	assert.Equal(t, money.Money(1400), p.Totals.Subtotal)
	assert.Len(t, p.Items, 1)
}

func TestTotals_RecomputedPerSelection(t *testing.T) {
	agg := NewAggregator(seededStore(t), DefaultPricing, fixedNow)

	withDelivery := agg.Totals("r1", deliverySelection(), TipPercent(15))
	pickup := agg.Totals("r1", DeliverySelection{Method: MethodPickup, Timing: TimingImmediate}, TipCustom(100))

	assert.Equal(t, money.Money(2179), withDelivery.GrandTotal)
	assert.Equal(t, money.Money(1400+70+100), pickup.GrandTotal)

	// grand total is an exact sum of its parts
	for _, tt := range []OrderTotals{withDelivery, pickup} {
		assert.Equal(t, tt.Subtotal+tt.DeliveryFee+tt.Taxes+tt.Tip, tt.GrandTotal)
	}
}
