package checkout

import (
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

// Preset tip percentages offered by the UI.
const (
	TipPercentLow    = 10
	TipPercentMedium = 15
	TipPercentHigh   = 20
)

// TipSelection is either a percentage of the pre-tip subtotal or a custom
// absolute amount. The two are mutually exclusive: setting one clears the
// other, last write wins.
type TipSelection struct {
	percent   int
	custom    money.Money
	hasCustom bool
}

// TipPercent selects a percentage tip.
func TipPercent(pct int) TipSelection {
	var t TipSelection
	t.SetPercent(pct)
	return t
}

// TipCustom selects a fixed tip amount.
func TipCustom(amount money.Money) TipSelection {
	var t TipSelection
	t.SetCustom(amount)
	return t
}

// SetPercent selects a percentage tip and clears any custom amount.
// Negative values clamp to 0 (no tip).
func (t *TipSelection) SetPercent(pct int) {
	if pct < 0 {
		pct = 0
	}
	t.percent = pct
	t.custom = 0
	t.hasCustom = false
}

// SetCustom selects a fixed tip amount and clears any percentage.
// Negative values clamp to 0.
func (t *TipSelection) SetCustom(amount money.Money) {
	if amount < 0 {
		amount = 0
	}
	t.custom = amount
	t.hasCustom = true
	t.percent = 0
}

// Amount resolves the tip against the pre-tip subtotal.
func (t TipSelection) Amount(base money.Money) money.Money {
	if t.hasCustom {
		return t.custom
	}
	return money.Percent(base, int64(t.percent))
}

// IsCustom reports whether a custom amount is active.
func (t TipSelection) IsCustom() bool { return t.hasCustom }

// Percent returns the active percentage, 0 when a custom amount is set.
func (t TipSelection) Percent() int { return t.percent }
