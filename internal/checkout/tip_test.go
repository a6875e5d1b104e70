package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
)

func TestTipSelection_PercentClearsCustom(t *testing.T) {
	var tip TipSelection

	tip.SetCustom(300)
	tip.SetPercent(TipPercentMedium)

	assert.False(t, tip.IsCustom())
	assert.Equal(t, 15, tip.Percent())
	// 15% of $14.00 = $2.10, the earlier $3.00 custom amount is gone
	assert.Equal(t, money.Money(210), tip.Amount(1400))
}

func TestTipSelection_CustomClearsPercent(t *testing.T) {
	var tip TipSelection

	tip.SetPercent(TipPercentHigh)
	tip.SetCustom(300)

	assert.True(t, tip.IsCustom())
	assert.Equal(t, 0, tip.Percent())
	assert.Equal(t, money.Money(300), tip.Amount(1400))
}

func TestTipSelection_Zero(t *testing.T) {
	var tip TipSelection
	assert.Equal(t, money.Money(0), tip.Amount(1400))
}

func TestTipSelection_CustomZeroOverridesPercent(t *testing.T) {
	tip := TipPercent(TipPercentLow)
	tip.SetCustom(0)
	assert.Equal(t, money.Money(0), tip.Amount(1400))
}

func TestTipSelection_ClampsNegative(t *testing.T) {
	var tip TipSelection

	tip.SetPercent(-10)
	assert.Equal(t, money.Money(0), tip.Amount(1400))

	tip.SetCustom(-500)
	assert.Equal(t, money.Money(0), tip.Amount(1400))
}
