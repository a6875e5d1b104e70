package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineItemKey_ModifierOrderIrrelevant(t *testing.T) {
	a := LineItemKey("burger", "large", []string{"extra-sauce", "bacon"})
	b := LineItemKey("burger", "large", []string{"bacon", "extra-sauce"})
	assert.Equal(t, a, b)
}

func TestLineItemKey_DistinguishesComponents(t *testing.T) {
	base := LineItemKey("burger", "large", []string{"bacon"})

	assert.NotEqual(t, base, LineItemKey("pizza", "large", []string{"bacon"}))
	assert.NotEqual(t, base, LineItemKey("burger", "small", []string{"bacon"}))
	assert.NotEqual(t, base, LineItemKey("burger", "large", []string{"bacon", "extra-sauce"}))
	assert.NotEqual(t, base, LineItemKey("burger", "large", nil))
}

func TestLineItemKey_NoOptionNoModifiers(t *testing.T) {
	assert.Equal(t, "burger||", LineItemKey("burger", "", nil))
}

func TestLineItemKey_DoesNotMutateInput(t *testing.T) {
	ids := []string{"z", "a"}
	LineItemKey("burger", "", ids)
	assert.Equal(t, []string{"z", "a"}, ids)
}
