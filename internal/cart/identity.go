package cart

import (
	"sort"
	"strings"
)

// LineItemKey derives the stable merge key for a cart entry from the menu
// item id, the selected option id (empty when none) and the modifier ids.
// Modifier ids are sorted before concatenation, so [A,B] and [B,A] resolve
// to the same line item instead of splitting into duplicate rows.
func LineItemKey(menuItemID, optionID string, modifierIDs []string) string {
	ids := make([]string, len(modifierIDs))
	copy(ids, modifierIDs)
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(menuItemID)
	b.WriteByte('|')
	b.WriteString(optionID)
	b.WriteByte('|')
	b.WriteString(strings.Join(ids, ","))
	return b.String()
}
