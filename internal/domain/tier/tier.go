// Package tier defines the operator-editable threshold table and the
// classification of member contributions against it.
package tier

import (
	"strconv"
	"strings"
)

// BelowStandard is the sentinel tier for members clearing no rule.
const BelowStandard = "未達會員標準"

// Rule is one row of the threshold table. A member qualifies when both
// contributions meet the row's minimums.
type Rule struct {
	Label       string `json:"label"`
	MinCoins    int    `json:"min_coins"`
	MinActivity int    `json:"min_activity"`
}

// Table is an ordered sequence of rules, ascending by requirement. The
// order is exactly the operator's table order; Classify never re-sorts it,
// so keeping it ascending is the operator's responsibility.
type Table []Rule

// DefaultTable returns the stock guild tier table.
func DefaultTable() Table {
	return Table{
		{Label: "3普寶", MinCoins: 300, MinActivity: 300},
		{Label: "2高寶", MinCoins: 1000, MinActivity: 1500},
		{Label: "1稀寶", MinCoins: 3000, MinActivity: 3000},
		{Label: "2稀寶", MinCoins: 5000, MinActivity: 6000},
		{Label: "至尊", MinCoins: 5000, MinActivity: 15000},
	}
}

// Classify scans the table from the last entry backward and returns the
// label of the first rule both contributions satisfy, so a member lands on
// the highest tier it clears. No rule matching yields BelowStandard.
func (t Table) Classify(coins, activity float64) string {
	for i := len(t) - 1; i >= 0; i-- {
		rule := t[i]
		if coins >= float64(rule.MinCoins) && activity >= float64(rule.MinActivity) {
			return rule.Label
		}
	}
	return BelowStandard
}

// Labels returns the sentinel followed by the table's labels in order.
func (t Table) Labels() []string {
	out := make([]string, 0, len(t)+1)
	out = append(out, BelowStandard)
	for _, rule := range t {
		out = append(out, rule.Label)
	}
	return out
}

// Clone returns an independent copy of the table.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// CoerceThreshold converts an operator-edited free-text cell into a
// non-negative integer threshold. Accepts surrounding whitespace.
func CoerceThreshold(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrBadThreshold
	}
	if n < 0 {
		return 0, ErrBadThreshold
	}
	return n, nil
}
