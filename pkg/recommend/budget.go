package recommend

import "math"

// BudgetRange is an inclusive interval in display currency.
type BudgetRange struct {
	Label string
	Min   float64
	Max   float64
}

func (r BudgetRange) Contains(amount float64) bool {
	return amount >= r.Min && amount <= r.Max
}

var Unbounded = BudgetRange{Label: "", Min: 0, Max: math.Inf(1)}

// DefaultBudgets is the kiosk's budget picker, in INR.
var DefaultBudgets = []BudgetRange{
	{Label: "Under ₹8,000", Min: 0, Max: 8000},
	{Label: "₹8,000–₹25,000", Min: 8000, Max: 25000},
	{Label: "₹25,000–₹65,000", Min: 25000, Max: 65000},
	{Label: "₹65,000+", Min: 65000, Max: 1e9},
}

// ResolveBudget maps a label to its range. Unknown labels resolve to Unbounded.
func ResolveBudget(budgets []BudgetRange, label string) BudgetRange {
	for _, b := range budgets {
		if b.Label == label {
			return b
		}
	}
	return Unbounded
}
