package transaction

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TypeTotal aggregates one transaction type over a period.
type TypeTotal struct {
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	AvgAmount decimal.Decimal `json:"avgAmount"`
}

// CategoryTotal aggregates one (type, category) group over a period.
type CategoryTotal struct {
	Type     Type            `json:"type"`
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// Report is the canonical aggregation result shape. Backend-specific
// reshaping belongs in store adapters, never here.
type Report struct {
	Income     TypeTotal       `json:"income"`
	Expense    TypeTotal       `json:"expense"`
	Balance    decimal.Decimal `json:"balance"`
	ByCategory []CategoryTotal `json:"byCategory"`
	Recent     []*Transaction  `json:"recentTransactions"`
}

// RecentLimit is how many most-recent transactions a report carries as a
// convenience slice.
const RecentLimit = 5

// Summarize restricts the input to transactions whose date falls within the
// range (inclusive on both ends) and computes the period report. An empty
// input yields zero totals and empty slices, never an error.
//
// The type axis is never sparse: both income and expense entries are always
// present, zero-valued when nothing matched. Category groups are ordered by
// total descending; ties break by category name ascending so the output is
// deterministic.
func Summarize(transactions []*Transaction, period DateRange) Report {
	inRange := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		if period.Contains(t.Date) {
			inRange = append(inRange, t)
		}
	}

	report := Report{
		ByCategory: []CategoryTotal{},
		Recent:     []*Transaction{},
	}

	type groupKey struct {
		t Type
		c Category
	}
	groups := make(map[groupKey]*CategoryTotal)
	var groupOrder []groupKey

	for _, t := range inRange {
		switch t.Type {
		case TypeIncome:
			report.Income.Total = report.Income.Total.Add(t.Amount)
			report.Income.Count++
		case TypeExpense:
			report.Expense.Total = report.Expense.Total.Add(t.Amount)
			report.Expense.Count++
		}

		key := groupKey{t: t.Type, c: t.Category}
		group, ok := groups[key]
		if !ok {
			group = &CategoryTotal{Type: t.Type, Category: t.Category}
			groups[key] = group
			groupOrder = append(groupOrder, key)
		}
		group.Total = group.Total.Add(t.Amount)
		group.Count++
	}

	if report.Income.Count > 0 {
		report.Income.AvgAmount = report.Income.Total.Div(decimal.NewFromInt(int64(report.Income.Count)))
	}
	if report.Expense.Count > 0 {
		report.Expense.AvgAmount = report.Expense.Total.Div(decimal.NewFromInt(int64(report.Expense.Count)))
	}

	report.Balance = report.Income.Total.Sub(report.Expense.Total)

	for _, key := range groupOrder {
		report.ByCategory = append(report.ByCategory, *groups[key])
	}
	sort.SliceStable(report.ByCategory, func(i, j int) bool {
		a, b := report.ByCategory[i], report.ByCategory[j]
		if !a.Total.Equal(b.Total) {
			return a.Total.GreaterThan(b.Total)
		}
		return a.Category < b.Category
	})

	recent := SortByDateDesc(inRange)
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	report.Recent = recent

	return report
}
