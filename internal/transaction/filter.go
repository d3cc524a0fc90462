package transaction

import (
	"strings"
	"time"

	errors "github.com/nicdiaze/Finances/internal"
)

// DateRange is an inclusive period bound used by filtering and aggregation.
type DateRange struct {
	From time.Time
	To   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && !t.After(r.To)
}

// MonthRange spans the first instant of day 1 through 23:59:59 of the last
// calendar day of the month, accounting for variable month lengths and
// leap years.
func MonthRange(year, month int) DateRange {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Second)
	return DateRange{From: from, To: to}
}

// YearRange spans January 1 00:00:00 through December 31 23:59:59.
func YearRange(year int) DateRange {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return DateRange{From: from, To: to}
}

// Criteria is the single description of a filtered transaction query. All
// fields are optional; supplied criteria combine with logical AND. The
// in-memory Apply below and the SQL translation in the postgres package
// both derive from the same value, so the predicate logic lives here only.
type Criteria struct {
	Type     Type
	Category Category
	Month    int
	Year     int
	Search   string
}

func (c Criteria) Empty() bool {
	return c.Type == "" && c.Category == "" && c.Month == 0 && c.Year == 0 && c.Search == ""
}

// Validate rejects impossible criteria. A month without a year is refused
// rather than guessed: "this month across all years" is not a supported
// query shape.
func (c Criteria) Validate() *errors.AppError {
	if c.Type != "" && !c.Type.Valid() {
		return errors.NewValidationFieldError("type", "unknown transaction type", errors.ErrCodeInvalidType)
	}
	if c.Month != 0 && (c.Month < 1 || c.Month > 12) {
		return errors.NewValidationFieldError("month", "month must be between 1 and 12", errors.ErrCodeInvalidPeriod)
	}
	if c.Year != 0 && (c.Year < 1000 || c.Year > 9999) {
		return errors.NewValidationFieldError("year", "year must be a 4-digit number", errors.ErrCodeInvalidPeriod)
	}
	if c.Month != 0 && c.Year == 0 {
		return errors.NewValidationFieldError("month", "month filter requires a year", errors.ErrCodeInvalidPeriod)
	}
	return nil
}

// Range returns the date bounds implied by Month/Year, or false when the
// criteria carry no period constraint.
func (c Criteria) Range() (DateRange, bool) {
	switch {
	case c.Year != 0 && c.Month != 0:
		return MonthRange(c.Year, c.Month), true
	case c.Year != 0:
		return YearRange(c.Year), true
	default:
		return DateRange{}, false
	}
}

// Matches reports whether a single transaction satisfies every supplied
// criterion.
func (c Criteria) Matches(t *Transaction) bool {
	if c.Type != "" && t.Type != c.Type {
		return false
	}
	if c.Category != "" && t.Category != c.Category {
		return false
	}
	if r, ok := c.Range(); ok && !r.Contains(t.Date) {
		return false
	}
	if c.Search != "" {
		if !strings.Contains(strings.ToLower(t.Description), strings.ToLower(c.Search)) {
			return false
		}
	}
	return true
}

// Apply filters the candidate set. Pure and deterministic: the result
// preserves the input's relative order and the input is never mutated.
func (c Criteria) Apply(transactions []*Transaction) []*Transaction {
	matched := make([]*Transaction, 0, len(transactions))
	for _, t := range transactions {
		if c.Matches(t) {
			matched = append(matched, t)
		}
	}
	return matched
}
