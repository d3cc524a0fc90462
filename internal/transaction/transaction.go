package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a transaction as money coming in or going out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Category is a sub-classification constrained by the transaction type.
type Category string

const (
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestments Category = "investments"
	CategorySales       Category = "sales"
	CategoryOtherIncome Category = "other-income"

	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryHealth        Category = "health"
	CategoryEntertainment Category = "entertainment"
	CategoryEducation     Category = "education"
	CategoryClothing      Category = "clothing"
	CategoryUtilities     Category = "utilities"
	CategoryTaxes         Category = "taxes"
	CategoryGroceries     Category = "groceries"
	CategoryOtherExpense  Category = "other-expense"
)

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestments,
	CategorySales,
	CategoryOtherIncome,
}

var expenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryHousing,
	CategoryHealth,
	CategoryEntertainment,
	CategoryEducation,
	CategoryClothing,
	CategoryUtilities,
	CategoryTaxes,
	CategoryGroceries,
	CategoryOtherExpense,
}

// CategoriesForType returns the valid category subset for a type.
// Unknown types get an empty set.
func CategoriesForType(t Type) []Category {
	switch t {
	case TypeIncome:
		return incomeCategories
	case TypeExpense:
		return expenseCategories
	default:
		return nil
	}
}

// ValidCategory reports whether c belongs to the subset permitted for t.
func ValidCategory(t Type, c Category) bool {
	for _, allowed := range CategoriesForType(t) {
		if c == allowed {
			return true
		}
	}
	return false
}

const MaxDescriptionLength = 200

// Transaction is a single dated income or expense record. ID is assigned
// by the store on create and immutable afterwards.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Type        Type            `json:"type"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Signed returns the amount with the sign convention used for balances:
// income contributes positively, expense negatively.
func (t *Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

func NewTransaction(dto CreateTransactionDTO) *Transaction {
	date := dto.Date
	if date.IsZero() {
		date = time.Now()
	}

	now := time.Now()
	return &Transaction{
		Amount:      dto.Amount,
		Description: dto.Description,
		Category:    dto.Category,
		Type:        dto.Type,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
