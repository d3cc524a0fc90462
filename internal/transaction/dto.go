package transaction

import (
	"fmt"
	"time"

	errors "github.com/nicdiaze/Finances/internal"
	"github.com/nicdiaze/Finances/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreateTransactionDTO is the request payload for creating a transaction.
// Date is optional and defaults to the current time.
type CreateTransactionDTO struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Type        Type            `json:"type"`
	Date        time.Time       `json:"date,omitempty"`
}

func (dto CreateTransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("amount", dto.Amount).
		Positive(errors.ErrCodeInvalidAmount)
	v.Field("description", dto.Description).
		Required().
		MaxLength(MaxDescriptionLength, errors.ErrCodeInvalidDescription)
	v.Field("type", string(dto.Type)).
		Required().
		OneOf([]string{string(TypeIncome), string(TypeExpense)}, errors.ErrCodeInvalidType)
	v.Field("category", string(dto.Category)).
		Required()
	if err := v.Validate(); err != nil {
		return err
	}

	// The valid category set depends on the type, so this check only runs
	// once both fields passed their individual validation.
	if !ValidCategory(dto.Type, dto.Category) {
		return errors.NewValidationFieldError("category",
			fmt.Sprintf("category %q is not valid for type %q", dto.Category, dto.Type),
			errors.ErrCodeInvalidCategory)
	}

	return nil
}

// UpdateTransactionDTO carries a partial field set; nil fields are left
// untouched. The type/category pair is re-validated against the merged
// record, never assumed consistent from the client.
type UpdateTransactionDTO struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *Category        `json:"category,omitempty"`
	Type        *Type            `json:"type,omitempty"`
	Date        *time.Time       `json:"date,omitempty"`
}

func (dto UpdateTransactionDTO) Empty() bool {
	return dto.Amount == nil && dto.Description == nil && dto.Category == nil &&
		dto.Type == nil && dto.Date == nil
}

func (dto UpdateTransactionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if dto.Amount != nil {
		v.Field("amount", *dto.Amount).
			Positive(errors.ErrCodeInvalidAmount)
	}
	if dto.Description != nil {
		v.Field("description", *dto.Description).
			Required().
			MaxLength(MaxDescriptionLength, errors.ErrCodeInvalidDescription)
	}
	if dto.Type != nil {
		v.Field("type", string(*dto.Type)).
			Required().
			OneOf([]string{string(TypeIncome), string(TypeExpense)}, errors.ErrCodeInvalidType)
	}
	if dto.Date != nil {
		v.Field("date", *dto.Date).
			NotZeroTime(errors.ErrCodeInvalidDate)
	}
	return v.Validate()
}

// ApplyTo merges the supplied fields into a copy of t and returns it.
func (dto UpdateTransactionDTO) ApplyTo(t *Transaction) *Transaction {
	merged := *t
	if dto.Amount != nil {
		merged.Amount = *dto.Amount
	}
	if dto.Description != nil {
		merged.Description = *dto.Description
	}
	if dto.Category != nil {
		merged.Category = *dto.Category
	}
	if dto.Type != nil {
		merged.Type = *dto.Type
	}
	if dto.Date != nil {
		merged.Date = *dto.Date
	}
	return &merged
}

// ChangedFields lists the supplied field names, for update events.
func (dto UpdateTransactionDTO) ChangedFields() []string {
	var fields []string
	if dto.Amount != nil {
		fields = append(fields, "amount")
	}
	if dto.Description != nil {
		fields = append(fields, "description")
	}
	if dto.Category != nil {
		fields = append(fields, "category")
	}
	if dto.Type != nil {
		fields = append(fields, "type")
	}
	if dto.Date != nil {
		fields = append(fields, "date")
	}
	return fields
}
