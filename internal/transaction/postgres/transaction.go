package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/nicdiaze/Finances/internal"
	"github.com/nicdiaze/Finances/internal/transaction"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// record is the persistence shape of a transaction. Reshaping between the
// store and the canonical domain type happens here, never in the
// aggregation engine.
type record struct {
	ID          string          `gorm:"primaryKey;type:uuid"`
	Amount      decimal.Decimal `gorm:"not null;type:numeric(14,2)"`
	Description string          `gorm:"not null;size:200"`
	Category    string          `gorm:"not null;index"`
	Type        string          `gorm:"not null;index"`
	Date        time.Time       `gorm:"not null;index"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (record) TableName() string {
	return "transactions"
}

func toRecord(t *transaction.Transaction) *record {
	return &record{
		ID:          t.ID,
		Amount:      t.Amount,
		Description: t.Description,
		Category:    string(t.Category),
		Type:        string(t.Type),
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toDomain(r *record) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          r.ID,
		Amount:      r.Amount,
		Description: r.Description,
		Category:    transaction.Category(r.Category),
		Type:        transaction.Type(r.Type),
		Date:        r.Date,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainSlice(recs []*record) []*transaction.Transaction {
	out := make([]*transaction.Transaction, len(recs))
	for i, r := range recs {
		out[i] = toDomain(r)
	}
	return out
}

// TransactionRepository implements transaction.Repository using GORM.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &TransactionRepository{db: db}
}

// Create persists a new transaction and assigns its identifier.
func (r *TransactionRepository) Create(t *transaction.Transaction) error {
	rec := toRecord(t)
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := r.db.Create(rec).Error; err != nil {
		return err
	}
	t.ID = rec.ID
	return nil
}

func (r *TransactionRepository) GetByID(id string) (*transaction.Transaction, error) {
	var rec record
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, err
	}
	return toDomain(&rec), nil
}

func (r *TransactionRepository) Update(t *transaction.Transaction) error {
	result := r.db.Model(&record{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"amount":      t.Amount,
			"description": t.Description,
			"category":    string(t.Category),
			"type":        string(t.Type),
			"date":        t.Date,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Delete removes the record permanently. There is no tombstone.
func (r *TransactionRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&record{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so the search term matches as
// a literal substring, the same containment check Criteria.Matches does.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Query is the SQL translation of transaction.Criteria: the same AND
// semantics and date bounds as Criteria.Matches, pushed down to the store.
// Results are ordered date descending with id as the deterministic
// tie-break, matching the pagination layer's contract.
func (r *TransactionRepository) Query(criteria transaction.Criteria, limit, offset int) ([]*transaction.Transaction, int64, error) {
	q := r.db.Model(&record{})

	if criteria.Type != "" {
		q = q.Where("type = ?", string(criteria.Type))
	}
	if criteria.Category != "" {
		q = q.Where("category = ?", string(criteria.Category))
	}
	if period, ok := criteria.Range(); ok {
		q = q.Where("date >= ? AND date <= ?", period.From, period.To)
	}
	if criteria.Search != "" {
		q = q.Where("LOWER(description) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(criteria.Search))+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recs []*record
	err := q.Order("date DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainSlice(recs), total, nil
}

// InRange returns every transaction inside the period, date descending,
// for the aggregation engine.
func (r *TransactionRepository) InRange(period transaction.DateRange) ([]*transaction.Transaction, error) {
	var recs []*record
	err := r.db.Where("date >= ? AND date <= ?", period.From, period.To).
		Order("date DESC").
		Order("id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toDomainSlice(recs), nil
}
