package transaction_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	apperrors "github.com/nicdiaze/Finances/internal"
	"github.com/nicdiaze/Finances/internal/core/events"
	"github.com/nicdiaze/Finances/internal/transaction"
)

// Mock repository for testing
type mockTransactionRepository struct {
	transactions map[string]*transaction.Transaction
	order        []string
	createError  error
	getError     error
	updateError  error
	deleteError  error
	queryError   error
}

func newMockTransactionRepository() *mockTransactionRepository {
	return &mockTransactionRepository{
		transactions: make(map[string]*transaction.Transaction),
	}
}

func (m *mockTransactionRepository) all() []*transaction.Transaction {
	set := make([]*transaction.Transaction, 0, len(m.order))
	for _, id := range m.order {
		set = append(set, m.transactions[id])
	}
	return set
}

func (m *mockTransactionRepository) Create(t *transaction.Transaction) error {
	if m.createError != nil {
		return m.createError
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	m.transactions[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}

func (m *mockTransactionRepository) GetByID(id string) (*transaction.Transaction, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	t, exists := m.transactions[id]
	if !exists {
		return nil, apperrors.ErrTransactionNotFound
	}
	return t, nil
}

func (m *mockTransactionRepository) Update(t *transaction.Transaction) error {
	if m.updateError != nil {
		return m.updateError
	}
	if _, exists := m.transactions[t.ID]; !exists {
		return apperrors.ErrTransactionNotFound
	}
	m.transactions[t.ID] = t
	return nil
}

func (m *mockTransactionRepository) Delete(id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, exists := m.transactions[id]; !exists {
		return apperrors.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockTransactionRepository) Query(criteria transaction.Criteria, limit, offset int) ([]*transaction.Transaction, int64, error) {
	if m.queryError != nil {
		return nil, 0, m.queryError
	}
	filtered := transaction.SortByDateDesc(criteria.Apply(m.all()))
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []*transaction.Transaction{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockTransactionRepository) InRange(period transaction.DateRange) ([]*transaction.Transaction, error) {
	if m.queryError != nil {
		return nil, m.queryError
	}
	var inRange []*transaction.Transaction
	for _, t := range m.all() {
		if period.Contains(t.Date) {
			inRange = append(inRange, t)
		}
	}
	return transaction.SortByDateDesc(inRange), nil
}

// Mock event publisher capturing published events
type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) {
	m.published = append(m.published, event)
}

var _ = Describe("Service", func() {
	var (
		repo    *mockTransactionRepository
		bus     *mockPublisher
		service *transaction.Service
		ctx     context.Context
	)

	newDTO := func() transaction.CreateTransactionDTO {
		return transaction.CreateTransactionDTO{
			Amount:      decimal.NewFromFloat(42.50),
			Description: "Weekly groceries",
			Category:    transaction.CategoryGroceries,
			Type:        transaction.TypeExpense,
			Date:        day(2024, time.March, 5),
		}
	}

	BeforeEach(func() {
		repo = newMockTransactionRepository()
		bus = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = transaction.NewService(repo, bus, logger)
		ctx = context.Background()
	})

	Describe("CreateTransaction", func() {
		It("persists a valid transaction and publishes an event", func() {
			created, err := service.CreateTransaction(ctx, newDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(created.ID).ToNot(BeEmpty())
			Expect(created.Category).To(Equal(transaction.CategoryGroceries))
			Expect(repo.transactions).To(HaveKey(created.ID))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeTransactionCreated))
		})

		It("defaults the date to now when omitted", func() {
			dto := newDTO()
			dto.Date = time.Time{}

			created, err := service.CreateTransaction(ctx, dto)

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Date).To(BeTemporally("~", time.Now(), time.Second))
		})

		It("rejects a zero amount", func() {
			dto := newDTO()
			dto.Amount = decimal.Zero

			_, err := service.CreateTransaction(ctx, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
			Expect(repo.transactions).To(BeEmpty())
			Expect(bus.published).To(BeEmpty())
		})

		It("rejects a category that does not belong to the type", func() {
			dto := newDTO()
			dto.Type = transaction.TypeIncome
			// groceries is an expense category

			_, err := service.CreateTransaction(ctx, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("rejects a description over the length limit", func() {
			dto := newDTO()
			long := make([]byte, transaction.MaxDescriptionLength+1)
			for i := range long {
				long[i] = 'a'
			}
			dto.Description = string(long)

			_, err := service.CreateTransaction(ctx, dto)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("GetTransaction", func() {
		It("rejects a malformed identifier before hitting the store", func() {
			repo.getError = apperrors.NewInternalError("store must not be reached", nil)

			_, err := service.GetTransaction(ctx, "not-a-uuid")

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidID))
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("maps a missing record to not-found, distinct from a bad ID", func() {
			_, err := service.GetTransaction(ctx, uuid.NewString())

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeTransactionNotFound))
			Expect(appErr.StatusCode).To(Equal(404))
		})

		It("returns an existing record", func() {
			created, err := service.CreateTransaction(ctx, newDTO())
			Expect(err).ToNot(HaveOccurred())

			got, err := service.GetTransaction(ctx, created.ID)

			Expect(err).ToNot(HaveOccurred())
			Expect(got.ID).To(Equal(created.ID))
		})
	})

	Describe("UpdateTransaction", func() {
		var existing *transaction.Transaction

		BeforeEach(func() {
			var err error
			existing, err = service.CreateTransaction(ctx, newDTO())
			Expect(err).ToNot(HaveOccurred())
			bus.published = nil
		})

		It("applies a partial field set and leaves the rest intact", func() {
			amount := decimal.NewFromInt(99)
			updated, err := service.UpdateTransaction(ctx, existing.ID, transaction.UpdateTransactionDTO{
				Amount: &amount,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Amount).To(Equal(amount))
			Expect(updated.Description).To(Equal(existing.Description))
			Expect(updated.Category).To(Equal(existing.Category))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeTransactionUpdated))
		})

		It("rejects a type change that leaves a stale category behind", func() {
			incomeType := transaction.TypeIncome
			_, err := service.UpdateTransaction(ctx, existing.ID, transaction.UpdateTransactionDTO{
				Type: &incomeType,
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})

		It("accepts a type change paired with a compatible category", func() {
			incomeType := transaction.TypeIncome
			salary := transaction.CategorySalary
			updated, err := service.UpdateTransaction(ctx, existing.ID, transaction.UpdateTransactionDTO{
				Type:     &incomeType,
				Category: &salary,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Type).To(Equal(transaction.TypeIncome))
			Expect(updated.Category).To(Equal(transaction.CategorySalary))
		})

		It("rejects an empty payload", func() {
			_, err := service.UpdateTransaction(ctx, existing.ID, transaction.UpdateTransactionDTO{})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
			Expect(bus.published).To(BeEmpty())
		})

		It("returns not-found for an absent record", func() {
			amount := decimal.NewFromInt(5)
			_, err := service.UpdateTransaction(ctx, uuid.NewString(), transaction.UpdateTransactionDTO{
				Amount: &amount,
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeTransactionNotFound))
		})
	})

	Describe("DeleteTransaction", func() {
		It("removes an existing record and publishes an event", func() {
			created, err := service.CreateTransaction(ctx, newDTO())
			Expect(err).To(BeNil())
			bus.published = nil

			Expect(service.DeleteTransaction(ctx, created.ID)).To(Succeed())
			Expect(repo.transactions).ToNot(HaveKey(created.ID))
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(events.EventTypeTransactionDeleted))
		})

		It("returns not-found when the record does not exist", func() {
			err := service.DeleteTransaction(ctx, uuid.NewString())

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeTransactionNotFound))
			Expect(bus.published).To(BeEmpty())
		})

		It("rejects a malformed identifier without touching the store", func() {
			repo.deleteError = apperrors.NewInternalError("store must not be reached", nil)

			err := service.DeleteTransaction(ctx, "42")

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(apperrors.ErrCodeInvalidID))
		})
	})

	Describe("ListTransactions", func() {
		BeforeEach(func() {
			for i := 0; i < 30; i++ {
				dto := newDTO()
				dto.Date = day(2024, time.March, 1).AddDate(0, 0, -i)
				_, err := service.CreateTransaction(ctx, dto)
				Expect(err).To(BeNil())
			}
		})

		It("pages the filtered set with totals from before slicing", func() {
			page, err := service.ListTransactions(ctx, transaction.Criteria{}, 2, 20)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(10))
			Expect(page.CurrentPage).To(Equal(2))
			Expect(page.TotalPages).To(Equal(2))
			Expect(page.TotalCount).To(Equal(30))
		})

		It("clamps the page size to the maximum", func() {
			page, err := service.ListTransactions(ctx, transaction.Criteria{}, 1, 5000)

			Expect(err).ToNot(HaveOccurred())
			Expect(page.Items).To(HaveLen(30))
			Expect(page.TotalPages).To(Equal(1))
		})

		It("rejects invalid criteria before querying", func() {
			repo.queryError = apperrors.NewInternalError("store must not be reached", nil)

			_, err := service.ListTransactions(ctx, transaction.Criteria{Month: 13, Year: 2024}, 1, 20)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})

	Describe("Stats", func() {
		BeforeEach(func() {
			seed := []transaction.CreateTransactionDTO{
				{Amount: decimal.NewFromInt(100), Description: "Salary", Category: transaction.CategorySalary, Type: transaction.TypeIncome, Date: day(2024, time.January, 15)},
				{Amount: decimal.NewFromInt(40), Description: "Dinner", Category: transaction.CategoryFood, Type: transaction.TypeExpense, Date: day(2024, time.January, 20)},
				{Amount: decimal.NewFromInt(10), Description: "Lunch", Category: transaction.CategoryFood, Type: transaction.TypeExpense, Date: day(2024, time.February, 1)},
			}
			for _, dto := range seed {
				_, err := service.CreateTransaction(ctx, dto)
				Expect(err).To(BeNil())
			}
		})

		It("scopes the report to the requested month", func() {
			report, period, err := service.Stats(ctx, 2024, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(period.From.Month()).To(Equal(time.January))
			Expect(report.Income.Total).To(Equal(decimal.NewFromInt(100)))
			Expect(report.Expense.Total).To(Equal(decimal.NewFromInt(40)))
			Expect(report.Balance).To(Equal(decimal.NewFromInt(60)))
		})

		It("covers the whole year when month is omitted", func() {
			report, _, err := service.Stats(ctx, 2024, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(report.Expense.Total).To(Equal(decimal.NewFromInt(50)))
			Expect(report.Expense.Count).To(Equal(2))
		})

		It("rejects an out-of-range month", func() {
			_, _, err := service.Stats(ctx, 2024, 13)

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
		})
	})
})
