package transaction_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/nicdiaze/Finances/internal/transaction"
)

func makeTransaction(id, description string, txType transaction.Type, category transaction.Category, amount string, date time.Time) *transaction.Transaction {
	amt, err := decimal.NewFromString(amount)
	Expect(err).ToNot(HaveOccurred())
	return &transaction.Transaction{
		ID:          id,
		Amount:      amt,
		Description: description,
		Category:    category,
		Type:        txType,
		Date:        date,
		CreatedAt:   date,
		UpdatedAt:   date,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

var _ = Describe("Criteria", func() {
	var candidates []*transaction.Transaction

	BeforeEach(func() {
		candidates = []*transaction.Transaction{
			makeTransaction("a1", "Monthly salary", transaction.TypeIncome, transaction.CategorySalary, "2500", day(2024, time.January, 15)),
			makeTransaction("a2", "Coffee shop", transaction.TypeExpense, transaction.CategoryFood, "4.50", day(2024, time.January, 20)),
			makeTransaction("a3", "Bus fare", transaction.TypeExpense, transaction.CategoryTransport, "2.10", day(2024, time.February, 1)),
			makeTransaction("a4", "COFFEE beans", transaction.TypeExpense, transaction.CategoryGroceries, "12.00", day(2023, time.December, 29)),
		}
	})

	Describe("Apply", func() {
		Context("with no criteria", func() {
			It("returns every candidate in input order", func() {
				result := transaction.Criteria{}.Apply(candidates)

				Expect(result).To(HaveLen(4))
				Expect(result[0].ID).To(Equal("a1"))
				Expect(result[3].ID).To(Equal("a4"))
			})
		})

		Context("filtering by type", func() {
			It("keeps only matching transactions, preserving order", func() {
				result := transaction.Criteria{Type: transaction.TypeExpense}.Apply(candidates)

				Expect(result).To(HaveLen(3))
				Expect(result[0].ID).To(Equal("a2"))
				Expect(result[1].ID).To(Equal("a3"))
				Expect(result[2].ID).To(Equal("a4"))
			})
		})

		Context("filtering by category", func() {
			It("matches exactly", func() {
				result := transaction.Criteria{Category: transaction.CategoryFood}.Apply(candidates)

				Expect(result).To(HaveLen(1))
				Expect(result[0].ID).To(Equal("a2"))
			})
		})

		Context("searching by description", func() {
			It("matches case-insensitively by substring", func() {
				result := transaction.Criteria{Search: "coffee"}.Apply(candidates)

				Expect(result).To(HaveLen(2))
				Expect(result[0].Description).To(Equal("Coffee shop"))
				Expect(result[1].Description).To(Equal("COFFEE beans"))
			})

			It("does not match unrelated descriptions", func() {
				result := transaction.Criteria{Search: "taxi"}.Apply(candidates)

				Expect(result).To(BeEmpty())
			})
		})

		Context("filtering by year", func() {
			It("restricts to the full calendar year", func() {
				result := transaction.Criteria{Year: 2024}.Apply(candidates)

				Expect(result).To(HaveLen(3))
				for _, t := range result {
					Expect(t.Date.Year()).To(Equal(2024))
				}
			})
		})

		Context("filtering by month and year", func() {
			It("restricts to that calendar month", func() {
				result := transaction.Criteria{Year: 2024, Month: 1}.Apply(candidates)

				Expect(result).To(HaveLen(2))
				Expect(result[0].ID).To(Equal("a1"))
				Expect(result[1].ID).To(Equal("a2"))
			})

			It("includes the last instant of the month", func() {
				endOfMonth := makeTransaction("b1", "New year's eve dinner", transaction.TypeExpense, transaction.CategoryFood, "80",
					time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC))

				result := transaction.Criteria{Year: 2024, Month: 1}.Apply([]*transaction.Transaction{endOfMonth})

				Expect(result).To(HaveLen(1))
			})

			It("handles leap years", func() {
				leapDay := makeTransaction("b2", "Leap day groceries", transaction.TypeExpense, transaction.CategoryGroceries, "30",
					day(2024, time.February, 29))

				result := transaction.Criteria{Year: 2024, Month: 2}.Apply([]*transaction.Transaction{leapDay})

				Expect(result).To(HaveLen(1))
			})
		})

		Context("combining criteria", func() {
			It("ANDs every supplied criterion", func() {
				criteria := transaction.Criteria{
					Type:   transaction.TypeExpense,
					Year:   2024,
					Month:  1,
					Search: "coffee",
				}

				result := criteria.Apply(candidates)

				Expect(result).To(HaveLen(1))
				Expect(result[0].ID).To(Equal("a2"))
			})
		})

		It("is idempotent", func() {
			criteria := transaction.Criteria{Type: transaction.TypeExpense, Year: 2024}

			once := criteria.Apply(candidates)
			twice := criteria.Apply(once)

			Expect(twice).To(Equal(once))
		})

		It("does not mutate the input", func() {
			before := make([]*transaction.Transaction, len(candidates))
			copy(before, candidates)

			transaction.Criteria{Type: transaction.TypeIncome}.Apply(candidates)

			Expect(candidates).To(Equal(before))
		})
	})

	Describe("Empty", func() {
		It("is true only when no criterion is supplied", func() {
			Expect(transaction.Criteria{}.Empty()).To(BeTrue())
			Expect(transaction.Criteria{Search: "rent"}.Empty()).To(BeFalse())
			Expect(transaction.Criteria{Year: 2024}.Empty()).To(BeFalse())
		})
	})

	Describe("Validate", func() {
		It("accepts empty criteria", func() {
			Expect(transaction.Criteria{}.Validate()).To(BeNil())
		})

		It("rejects an unknown type", func() {
			err := transaction.Criteria{Type: "transfer"}.Validate()

			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("unknown transaction type"))
		})

		It("rejects an out-of-range month", func() {
			err := transaction.Criteria{Year: 2024, Month: 13}.Validate()

			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("month must be between 1 and 12"))
		})

		It("rejects a month without a year", func() {
			err := transaction.Criteria{Month: 5}.Validate()

			Expect(err).ToNot(BeNil())
			Expect(err.Error()).To(ContainSubstring("month filter requires a year"))
		})

		It("rejects a year that is not 4 digits", func() {
			err := transaction.Criteria{Year: 99}.Validate()

			Expect(err).ToNot(BeNil())
		})
	})

	Describe("Range", func() {
		It("spans the whole month including its last second", func() {
			r, ok := transaction.Criteria{Year: 2024, Month: 2}.Range()

			Expect(ok).To(BeTrue())
			Expect(r.From).To(Equal(time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)))
			Expect(r.To).To(Equal(time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC)))
		})

		It("spans the whole year when no month is given", func() {
			r, ok := transaction.Criteria{Year: 2023}.Range()

			Expect(ok).To(BeTrue())
			Expect(r.From).To(Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)))
			Expect(r.To).To(Equal(time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC)))
		})

		It("reports no range without a year", func() {
			_, ok := transaction.Criteria{Search: "rent"}.Range()

			Expect(ok).To(BeFalse())
		})
	})
})
