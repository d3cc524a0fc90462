package transaction_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nicdiaze/Finances/internal/transaction"
)

var _ = Describe("Paginate", func() {
	// 45 transactions, one per day backwards from Feb 14 2024.
	makeSet := func(n int) []*transaction.Transaction {
		set := make([]*transaction.Transaction, 0, n)
		for i := 0; i < n; i++ {
			set = append(set, makeTransaction(
				fmt.Sprintf("tx-%02d", i), "Daily spend", transaction.TypeExpense, transaction.CategoryFood, "5",
				day(2024, time.February, 14).AddDate(0, 0, -i)))
		}
		return set
	}

	It("slices the date-descending order into fixed windows", func() {
		set := makeSet(45)

		first := transaction.Paginate(set, 1, 20)
		Expect(first.Items).To(HaveLen(20))
		Expect(first.CurrentPage).To(Equal(1))
		Expect(first.TotalPages).To(Equal(3))
		Expect(first.TotalCount).To(Equal(45))
		Expect(first.Items[0].ID).To(Equal("tx-00"))

		last := transaction.Paginate(set, 3, 20)
		Expect(last.Items).To(HaveLen(5))
		Expect(last.Items[4].ID).To(Equal("tx-44"))
	})

	It("rounds total pages up", func() {
		Expect(transaction.Paginate(makeSet(40), 1, 20).TotalPages).To(Equal(2))
		Expect(transaction.Paginate(makeSet(41), 1, 20).TotalPages).To(Equal(3))
		Expect(transaction.Paginate(nil, 1, 20).TotalPages).To(Equal(0))
	})

	It("returns empty items with intact metadata for a page beyond the last", func() {
		page := transaction.Paginate(makeSet(30), 99, 20)

		Expect(page.Items).To(BeEmpty())
		Expect(page.Items).ToNot(BeNil())
		Expect(page.CurrentPage).To(Equal(99))
		Expect(page.TotalPages).To(Equal(2))
		Expect(page.TotalCount).To(Equal(30))
	})

	It("concatenates pages back into the full sorted set without overlap", func() {
		set := makeSet(45)
		sorted := transaction.SortByDateDesc(set)

		var rebuilt []*transaction.Transaction
		for p := 1; p <= 3; p++ {
			rebuilt = append(rebuilt, transaction.Paginate(set, p, 20).Items...)
		}

		Expect(rebuilt).To(HaveLen(len(sorted)))
		for i := range sorted {
			Expect(rebuilt[i].ID).To(Equal(sorted[i].ID))
		}
	})

	It("falls back to defaults for out-of-range page and size", func() {
		page := transaction.Paginate(makeSet(25), 0, 0)

		Expect(page.CurrentPage).To(Equal(1))
		Expect(page.Items).To(HaveLen(transaction.DefaultPageSize))
		Expect(page.TotalPages).To(Equal(2))
	})
})

var _ = Describe("SortByDateDesc", func() {
	It("orders most recent first and breaks date ties by ID", func() {
		tied := day(2024, time.March, 10)
		set := []*transaction.Transaction{
			makeTransaction("b", "Second", transaction.TypeExpense, transaction.CategoryFood, "1", tied),
			makeTransaction("c", "Third", transaction.TypeExpense, transaction.CategoryFood, "1", tied),
			makeTransaction("a", "First", transaction.TypeExpense, transaction.CategoryFood, "1", tied),
			makeTransaction("d", "Newest", transaction.TypeExpense, transaction.CategoryFood, "1", day(2024, time.March, 11)),
		}

		sorted := transaction.SortByDateDesc(set)

		Expect(sorted[0].ID).To(Equal("d"))
		Expect(sorted[1].ID).To(Equal("a"))
		Expect(sorted[2].ID).To(Equal("b"))
		Expect(sorted[3].ID).To(Equal("c"))
	})

	It("does not mutate its input", func() {
		set := []*transaction.Transaction{
			makeTransaction("x", "Earlier", transaction.TypeExpense, transaction.CategoryFood, "1", day(2024, time.March, 1)),
			makeTransaction("y", "Later", transaction.TypeExpense, transaction.CategoryFood, "1", day(2024, time.March, 2)),
		}

		_ = transaction.SortByDateDesc(set)

		Expect(set[0].ID).To(Equal("x"))
		Expect(set[1].ID).To(Equal("y"))
	})
})
