package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/nicdiaze/Finances/internal/transaction"
	transactionstore "github.com/nicdiaze/Finances/internal/transaction/postgres"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample transactions",
	Long:  `Seed the database with sample transactions for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm connection: %v", err)
		}

		if clearData {
			if err := gormDB.Exec("DELETE FROM transactions").Error; err != nil {
				log.Fatalf("failed to clear transactions: %v", err)
			}
			fmt.Println("Cleared existing transactions")
		}

		repo := transactionstore.NewTransactionRepository(gormDB)
		now := time.Now()

		samples := []struct {
			amount      string
			description string
			category    transaction.Category
			txType      transaction.Type
			daysAgo     int
		}{
			{"2500.00", "Monthly salary", transaction.CategorySalary, transaction.TypeIncome, 3},
			{"380.00", "Logo design gig", transaction.CategoryFreelance, transaction.TypeIncome, 10},
			{"120.50", "Dividend payout", transaction.CategoryInvestments, transaction.TypeIncome, 18},
			{"64.30", "Weekly groceries", transaction.CategoryGroceries, transaction.TypeExpense, 1},
			{"18.90", "Lunch downtown", transaction.CategoryFood, transaction.TypeExpense, 2},
			{"42.00", "Monthly transit pass", transaction.CategoryTransport, transaction.TypeExpense, 5},
			{"750.00", "Rent", transaction.CategoryHousing, transaction.TypeExpense, 6},
			{"95.40", "Electricity bill", transaction.CategoryUtilities, transaction.TypeExpense, 8},
			{"29.99", "Streaming subscriptions", transaction.CategoryEntertainment, transaction.TypeExpense, 12},
			{"210.00", "Dentist appointment", transaction.CategoryHealth, transaction.TypeExpense, 20},
		}

		balance := decimal.Zero
		for _, s := range samples {
			amount, err := decimal.NewFromString(s.amount)
			if err != nil {
				log.Fatalf("bad sample amount %q: %v", s.amount, err)
			}
			t := transaction.NewTransaction(transaction.CreateTransactionDTO{
				Amount:      amount,
				Description: s.description,
				Category:    s.category,
				Type:        s.txType,
				Date:        now.AddDate(0, 0, -s.daysAgo),
			})
			if err := repo.Create(t); err != nil {
				log.Fatalf("failed to seed transaction %q: %v", s.description, err)
			}
			balance = balance.Add(t.Signed())
		}

		fmt.Printf("Seeded %d sample transactions, net balance %s\n", len(samples), balance)
	},
}
