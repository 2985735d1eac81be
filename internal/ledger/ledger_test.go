package ledger

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"defter/internal/models"
)

func tx(txType models.TransactionType, homeAmount float64) models.Transaction {
	return models.Transaction{
		Type:       txType,
		HomeAmount: decimal.NewFromFloat(homeAmount),
	}
}

func TestComputeBalance(t *testing.T) {
	t.Run("empty_set", func(t *testing.T) {
		if got := ComputeBalance(nil); !got.IsZero() {
			t.Errorf("expected zero, got %s", got)
		}
	})

	t.Run("income_minus_expense", func(t *testing.T) {
		txs := []models.Transaction{
			tx(models.TransactionTypeIncome, 1000),
			tx(models.TransactionTypeIncome, 250.50),
			tx(models.TransactionTypeExpense, 400),
		}

		got := ComputeBalance(txs)
		want := decimal.NewFromFloat(850.50)
		if !got.Equal(want) {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("order_invariant", func(t *testing.T) {
		txs := []models.Transaction{
			tx(models.TransactionTypeIncome, 100),
			tx(models.TransactionTypeExpense, 75.25),
			tx(models.TransactionTypeIncome, 0.75),
			tx(models.TransactionTypeExpense, 30),
			tx(models.TransactionTypeIncome, 4.50),
		}
		want := ComputeBalance(txs)

		for i := 0; i < 10; i++ {
			shuffled := make([]models.Transaction, len(txs))
			copy(shuffled, txs)
			rand.Shuffle(len(shuffled), func(a, b int) {
				shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
			})

			if got := ComputeBalance(shuffled); !got.Equal(want) {
				t.Fatalf("balance changed under reordering: expected %s, got %s", want, got)
			}
		}
	})
}

func TestAggregator(t *testing.T) {
	t.Run("starts_at_zero", func(t *testing.T) {
		agg := NewAggregator([]string{"CASH", "Volkan Amount"})

		if got := agg.GrandTotal(); !got.IsZero() {
			t.Errorf("expected zero grand total, got %s", got)
		}
		if agg.Loaded("CASH") {
			t.Error("expected CASH to be unloaded at startup")
		}
	})

	t.Run("sums_all_accounts", func(t *testing.T) {
		agg := NewAggregator([]string{"A", "B", "C"})

		agg.OnBalanceChanged("A", decimal.NewFromInt(100))
		agg.OnBalanceChanged("B", decimal.NewFromInt(-50))
		agg.OnBalanceChanged("C", decimal.Zero)

		if got := agg.GrandTotal(); !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected 50, got %s", got)
		}

		// A late update replaces the previous contribution.
		agg.OnBalanceChanged("A", decimal.NewFromInt(150))
		if got := agg.GrandTotal(); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected 100 after update, got %s", got)
		}
	})

	t.Run("unloaded_accounts_count_as_zero", func(t *testing.T) {
		agg := NewAggregator([]string{"A", "B"})

		agg.OnBalanceChanged("A", decimal.NewFromInt(200))

		if got := agg.GrandTotal(); !got.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected 200, got %s", got)
		}
		if !agg.Loaded("A") {
			t.Error("expected A to be loaded")
		}
		if agg.Loaded("B") {
			t.Error("expected B to still be unloaded")
		}
	})

	t.Run("unknown_account_is_added", func(t *testing.T) {
		agg := NewAggregator([]string{"A"})

		agg.OnBalanceChanged("new account", decimal.NewFromInt(10))

		if got := agg.GrandTotal(); !got.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected 10, got %s", got)
		}
	})

	t.Run("publishes_snapshots", func(t *testing.T) {
		agg := NewAggregator([]string{"A", "B"})
		ch := agg.Subscribe()

		agg.OnBalanceChanged("A", decimal.NewFromInt(75))

		snap := <-ch
		if !snap.GrandTotal.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected grand total 75, got %s", snap.GrandTotal)
		}
		if !snap.Balances["A"].Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected A balance 75, got %s", snap.Balances["A"])
		}
		if !snap.Balances["B"].IsZero() {
			t.Errorf("expected B balance zero, got %s", snap.Balances["B"])
		}
	})

	t.Run("slow_subscriber_does_not_block", func(t *testing.T) {
		agg := NewAggregator([]string{"A"})
		_ = agg.Subscribe() // never drained

		// Buffered channel holds one snapshot; further publishes drop.
		agg.OnBalanceChanged("A", decimal.NewFromInt(1))
		agg.OnBalanceChanged("A", decimal.NewFromInt(2))
		agg.OnBalanceChanged("A", decimal.NewFromInt(3))

		if got := agg.GrandTotal(); !got.Equal(decimal.NewFromInt(3)) {
			t.Errorf("expected 3, got %s", got)
		}
	})
}

func TestAggregatorSnapshot(t *testing.T) {
	t.Run("total_equals_sum_of_balances", func(t *testing.T) {
		agg := NewAggregator([]string{"A", "B"})
		agg.OnBalanceChanged("A", decimal.NewFromInt(300))
		agg.OnBalanceChanged("B", decimal.NewFromInt(-120))

		snap := agg.Snapshot()

		sum := decimal.Zero
		for _, b := range snap.Balances {
			sum = sum.Add(b)
		}
		if !snap.GrandTotal.Equal(sum) {
			t.Errorf("expected grand total %s to equal balance sum %s", snap.GrandTotal, sum)
		}
		if !snap.GrandTotal.Equal(decimal.NewFromInt(180)) {
			t.Errorf("expected grand total 180, got %s", snap.GrandTotal)
		}
	})

	t.Run("consistent_under_concurrent_updates", func(t *testing.T) {
		agg := NewAggregator([]string{"A", "B"})

		// Every write keeps A+B at zero, so any snapshot whose total
		// differs from the sum of its own balances was torn.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := int64(1); i <= 500; i++ {
				agg.OnBalanceChanged("A", decimal.NewFromInt(i))
				agg.OnBalanceChanged("B", decimal.NewFromInt(-i))
			}
		}()

		for i := 0; i < 500; i++ {
			snap := agg.Snapshot()
			sum := decimal.Zero
			for _, b := range snap.Balances {
				sum = sum.Add(b)
			}
			if !snap.GrandTotal.Equal(sum) {
				t.Fatalf("torn snapshot: grand total %s, balance sum %s", snap.GrandTotal, sum)
			}
		}
		<-done
	})
}
