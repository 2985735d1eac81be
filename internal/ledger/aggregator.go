package ledger

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Snapshot is what the aggregator publishes to subscribers after every
// balance change: the per-account balances and their grand total.
type Snapshot struct {
	Balances   map[string]decimal.Decimal `json:"balances"`
	GrandTotal decimal.Decimal            `json:"grand_total"`
}

// Aggregator maintains the dashboard-visible grand total across all
// registered accounts. It holds no persistent state of its own: it is a
// derived aggregate over the latest balance notification per account.
//
// Accounts that have not reported a balance yet contribute zero, so the grand
// total can transiently understate reality until every ledger has loaded
// once; Loaded lets callers distinguish that state.
type Aggregator struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
	loaded   map[string]bool
	subs     []chan Snapshot
}

// NewAggregator creates an aggregator with every given account name
// initialized to a zero balance.
func NewAggregator(accountNames []string) *Aggregator {
	balances := make(map[string]decimal.Decimal, len(accountNames))
	for _, name := range accountNames {
		balances[name] = decimal.Zero
	}
	return &Aggregator{
		balances: balances,
		loaded:   make(map[string]bool, len(accountNames)),
	}
}

// OnBalanceChanged records the latest balance for an account, recomputes the
// grand total, and publishes a snapshot to all subscribers. Unknown account
// names are accepted and added to the mapping; registration happens at
// construction but accounts can be created while the server runs.
func (a *Aggregator) OnBalanceChanged(accountName string, balance decimal.Decimal) {
	a.mu.Lock()
	a.balances[accountName] = balance
	a.loaded[accountName] = true
	snap := a.snapshotLocked()
	subs := make([]chan Snapshot, len(a.subs))
	copy(subs, a.subs)
	a.mu.Unlock()

	for _, ch := range subs {
		// Drop rather than block when a subscriber lags; the next
		// notification carries a complete snapshot anyway.
		select {
		case ch <- snap:
		default:
		}
	}
}

// GrandTotal returns the sum of the last-known balance of every account.
func (a *Aggregator) GrandTotal() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.grandTotalLocked()
}

// Snapshot returns the per-account balances and their grand total, taken
// under one lock so the total always equals the sum of the balances.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshotLocked()
}

// Loaded reports whether the named account has reported a balance since
// startup. A false return means its contribution to the grand total is the
// initial zero, not a computed value.
func (a *Aggregator) Loaded(accountName string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loaded[accountName]
}

// Subscribe returns a channel that receives a snapshot after every balance
// change. Slow subscribers miss intermediate snapshots instead of blocking
// the publisher.
func (a *Aggregator) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	a.mu.Lock()
	a.subs = append(a.subs, ch)
	a.mu.Unlock()
	return ch
}

func (a *Aggregator) grandTotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.balances {
		total = total.Add(b)
	}
	return total
}

func (a *Aggregator) snapshotLocked() Snapshot {
	balances := make(map[string]decimal.Decimal, len(a.balances))
	for name, b := range a.balances {
		balances[name] = b
	}
	return Snapshot{Balances: balances, GrandTotal: a.grandTotalLocked()}
}
