package collection

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"
)

// Ledger is the append-only transaction log of the collection. All chronology
// is based on effective dates; transactions on the same day keep their append
// order through the monotonic id.
//
// The ledger is the single writer of the lot store: Submit validates, applies
// the allocation and appends the record under one lock, so no reader ever
// observes a partially-applied transaction.
type Ledger struct {
	mu           sync.RWMutex
	catalog      CatalogProvider
	store        *LotStore
	transactions []Transaction
	nextID       int64
	now          func() time.Time
}

// NewLedger creates an empty ledger resolving products through the catalog.
func NewLedger(catalog CatalogProvider) *Ledger {
	return &Ledger{
		catalog: catalog,
		store:   NewLotStore(),
		nextID:  1,
		now:     time.Now,
	}
}

// Request is a transaction submission. UnitPrice is nil when absent: it is
// required for buys and sells and must be absent for opens.
type Request struct {
	Type      TxType
	ProductID string
	Quantity  int64
	UnitPrice *Money
	Date      Date
}

// Submit validates a request, applies it to the lot store and appends the
// resulting immutable record, atomically. On failure no state changes.
//
// A successful submission may carry an adjusted effective date: a requested
// date before the product's first-available date is moved forward and the
// record is flagged. That is informational, not an error.
func (l *Ledger) Submit(req Request) (Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%s transaction quantity must be positive, got %d: %w",
			req.Type, req.Quantity, ErrInvalidQuantity)
	}
	switch req.Type {
	case CmdBuy, CmdSell:
		if req.UnitPrice == nil {
			return nil, fmt.Errorf("%s transaction requires a unit price: %w", req.Type, ErrInvalidPrice)
		}
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%s transaction price must not be negative, got %s: %w",
				req.Type, req.UnitPrice, ErrInvalidPrice)
		}
	case CmdOpen:
		if req.UnitPrice != nil {
			return nil, fmt.Errorf("open transaction must not carry a price: %w", ErrInvalidPrice)
		}
	default:
		return nil, fmt.Errorf("unsupported transaction type %q", req.Type)
	}

	effective, adjusted, err := EffectiveDate(l.catalog, req.ProductID, req.Date)
	if err != nil {
		return nil, err
	}

	base := baseTx{
		Command:   req.Type,
		ID:        l.nextID,
		Product:   req.ProductID,
		Quantity:  req.Quantity,
		Requested: req.Date,
		Effective: effective,
		Adjusted:  adjusted,
		Created:   l.now().UTC(),
	}

	var tx Transaction
	switch req.Type {
	case CmdBuy:
		tx = Buy{baseTx: base, UnitPrice: *req.UnitPrice}
	case CmdSell:
		tx = Sell{baseTx: base, UnitPrice: *req.UnitPrice} // gain filled during the replay below
	case CmdOpen:
		tx = Open{baseTx: base}
	}

	// Apply by replaying the whole history with the new record at its
	// chronological position. A backdated record that would leave any later
	// transaction short of inventory is rejected here, so the persisted log
	// always replays cleanly. On failure the ledger is untouched.
	txs := append(slices.Clone(l.transactions), tx)
	slices.SortStableFunc(txs, txCompare)
	store := NewLotStore()
	for i, t := range txs {
		switch v := t.(type) {
		case Buy:
			store.AddLot(v.ID, v.Product, v.Quantity, v.UnitPrice, v.Effective)
		case Sell:
			changes, err := store.Consume(v.Product, v.Quantity, Sold, v.UnitPrice, v.Effective)
			if err != nil {
				return nil, fmt.Errorf("cannot apply sell #%d on %s: %w", v.ID, v.Effective, err)
			}
			if v.ID == base.ID {
				// The realized gain depends on the FIFO costs at the
				// record's chronological position, known only now.
				var gain Money
				for _, c := range changes {
					gain = gain.Add(c.Gain)
				}
				v.Gain = gain
				txs[i] = v
				tx = v
			}
		case Open:
			if _, err := store.Consume(v.Product, v.Quantity, Opened, Money{}, v.Effective); err != nil {
				return nil, fmt.Errorf("cannot apply open #%d on %s: %w", v.ID, v.Effective, err)
			}
		}
	}

	l.nextID++
	l.transactions = txs
	l.store = store
	return tx, nil
}

// Buy submits a purchase of sealed units at a per-unit price.
func (l *Ledger) Buy(productID string, quantity int64, unitPrice Money, on Date) (Transaction, error) {
	return l.Submit(Request{Type: CmdBuy, ProductID: productID, Quantity: quantity, UnitPrice: &unitPrice, Date: on})
}

// Sell submits a disposal of units at an explicit per-unit price. Opened
// units may be sold this way; they keep their original lot cost as basis.
func (l *Ledger) Sell(productID string, quantity int64, unitPrice Money, on Date) (Transaction, error) {
	return l.Submit(Request{Type: CmdSell, ProductID: productID, Quantity: quantity, UnitPrice: &unitPrice, Date: on})
}

// Open submits breaking the seal on units. No price is involved.
func (l *Ledger) Open(productID string, quantity int64, on Date) (Transaction, error) {
	return l.Submit(Request{Type: CmdOpen, ProductID: productID, Quantity: quantity, Date: on})
}

// txCompare orders transactions chronologically by effective date, then id.
func txCompare(a, b Transaction) int {
	if c := a.When().Compare(b.When()); c != 0 {
		return c
	}
	return int(a.Seq() - b.Seq())
}

// stableSort keeps the log chronological by effective date, then id.
// Must be called with the write lock held.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.transactions, txCompare)
}

// Transactions returns a snapshot of all transactions in chronological order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.transactions)
}

// TransactionsUpTo returns the chronological sequence of transactions whose
// effective date is on or before the given date.
func (l *Ledger) TransactionsUpTo(on Date) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var txs []Transaction
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			break
		}
		txs = append(txs, tx)
	}
	return txs
}

// Each iterates over transactions accepted by all filters, in chronological order.
func (l *Ledger) Each(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	txs := l.Transactions()
	return func(yield func(Transaction) bool) {
		for _, tx := range txs {
			accepted := true
			for _, filter := range filters {
				if !filter(tx) {
					accepted = false
					break
				}
			}
			if accepted && !yield(tx) {
				return
			}
		}
	}
}

// ByProduct returns a predicate that filters transactions by product id.
func ByProduct(productID string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Product == productID
		case Sell:
			return v.Product == productID
		case Open:
			return v.Product == productID
		default:
			return false
		}
	}
}

// OldestTransactionDate returns the effective date of the earliest
// transaction, or the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the effective date of the latest transaction,
// or the zero date when the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// AvailableQuantity reports how many units of a product could currently be
// disposed of: sealed units only for opening, sealed plus opened for selling.
func (l *Ledger) AvailableQuantity(productID string, includeOpened bool) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.AvailableQuantity(productID, includeOpened)
}

// Holdings returns the current holdings snapshot for one product.
func (l *Ledger) Holdings(productID string) (Holding, error) {
	p, err := l.catalog.Lookup(productID)
	if err != nil {
		return Holding{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	h := l.store.ProductHolding(productID)
	h.Name = p.Name
	return h, nil
}

// AllHoldings returns the holdings of every product that ever had a lot, in
// first purchase order.
func (l *Ledger) AllHoldings() []Holding {
	l.mu.RLock()
	products := l.store.Products()
	holdings := make([]Holding, 0, len(products))
	for _, id := range products {
		holdings = append(holdings, l.store.ProductHolding(id))
	}
	l.mu.RUnlock()

	for i := range holdings {
		if p, err := l.catalog.Lookup(holdings[i].ProductID); err == nil {
			holdings[i].Name = p.Name
		}
	}
	return holdings
}

// Lots returns a snapshot of all lots, audit records included.
func (l *Ledger) Lots() []Lot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Collect(l.store.Lots())
}

// replay rebuilds a lot store from a chronological transaction slice. It is a
// pure function of its input: the valuation engine relies on that to
// reconstruct holdings as of any past date.
func replay(txs []Transaction) (*LotStore, error) {
	store := NewLotStore()
	for _, tx := range txs {
		switch v := tx.(type) {
		case Buy:
			store.AddLot(v.ID, v.Product, v.Quantity, v.UnitPrice, v.Effective)
		case Sell:
			if _, err := store.Consume(v.Product, v.Quantity, Sold, v.UnitPrice, v.Effective); err != nil {
				return nil, fmt.Errorf("replaying sell #%d on %s: %w", v.ID, v.Effective, err)
			}
		case Open:
			if _, err := store.Consume(v.Product, v.Quantity, Opened, Money{}, v.Effective); err != nil {
				return nil, fmt.Errorf("replaying open #%d on %s: %w", v.ID, v.Effective, err)
			}
		default:
			return nil, fmt.Errorf("unhandled transaction type: %T", tx)
		}
	}
	return store, nil
}
