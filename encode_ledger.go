package collection

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeLedger reads transactions from a stream of JSONL data, one record per
// line, and rebuilds the ledger state by replaying them against a fresh lot
// store. Recorded fields (ids, effective dates, adjustment flags, gains) are
// trusted as written; the replay only reconstructs the lot state they imply.
func DecodeLedger(r io.Reader, catalog CatalogProvider) (*Ledger, error) {
	var txs []Transaction
	var maxID int64

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var identifier struct {
			Command TxType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify command in line %q: %w", string(lineBytes), err)
		}

		var decoded Transaction
		switch identifier.Command {
		case CmdBuy:
			var tx Buy
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, err
			}
			decoded = tx
		case CmdSell:
			var tx Sell
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, err
			}
			decoded = tx
		case CmdOpen:
			var tx Open
			if err := json.Unmarshal(lineBytes, &tx); err != nil {
				return nil, err
			}
			decoded = tx
		default:
			return nil, fmt.Errorf("unknown transaction command: %q", identifier.Command)
		}

		txs = append(txs, decoded)
		if decoded.Seq() > maxID {
			maxID = decoded.Seq()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger := NewLedger(catalog)
	ledger.transactions = txs
	ledger.stableSort()
	store, err := replay(ledger.transactions)
	if err != nil {
		return nil, fmt.Errorf("ledger file is inconsistent: %w", err)
	}
	ledger.store = store
	ledger.nextID = maxID + 1
	return ledger, nil
}

// EncodeTransaction marshals a single transaction and writes it to the
// writer followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists all transactions to an io.Writer in JSONL format, in
// chronological order with canonical key order per line.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
