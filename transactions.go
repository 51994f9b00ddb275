package collection

import (
	"encoding/json"
	"fmt"
	"time"
)

// TxType is a typed string identifying a transaction command.
type TxType string

// Command types used for identifying transactions.
const (
	CmdBuy  TxType = "buy"
	CmdSell TxType = "sell"
	CmdOpen TxType = "open"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case CmdBuy, CmdSell, CmdOpen:
		return TxType(s), nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is the common interface of the records appended to the ledger.
// Once appended a transaction is immutable; corrections are modeled as new,
// compensating transactions.
type Transaction interface {
	What() TxType     // the command type ("buy", "sell", "open")
	When() Date       // the effective date, used for all chronology
	Seq() int64       // the monotonic id assigned on append
	Equal(Transaction) bool
}

// baseTx carries the fields common to every transaction record.
type baseTx struct {
	Command   TxType    `json:"command"`
	ID        int64     `json:"id"`
	Product   string    `json:"product"`
	Quantity  int64     `json:"quantity"`
	Requested Date      `json:"requested"`
	Effective Date      `json:"date"`
	Adjusted  bool      `json:"adjusted,omitempty"`
	Created   time.Time `json:"created"`
}

func (t baseTx) What() TxType { return t.Command }
func (t baseTx) When() Date   { return t.Effective }
func (t baseTx) Seq() int64   { return t.ID }

// RequestedOn returns the date the caller asked for, before validation
// against the product's first-available date.
func (t baseTx) RequestedOn() Date { return t.Requested }

// WasAdjusted reports whether the effective date differs from the requested one.
func (t baseTx) WasAdjusted() bool { return t.Adjusted }

// CreatedAt returns the ingestion timestamp.
func (t baseTx) CreatedAt() time.Time { return t.Created }

// MarshalJSON implements the json.Marshaler interface for baseTx.
func (t baseTx) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("id", t.ID)
	w.Append("product", t.Product)
	w.Append("quantity", t.Quantity)
	w.Append("requested", t.Requested)
	w.Append("date", t.Effective)
	w.Optional("adjusted", t.Adjusted)
	w.Append("created", t.Created)
	return w.MarshalJSON()
}

// Buy records the purchase of sealed units. Each buy creates exactly one
// sealed lot in the lot store.
type Buy struct {
	baseTx
	UnitPrice Money `json:"price"`
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("price", t.UnitPrice)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		UnitPrice Money `json:"price"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.UnitPrice = temp.UnitPrice
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.baseTx.equal(o.baseTx) && t.UnitPrice.Equal(o.UnitPrice)
}

// Total returns the total amount paid (quantity times unit price).
func (t Buy) Total() Money { return t.UnitPrice.MulQty(t.Quantity) }

// Sell records the disposal of units at an explicit per-unit price. The
// realized gain is computed lot by lot during allocation and recorded with
// the transaction.
type Sell struct {
	baseTx
	UnitPrice Money `json:"price"`
	Gain      Money `json:"gain"`
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	w.Append("price", t.UnitPrice)
	w.Append("gain", t.Gain)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseTx
		UnitPrice Money `json:"price"`
		Gain      Money `json:"gain"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	t.UnitPrice = temp.UnitPrice
	t.Gain = temp.Gain
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.baseTx.equal(o.baseTx) && t.UnitPrice.Equal(o.UnitPrice) && t.Gain.Equal(o.Gain)
}

// Total returns the total proceeds (quantity times unit price).
func (t Sell) Total() Money { return t.UnitPrice.MulQty(t.Quantity) }

// Open records breaking the seal on units: quantity moves from sealed to
// opened status. No price is involved and the cost basis is unaffected; the
// units simply stop contributing to market value.
type Open struct {
	baseTx
}

// MarshalJSON implements the json.Marshaler interface for Open.
func (t Open) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseTx)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Open.
func (t *Open) UnmarshalJSON(data []byte) error {
	var temp struct{ baseTx }
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.baseTx = temp.baseTx
	return nil
}

func (t Open) Equal(other Transaction) bool {
	o, ok := other.(Open)
	return ok && t.baseTx.equal(o.baseTx)
}

// equal compares base fields, tolerating clock resolution differences in the
// created timestamp after an encode/decode round trip.
func (t baseTx) equal(o baseTx) bool {
	return t.Command == o.Command &&
		t.ID == o.ID &&
		t.Product == o.Product &&
		t.Quantity == o.Quantity &&
		t.Requested == o.Requested &&
		t.Effective == o.Effective &&
		t.Adjusted == o.Adjusted &&
		t.Created.Equal(o.Created)
}
