// Package collection tracks a collector's inventory of sealed products and
// values it against a daily market price series. It is designed to be
// local-first and auditable: every state change is an immutable transaction
// in an append-only ledger, and every derived figure can be recomputed from
// the ledger and the price table alone.
//
// The core functionalities include:
//   - Lot accounting: every purchase creates a lot; selling and opening
//     consume lots under FIFO discipline, splitting partially consumed lots
//     so the full history of every unit stays visible.
//   - Ledger management: buys, sells and opens are validated against the
//     product catalog and applied atomically; corrections are compensating
//     transactions, never edits.
//   - Valuation: a pure replay of the ledger against the price series
//     produces the day-by-day curve of cost basis, market value, revenue
//     and ROI, with last-observation-carried-forward price fallback.
//   - Data persistence: the ledger is JSONL, the catalog CSV and the price
//     table JSONL, all human-readable and version-controllable.
//
// This package serves as the foundational logic for the `collect`
// command-line tool.
package collection
