// Package carteira provides the types and computations for managing a
// personal Brazilian investment portfolio. It is designed to be local-first,
// auditable, and deterministic: every derived figure is recomputed from the
// raw records on each read, against an explicit "as of" date.
//
// The core functionalities include:
//   - Amortized Loans: price-system instalment, outstanding balance and
//     total-interest computation for financed debts, anchored on lender
//     snapshots when available, plus a once-per-month idempotent balance
//     advance.
//   - Fixed Income: current-value estimation for CDB/LCI/LCA/Tesouro style
//     holdings indexed to CDI, SELIC, IPCA, IGP-M or pre-fixed rates, using
//     the Brazilian 252-business-day and 365-calendar-day conventions.
//   - Cash-Flow Returns: an XIRR solver for irregularly dated cash flows.
//   - Positions: equity/FII/ETF records enriched with market quotes into
//     read-only calculated assets (P&L, trailing dividend yield, weight).
//   - Data Persistence: encoding and decoding of all records to and from
//     human-readable, version-controllable JSONL files.
//
// This package serves as the foundational logic for the `carteira`
// command-line tool; external concerns stay at the edges. Market quotes and
// reference rates come from the brapi and bcb subpackages, and nothing in
// this package reads the wall clock or the network.
package carteira
