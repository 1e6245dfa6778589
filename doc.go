// Package finboard implements the bookkeeping core of a personal finance
// dashboard: an append-only transaction ledger, a portfolio of holdings with
// average-cost basis, a book of per-minute interest loans, financial goals,
// and the cash interest accrual that runs between sessions.
//
// The package deliberately contains no UI and no scheduling of its own. All
// state lives in a Book; mutations are explicit methods on it, and time is
// always passed in so that any substrate (timer loop, cron, test harness)
// can drive the per-minute ticks.
package finboard
