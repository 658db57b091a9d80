// Package delfos reconstructs the valuation history of an investment
// portfolio from a ledger of buy, sell and dividend movements.
//
// The engine replays the movement list into per-instrument running
// aggregates, reconciles them with market price series supplied by a
// [Resolver], and derives the daily return series used for performance
// reporting. All computation is in-memory and synchronous; a Portfolio
// instance is not safe for concurrent mutation and must be serialized by
// the caller.
package delfos
