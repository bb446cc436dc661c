// Package ledger implements the accounting engine of a back-office suite:
// temporal balance aggregation over month-bucketed figures, group rollups
// across accounts, and validation and application of posting journals.
//
// The engine is store-agnostic. Callers resolve account references up front
// (see AccountResolver) and decide what to persist from the result of a
// journal application; the engine assumes exclusive access to the ledgers it
// is given and performs no locking of its own. Two journals touching the same
// account must be serialized by the caller.
package ledger
