package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrTotalNotFound indicates no daily total record for a specific account and day combination.
	ErrTotalNotFound = errors.New("daily total for account/day not found")

	// ErrSnapshotNotFound indicates no valuation snapshot for a specific account and day combination.
	ErrSnapshotNotFound = errors.New("valuation snapshot for account/day not found")
)

// Gateway errors represent failures of the external market-data providers.
var (
	// ErrRateUnavailable indicates the home-currency conversion rate could not
	// be fetched. A reconcile run aborts entirely on this error, before any writes.
	ErrRateUnavailable = errors.New("conversion rate unavailable")

	// ErrPriceUnavailable indicates that a quote lookup failed for a single
	// symbol. The affected holding is valued as unpriced; the run continues.
	ErrPriceUnavailable = errors.New("price unavailable")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrDuplicateHolding indicates that the account already tracks the given symbol.
	ErrDuplicateHolding = errors.New("holding already exists for symbol")

	// ErrInvalidQuantity indicates that a holding quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
