package ledger

import "errors"

var (
	// ErrInvalidAmount is returned when an expense amount is not positive.
	ErrInvalidAmount = errors.New("expense amount must be positive")

	// ErrUnknownPayer is returned when an expense references a payer that is
	// not part of the roster.
	ErrUnknownPayer = errors.New("expense payer not in roster")

	// ErrEmptyRoster is returned when expenses are given against a roster
	// with no members, which leaves the split undefined.
	ErrEmptyRoster = errors.New("cannot split expenses across an empty roster")

	// ErrDuplicateMember is returned when the roster contains the same
	// member ID twice.
	ErrDuplicateMember = errors.New("duplicate member id in roster")

	// ErrUnbalancedInput is returned by ComputeSettlements when the balances
	// do not sum to zero. Balances produced by ComputeBalances always do, so
	// this indicates a contract violation by the caller.
	ErrUnbalancedInput = errors.New("balances do not sum to zero")
)
