package models

import "divvy/internal/money"

// Expense represents a payment made by one member on behalf of the group.
// The amount is split equally across the roster when balances are computed;
// the expense itself only records who paid and how much.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is a short human-readable label (e.g., "Groceries").
	// Must be non-empty.
	Description string

	// Amount is the expense total in cents. Must be positive.
	Amount money.Cents

	// PaidBy is the member ID of the payer. Must reference a member of the
	// group's roster.
	PaidBy string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string
}
