package ledger

import (
	"fmt"
	"sort"

	"divvy/internal/models"
	"divvy/internal/money"
)

// Balance is one member's signed position: positive means the member is owed
// money, negative means the member owes money.
type Balance struct {
	// MemberID is the stable identifier of the member.
	MemberID string

	// Name is the member's display name, carried along for presentation.
	Name string

	// Amount is the signed balance in cents.
	Amount money.Cents
}

// Summary is the result of aggregating a group's expenses.
type Summary struct {
	// TotalExpenses is the exact sum of all expense amounts.
	TotalExpenses money.Cents

	// PerPersonShare is total/n as a display value. It is informational
	// only; balances are built from exact per-expense integer shares, not
	// from this number.
	PerPersonShare float64

	// Balances holds one entry per roster member, ordered by member ID.
	// They sum to zero exactly.
	Balances []Balance
}

// ComputeBalances aggregates expenses into a signed balance per roster
// member.
//
// Each expense is split equally across the roster passed in: the roster
// parameter is the snapshot shares are computed against, so callers that
// pass a group's current membership re-split historical expenses whenever
// the roster changes. The equal share is floor(amount/n) cents; the
// remaining amount mod n cents go one cent each to the first members in
// ascending ID order, so every expense's shares sum exactly to its amount.
//
// An empty roster with no expenses is a valid degenerate input. An empty
// roster with expenses fails with ErrEmptyRoster.
func ComputeBalances(roster []models.Member, expenses []models.Expense) (*Summary, error) {
	if len(roster) == 0 {
		if len(expenses) > 0 {
			return nil, ErrEmptyRoster
		}
		return &Summary{Balances: []Balance{}}, nil
	}

	// Fixed computation order: ascending member ID.
	members := make([]models.Member, len(roster))
	copy(members, roster)
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

	index := make(map[string]int, len(members))
	for i, m := range members {
		if _, dup := index[m.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
		}
		index[m.ID] = i
	}

	n := money.Cents(len(members))
	balances := make([]money.Cents, len(members))
	var total money.Cents

	for _, e := range expenses {
		if e.Amount <= 0 {
			return nil, fmt.Errorf("%w: expense %q has amount %s", ErrInvalidAmount, e.ID, e.Amount)
		}
		payer, ok := index[e.PaidBy]
		if !ok {
			return nil, fmt.Errorf("%w: expense %q paid by %s", ErrUnknownPayer, e.ID, e.PaidBy)
		}

		total += e.Amount
		balances[payer] += e.Amount

		share := e.Amount / n
		remainder := e.Amount % n
		for i := range balances {
			balances[i] -= share
			if money.Cents(i) < remainder {
				balances[i]--
			}
		}
	}

	out := &Summary{
		TotalExpenses:  total,
		PerPersonShare: total.Float() / float64(len(members)),
		Balances:       make([]Balance, len(members)),
	}
	for i, m := range members {
		out.Balances[i] = Balance{MemberID: m.ID, Name: m.Name, Amount: balances[i]}
	}
	return out, nil
}

// ApplySettlements nets recorded repayments into a balance set and returns
// the adjusted copy. A repayment from X to Y raises X's balance and lowers
// Y's by the same amount, so the zero-sum invariant is preserved.
// Settlements that reference members outside the balance set are rejected.
func ApplySettlements(balances []Balance, settlements []models.Settlement) ([]Balance, error) {
	out := make([]Balance, len(balances))
	copy(out, balances)

	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.MemberID] = i
	}

	for _, s := range settlements {
		if s.Amount <= 0 {
			return nil, fmt.Errorf("%w: settlement %q has amount %s", ErrInvalidAmount, s.ID, s.Amount)
		}
		from, ok := index[s.FromMemberID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement %q from %s", ErrUnknownPayer, s.ID, s.FromMemberID)
		}
		to, ok := index[s.ToMemberID]
		if !ok {
			return nil, fmt.Errorf("%w: settlement %q to %s", ErrUnknownPayer, s.ID, s.ToMemberID)
		}
		out[from].Amount += s.Amount
		out[to].Amount -= s.Amount
	}
	return out, nil
}
