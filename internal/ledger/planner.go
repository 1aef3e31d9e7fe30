package ledger

import (
	"container/heap"

	"divvy/internal/money"
)

// Settlement is a single proposed transfer: From pays To the given amount.
// Both parties are identified by member ID.
type Settlement struct {
	From   string
	To     string
	Amount money.Cents
}

// party is one side of the matching: a member with a remaining positive
// magnitude still to be settled.
type party struct {
	id  string
	rem money.Cents
}

// partyHeap is a max-heap on remaining magnitude, ties broken by ascending
// member ID. The tie-break is what makes the plan reproducible; relying on
// insertion or map order would not be.
type partyHeap []party

func (h partyHeap) Len() int { return len(h) }

func (h partyHeap) Less(i, j int) bool {
	if h[i].rem != h[j].rem {
		return h[i].rem > h[j].rem
	}
	return h[i].id < h[j].id
}

func (h partyHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *partyHeap) Push(x any) { *h = append(*h, x.(party)) }

func (h *partyHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// ComputeSettlements converts a zero-sum balance set into an ordered list of
// transfers that zeroes every balance.
//
// It repeatedly matches the largest remaining debtor with the largest
// remaining creditor and transfers the smaller of the two magnitudes. Every
// step fully settles at least one party, so the plan holds at most k−1
// transfers for k members with non-zero balances.
//
// Balances that do not sum to exactly zero are rejected with
// ErrUnbalancedInput: the input was not produced by ComputeBalances and
// silently "fixing" it would hide the caller's bug.
func ComputeSettlements(balances []Balance) ([]Settlement, error) {
	var sum money.Cents
	for _, b := range balances {
		sum += b.Amount
	}
	if sum != 0 {
		return nil, ErrUnbalancedInput
	}

	debtors := make(partyHeap, 0, len(balances))
	creditors := make(partyHeap, 0, len(balances))
	for _, b := range balances {
		switch {
		case b.Amount < 0:
			debtors = append(debtors, party{id: b.MemberID, rem: -b.Amount})
		case b.Amount > 0:
			creditors = append(creditors, party{id: b.MemberID, rem: b.Amount})
		}
	}
	heap.Init(&debtors)
	heap.Init(&creditors)

	plan := make([]Settlement, 0, len(balances))
	for len(debtors) > 0 && len(creditors) > 0 {
		amount := debtors[0].rem
		if creditors[0].rem < amount {
			amount = creditors[0].rem
		}

		plan = append(plan, Settlement{
			From:   debtors[0].id,
			To:     creditors[0].id,
			Amount: amount,
		})

		debtors[0].rem -= amount
		if debtors[0].rem == 0 {
			heap.Pop(&debtors)
		} else {
			heap.Fix(&debtors, 0)
		}

		creditors[0].rem -= amount
		if creditors[0].rem == 0 {
			heap.Pop(&creditors)
		} else {
			heap.Fix(&creditors, 0)
		}
	}

	return plan, nil
}
