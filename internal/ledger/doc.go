// Package ledger computes group balances and settlement plans.
//
// The package has two entry points, composed as a pipeline:
//
//	roster + expenses → ComputeBalances → balances → ComputeSettlements → plan
//
// Both are pure functions: no I/O, no shared state, safe for concurrent use.
// All arithmetic runs on integer cents, so the zero-sum invariant
// (sum of balances == 0) holds exactly for every input — per-expense
// remainders are distributed cent by cent in ascending member-ID order
// instead of being lost to float division.
//
// ComputeSettlements greedily matches the largest debtor with the largest
// creditor, which zeroes every balance in at most k−1 transfers for k
// non-zero balances. Ties break on member ID, so identical input always
// produces identical output.
package ledger
