// Package service implements the Connect service handlers. Services are
// thin: they validate input, call storage and the ledger core, and convert
// between domain models and RPC messages.
package service

import (
	"errors"

	"connectrpc.com/connect"

	"divvy/internal/ledger"
	"divvy/internal/models"
	"divvy/internal/money"
	"divvy/internal/rpc"
	"divvy/internal/storage"
)

func toRPCGroup(g *models.Group) rpc.Group {
	members := make([]rpc.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = rpc.Member{ID: m.ID, Name: m.Name}
	}
	return rpc.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt,
	}
}

func toRPCExpense(e *models.Expense) rpc.Expense {
	return rpc.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		Description: e.Description,
		Amount:      e.Amount.Float(),
		PaidBy:      e.PaidBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toRPCBalances(balances []ledger.Balance) []rpc.Balance {
	out := make([]rpc.Balance, len(balances))
	for i, b := range balances {
		out[i] = rpc.Balance{
			UserID:  b.MemberID,
			Name:    b.Name,
			Balance: b.Amount.Float(),
		}
	}
	return out
}

func toRPCSettlements(plan []ledger.Settlement) []rpc.Settlement {
	out := make([]rpc.Settlement, len(plan))
	for i, s := range plan {
		out[i] = rpc.Settlement{
			From:   s.From,
			To:     s.To,
			Amount: s.Amount.Float(),
		}
	}
	return out
}

func toRPCRecordedSettlement(s *models.Settlement) rpc.RecordedSettlement {
	return rpc.RecordedSettlement{
		ID:        s.ID,
		GroupID:   s.GroupID,
		From:      s.FromMemberID,
		To:        s.ToMemberID,
		Amount:    s.Amount.Float(),
		Note:      s.Note,
		CreatedAt: s.CreatedAt,
	}
}

// asConnectError maps domain and storage errors onto Connect codes. Ledger
// contract violations are the caller's fault (invalid argument); missing
// entities are not found; anything else is internal.
func asConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrUnknownPayer),
		errors.Is(err, ledger.ErrEmptyRoster),
		errors.Is(err, ledger.ErrDuplicateMember),
		errors.Is(err, ledger.ErrUnbalancedInput),
		errors.Is(err, money.ErrInvalidAmount):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
