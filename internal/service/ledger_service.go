package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"divvy/internal/ledger"
	"divvy/internal/models"
	"divvy/internal/money"
	"divvy/internal/rpc"
)

// LedgerService implements divvy.v1.LedgerService: the pure computation
// entry points. Nothing here touches storage — the caller supplies the
// roster and expenses (or balances) inline, which makes the service handy
// for previews ("what if we added this expense?") and for callers that keep
// their own records.
type LedgerService struct{}

// NewLedgerService creates a new LedgerService.
func NewLedgerService() *LedgerService {
	return &LedgerService{}
}

var _ rpc.LedgerServiceHandler = (*LedgerService)(nil)

// ComputeBalances aggregates the supplied expenses into per-member balances.
func (s *LedgerService) ComputeBalances(ctx context.Context, req *connect.Request[rpc.ComputeBalancesRequest]) (*connect.Response[rpc.ComputeBalancesResponse], error) {
	roster := make([]models.Member, len(req.Msg.Roster))
	for i, m := range req.Msg.Roster {
		roster[i] = models.Member{ID: m.ID, Name: m.Name}
	}

	expenses := make([]models.Expense, len(req.Msg.Expenses))
	for i, e := range req.Msg.Expenses {
		amount, err := money.PositiveFromFloat(e.Amount)
		if err != nil {
			return nil, asConnectError(fmt.Errorf("%w: expense %q", ledger.ErrInvalidAmount, e.ID))
		}
		expenses[i] = models.Expense{
			ID:          e.ID,
			Description: e.Description,
			Amount:      amount,
			PaidBy:      e.PaidBy,
		}
	}

	summary, err := ledger.ComputeBalances(roster, expenses)
	if err != nil {
		slog.Warn("ComputeBalances failed", "error", err)
		return nil, asConnectError(err)
	}

	return connect.NewResponse(&rpc.ComputeBalancesResponse{
		TotalExpenses:  summary.TotalExpenses.Float(),
		PerPersonShare: summary.PerPersonShare,
		Balances:       toRPCBalances(summary.Balances),
	}), nil
}

// ComputeSettlements converts a zero-sum balance set into a minimal
// settlement plan.
func (s *LedgerService) ComputeSettlements(ctx context.Context, req *connect.Request[rpc.ComputeSettlementsRequest]) (*connect.Response[rpc.ComputeSettlementsResponse], error) {
	balances := make([]ledger.Balance, len(req.Msg.Balances))
	for i, b := range req.Msg.Balances {
		balances[i] = ledger.Balance{
			MemberID: b.UserID,
			Name:     b.Name,
			Amount:   money.FromFloat(b.Balance),
		}
	}

	plan, err := ledger.ComputeSettlements(balances)
	if err != nil {
		slog.Warn("ComputeSettlements failed", "error", err)
		return nil, asConnectError(err)
	}

	return connect.NewResponse(&rpc.ComputeSettlementsResponse{
		Settlements: toRPCSettlements(plan),
	}), nil
}
