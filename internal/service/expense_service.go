package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"divvy/internal/ledger"
	"divvy/internal/middleware"
	"divvy/internal/models"
	"divvy/internal/money"
	"divvy/internal/rpc"
	"divvy/internal/storage"
)

// ExpenseService implements divvy.v1.ExpenseService.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

var _ rpc.ExpenseServiceHandler = (*ExpenseService)(nil)

// AddExpense records a new expense against a group. The amount must be
// positive and the payer must be a roster member; both are checked here so
// stored expenses always satisfy the aggregation contract.
func (s *ExpenseService) AddExpense(ctx context.Context, req *connect.Request[rpc.AddExpenseRequest]) (*connect.Response[rpc.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupID,
		"paid_by", req.Msg.PaidBy,
	)

	if req.Msg.Description == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("description required"))
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}

	amount, err := money.PositiveFromFloat(req.Msg.Amount)
	if err != nil {
		return nil, asConnectError(fmt.Errorf("%w: %v", ledger.ErrInvalidAmount, req.Msg.Amount))
	}
	if _, ok := group.MemberByID(req.Msg.PaidBy); !ok {
		return nil, asConnectError(fmt.Errorf("%w: %s", ledger.ErrUnknownPayer, req.Msg.PaidBy))
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: req.Msg.Description,
		Amount:      amount,
		PaidBy:      req.Msg.PaidBy,
		CreatedBy:   middleware.GetUserID(ctx),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("AddExpense failed", "group_id", group.ID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Expense added", "group_id", group.ID, "expense_id", expense.ID)
	return connect.NewResponse(&rpc.AddExpenseResponse{Expense: toRPCExpense(expense)}), nil
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[rpc.GetExpenseRequest]) (*connect.Response[rpc.GetExpenseResponse], error) {
	expense, err := s.store.GetExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		slog.Warn("GetExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&rpc.GetExpenseResponse{Expense: toRPCExpense(expense)}), nil
}

// ListExpenses retrieves a group's expenses, oldest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[rpc.ListExpensesRequest]) (*connect.Response[rpc.ListExpensesResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, asConnectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	out := make([]rpc.Expense, len(expenses))
	for i := range expenses {
		out[i] = toRPCExpense(&expenses[i])
	}
	return connect.NewResponse(&rpc.ListExpensesResponse{Expenses: out}), nil
}

// DeleteExpense removes an expense by ID.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[rpc.DeleteExpenseRequest]) (*connect.Response[rpc.DeleteExpenseResponse], error) {
	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		slog.Warn("DeleteExpense failed", "expense_id", req.Msg.ExpenseID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)
	return connect.NewResponse(&rpc.DeleteExpenseResponse{}), nil
}
