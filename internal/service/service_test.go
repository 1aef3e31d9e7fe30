package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"divvy/internal/middleware"
	"divvy/internal/rpc"
	"divvy/internal/storage/sqlite"
)

// testAuthInterceptor sets a fixed user ID in the context, standing in for
// the JWT middleware.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, "test-user")
			return next(ctx, req)
		}
	}
}

type testClients struct {
	groups   *rpc.GroupServiceClient
	expenses *rpc.ExpenseServiceClient
	ledger   *rpc.LedgerServiceClient
}

// setupTestServer starts an httptest server backed by a temp SQLite store
// and returns real Connect clients against it.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	interceptors := connect.WithInterceptors(testAuthInterceptor())

	mux := http.NewServeMux()
	groupPath, groupHandler := rpc.NewGroupServiceHandler(NewGroupService(store), interceptors)
	mux.Handle(groupPath, groupHandler)
	expensePath, expenseHandler := rpc.NewExpenseServiceHandler(NewExpenseService(store), interceptors)
	mux.Handle(expensePath, expenseHandler)
	ledgerPath, ledgerHandler := rpc.NewLedgerServiceHandler(NewLedgerService(), interceptors)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		groups:   rpc.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses: rpc.NewExpenseServiceClient(http.DefaultClient, server.URL),
		ledger:   rpc.NewLedgerServiceClient(http.DefaultClient, server.URL),
	}
}

// createGroup is a helper that creates a group and returns it with the
// roster the store assigned.
func createGroup(t *testing.T, clients testClients, names ...string) rpc.Group {
	t.Helper()

	resp, err := clients.groups.CreateGroup(context.Background(), connect.NewRequest(&rpc.CreateGroupRequest{
		Name:        "Trip",
		MemberNames: names,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group
}

func memberByName(t *testing.T, group rpc.Group, name string) rpc.Member {
	t.Helper()
	for _, m := range group.Members {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("no member named %s in group", name)
	return rpc.Member{}
}

func balanceOf(t *testing.T, balances []rpc.Balance, memberID string) float64 {
	t.Helper()
	for _, b := range balances {
		if b.UserID == memberID {
			return b.Balance
		}
	}
	t.Fatalf("no balance for member %s", memberID)
	return 0
}

func TestGroupBalances_EndToEnd(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")
	bob := memberByName(t, group, "Bob")

	_, err := clients.expenses.AddExpense(ctx, connect.NewRequest(&rpc.AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Hotel",
		Amount:      100.00,
		PaidBy:      alice.ID,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	resp, err := clients.groups.GetGroupBalances(ctx, connect.NewRequest(&rpc.GetGroupBalancesRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}

	if resp.Msg.TotalExpenses != 100.00 {
		t.Errorf("total expenses = %v, want 100.00", resp.Msg.TotalExpenses)
	}
	if resp.Msg.PerPersonShare != 50.00 {
		t.Errorf("per-person share = %v, want 50.00", resp.Msg.PerPersonShare)
	}
	if got := balanceOf(t, resp.Msg.Balances, alice.ID); got != 50.00 {
		t.Errorf("Alice balance = %v, want 50.00", got)
	}
	if got := balanceOf(t, resp.Msg.Balances, bob.ID); got != -50.00 {
		t.Errorf("Bob balance = %v, want -50.00", got)
	}

	plan, err := clients.groups.GetSettlementPlan(ctx, connect.NewRequest(&rpc.GetSettlementPlanRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetSettlementPlan failed: %v", err)
	}
	if len(plan.Msg.Settlements) != 1 {
		t.Fatalf("plan has %d settlements, want 1", len(plan.Msg.Settlements))
	}
	s := plan.Msg.Settlements[0]
	if s.From != bob.ID || s.To != alice.ID || s.Amount != 50.00 {
		t.Errorf("settlement = %+v, want Bob pays Alice 50.00", s)
	}
}

func TestRecordSettlement_NetsIntoBalances(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")
	bob := memberByName(t, group, "Bob")

	_, err := clients.expenses.AddExpense(ctx, connect.NewRequest(&rpc.AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Hotel",
		Amount:      100.00,
		PaidBy:      alice.ID,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	_, err = clients.groups.RecordSettlement(ctx, connect.NewRequest(&rpc.RecordSettlementRequest{
		GroupID: group.ID,
		From:    bob.ID,
		To:      alice.ID,
		Amount:  20.00,
		Note:    "partial",
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}

	resp, err := clients.groups.GetGroupBalances(ctx, connect.NewRequest(&rpc.GetGroupBalancesRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	if got := balanceOf(t, resp.Msg.Balances, bob.ID); got != -30.00 {
		t.Errorf("Bob balance after repayment = %v, want -30.00", got)
	}
	if got := balanceOf(t, resp.Msg.Balances, alice.ID); got != 30.00 {
		t.Errorf("Alice balance after repayment = %v, want 30.00", got)
	}

	list, err := clients.groups.ListSettlements(ctx, connect.NewRequest(&rpc.ListSettlementsRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("ListSettlements failed: %v", err)
	}
	if len(list.Msg.Settlements) != 1 || list.Msg.Settlements[0].Note != "partial" {
		t.Errorf("ListSettlements = %+v, want one settlement with note", list.Msg.Settlements)
	}
}

func TestAddExpense_Validation(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")

	tests := []struct {
		name     string
		req      *rpc.AddExpenseRequest
		wantCode connect.Code
	}{
		{
			name: "unknown payer",
			req: &rpc.AddExpenseRequest{
				GroupID: group.ID, Description: "x", Amount: 10, PaidBy: "ghost",
			},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "non-positive amount",
			req: &rpc.AddExpenseRequest{
				GroupID: group.ID, Description: "x", Amount: 0, PaidBy: alice.ID,
			},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "empty description",
			req: &rpc.AddExpenseRequest{
				GroupID: group.ID, Description: "", Amount: 10, PaidBy: alice.ID,
			},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "missing group",
			req: &rpc.AddExpenseRequest{
				GroupID: "missing", Description: "x", Amount: 10, PaidBy: alice.ID,
			},
			wantCode: connect.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clients.expenses.AddExpense(ctx, connect.NewRequest(tt.req))
			if connect.CodeOf(err) != tt.wantCode {
				t.Errorf("AddExpense error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestExpenseLifecycle(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")

	added, err := clients.expenses.AddExpense(ctx, connect.NewRequest(&rpc.AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      42.50,
		PaidBy:      alice.ID,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	expense := added.Msg.Expense
	if expense.Amount != 42.50 {
		t.Errorf("stored amount = %v, want 42.50", expense.Amount)
	}

	got, err := clients.expenses.GetExpense(ctx, connect.NewRequest(&rpc.GetExpenseRequest{
		ExpenseID: expense.ID,
	}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got.Msg.Expense.Description != "Dinner" {
		t.Errorf("GetExpense = %+v", got.Msg.Expense)
	}

	list, err := clients.expenses.ListExpenses(ctx, connect.NewRequest(&rpc.ListExpensesRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 1 {
		t.Errorf("ListExpenses returned %d, want 1", len(list.Msg.Expenses))
	}

	if _, err := clients.expenses.DeleteExpense(ctx, connect.NewRequest(&rpc.DeleteExpenseRequest{
		ExpenseID: expense.ID,
	})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	_, err = clients.expenses.GetExpense(ctx, connect.NewRequest(&rpc.GetExpenseRequest{
		ExpenseID: expense.ID,
	}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("GetExpense after delete: error = %v, want NotFound", err)
	}
}

func TestGroupLifecycle(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice")

	renamed, err := clients.groups.UpdateGroup(ctx, connect.NewRequest(&rpc.UpdateGroupRequest{
		GroupID: group.ID,
		Name:    "Renamed",
	}))
	if err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if renamed.Msg.Group.Name != "Renamed" {
		t.Errorf("group name = %q, want Renamed", renamed.Msg.Group.Name)
	}

	added, err := clients.groups.AddMember(ctx, connect.NewRequest(&rpc.AddMemberRequest{
		GroupID: group.ID,
		Name:    "Bob",
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if added.Msg.Member.ID == "" {
		t.Error("AddMember returned member without ID")
	}

	list, err := clients.groups.ListGroups(ctx, connect.NewRequest(&rpc.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list.Msg.Groups) != 1 || len(list.Msg.Groups[0].Members) != 2 {
		t.Errorf("ListGroups = %+v, want one group with 2 members", list.Msg.Groups)
	}

	if _, err := clients.groups.DeleteGroup(ctx, connect.NewRequest(&rpc.DeleteGroupRequest{
		GroupID: group.ID,
	})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err = clients.groups.GetGroup(ctx, connect.NewRequest(&rpc.GetGroupRequest{GroupID: group.ID}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("GetGroup after delete: error = %v, want NotFound", err)
	}
}

// Adding a member re-splits history: the group endpoint always computes
// against the current roster.
func TestGroupBalances_RosterGrowth(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")

	_, err := clients.expenses.AddExpense(ctx, connect.NewRequest(&rpc.AddExpenseRequest{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      90.00,
		PaidBy:      alice.ID,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	added, err := clients.groups.AddMember(ctx, connect.NewRequest(&rpc.AddMemberRequest{
		GroupID: group.ID,
		Name:    "Carol",
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	resp, err := clients.groups.GetGroupBalances(ctx, connect.NewRequest(&rpc.GetGroupBalancesRequest{
		GroupID: group.ID,
	}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	if got := balanceOf(t, resp.Msg.Balances, added.Msg.Member.ID); got != -30.00 {
		t.Errorf("Carol balance = %v, want -30.00 (history re-split)", got)
	}
	if got := balanceOf(t, resp.Msg.Balances, alice.ID); got != 60.00 {
		t.Errorf("Alice balance = %v, want 60.00", got)
	}
}

func TestLedgerService_ComputeBalances(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	// 100.00 across three members: the spare cent lands on the lowest
	// member ID.
	resp, err := clients.ledger.ComputeBalances(ctx, connect.NewRequest(&rpc.ComputeBalancesRequest{
		Roster: []rpc.RosterMember{
			{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"},
		},
		Expenses: []rpc.LedgerExpense{
			{ID: "e1", Description: "dinner", Amount: 100.00, PaidBy: "a"},
		},
	}))
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	if got := balanceOf(t, resp.Msg.Balances, "a"); got != 66.66 {
		t.Errorf("A balance = %v, want 66.66", got)
	}
	if got := balanceOf(t, resp.Msg.Balances, "b"); got != -33.33 {
		t.Errorf("B balance = %v, want -33.33", got)
	}
	if got := balanceOf(t, resp.Msg.Balances, "c"); got != -33.33 {
		t.Errorf("C balance = %v, want -33.33", got)
	}

	plan, err := clients.ledger.ComputeSettlements(ctx, connect.NewRequest(&rpc.ComputeSettlementsRequest{
		Balances: resp.Msg.Balances,
	}))
	if err != nil {
		t.Fatalf("ComputeSettlements failed: %v", err)
	}
	want := []rpc.Settlement{
		{From: "b", To: "a", Amount: 33.33},
		{From: "c", To: "a", Amount: 33.33},
	}
	if len(plan.Msg.Settlements) != len(want) {
		t.Fatalf("plan = %+v, want %+v", plan.Msg.Settlements, want)
	}
	for i := range want {
		if plan.Msg.Settlements[i] != want[i] {
			t.Errorf("settlement[%d] = %+v, want %+v", i, plan.Msg.Settlements[i], want[i])
		}
	}
}

func TestLedgerService_Errors(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	_, err := clients.ledger.ComputeBalances(ctx, connect.NewRequest(&rpc.ComputeBalancesRequest{
		Roster: []rpc.RosterMember{{ID: "a", Name: "A"}},
		Expenses: []rpc.LedgerExpense{
			{ID: "e1", Description: "x", Amount: 10, PaidBy: "ghost"},
		},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("unknown payer: error = %v, want InvalidArgument", err)
	}

	_, err = clients.ledger.ComputeSettlements(ctx, connect.NewRequest(&rpc.ComputeSettlementsRequest{
		Balances: []rpc.Balance{{UserID: "a", Balance: 10.00}},
	}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("unbalanced input: error = %v, want InvalidArgument", err)
	}
}

func TestRecordSettlement_Validation(t *testing.T) {
	clients := setupTestServer(t)
	ctx := context.Background()

	group := createGroup(t, clients, "Alice", "Bob")
	alice := memberByName(t, group, "Alice")
	bob := memberByName(t, group, "Bob")

	tests := []struct {
		name string
		req  *rpc.RecordSettlementRequest
	}{
		{
			name: "non-member",
			req:  &rpc.RecordSettlementRequest{GroupID: group.ID, From: "ghost", To: alice.ID, Amount: 10},
		},
		{
			name: "self payment",
			req:  &rpc.RecordSettlementRequest{GroupID: group.ID, From: alice.ID, To: alice.ID, Amount: 10},
		},
		{
			name: "non-positive amount",
			req:  &rpc.RecordSettlementRequest{GroupID: group.ID, From: bob.ID, To: alice.ID, Amount: -5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := clients.groups.RecordSettlement(ctx, connect.NewRequest(tt.req))
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("RecordSettlement error = %v, want InvalidArgument", err)
			}
		})
	}
}
