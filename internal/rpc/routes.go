package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// Procedure names follow the Connect convention /<service>/<method>; the
// service name is versioned so the surface can evolve without breaking
// clients.
const (
	AuthServiceName    = "divvy.v1.AuthService"
	GroupServiceName   = "divvy.v1.GroupService"
	ExpenseServiceName = "divvy.v1.ExpenseService"
	LedgerServiceName  = "divvy.v1.LedgerService"
)

const (
	AuthServiceRegisterProcedure = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure    = "/" + AuthServiceName + "/Login"

	GroupServiceCreateGroupProcedure       = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure          = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure        = "/" + GroupServiceName + "/ListGroups"
	GroupServiceUpdateGroupProcedure       = "/" + GroupServiceName + "/UpdateGroup"
	GroupServiceDeleteGroupProcedure       = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceAddMemberProcedure         = "/" + GroupServiceName + "/AddMember"
	GroupServiceGetGroupBalancesProcedure  = "/" + GroupServiceName + "/GetGroupBalances"
	GroupServiceGetSettlementPlanProcedure = "/" + GroupServiceName + "/GetSettlementPlan"
	GroupServiceRecordSettlementProcedure  = "/" + GroupServiceName + "/RecordSettlement"
	GroupServiceListSettlementsProcedure   = "/" + GroupServiceName + "/ListSettlements"

	ExpenseServiceAddExpenseProcedure    = "/" + ExpenseServiceName + "/AddExpense"
	ExpenseServiceGetExpenseProcedure    = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/" + ExpenseServiceName + "/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/" + ExpenseServiceName + "/DeleteExpense"

	LedgerServiceComputeBalancesProcedure    = "/" + LedgerServiceName + "/ComputeBalances"
	LedgerServiceComputeSettlementsProcedure = "/" + LedgerServiceName + "/ComputeSettlements"
)

// handlerOptions and clientOptions prepend the JSON codec so every handler
// and client on this surface speaks plain JSON.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(codec{})}, opts...)
}

// AuthServiceHandler is the server-side contract for divvy.v1.AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
}

// NewAuthServiceHandler returns the path prefix and handler to mount on a mux.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, o...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, o...))
	return "/" + AuthServiceName + "/", mux
}

// GroupServiceHandler is the server-side contract for divvy.v1.GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	GetGroupBalances(context.Context, *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error)
	GetSettlementPlan(context.Context, *connect.Request[GetSettlementPlanRequest]) (*connect.Response[GetSettlementPlanResponse], error)
	RecordSettlement(context.Context, *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error)
}

// NewGroupServiceHandler returns the path prefix and handler to mount on a mux.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, o...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, o...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, o...))
	mux.Handle(GroupServiceUpdateGroupProcedure, connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, o...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, o...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, o...))
	mux.Handle(GroupServiceGetGroupBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, o...))
	mux.Handle(GroupServiceGetSettlementPlanProcedure, connect.NewUnaryHandler(GroupServiceGetSettlementPlanProcedure, svc.GetSettlementPlan, o...))
	mux.Handle(GroupServiceRecordSettlementProcedure, connect.NewUnaryHandler(GroupServiceRecordSettlementProcedure, svc.RecordSettlement, o...))
	mux.Handle(GroupServiceListSettlementsProcedure, connect.NewUnaryHandler(GroupServiceListSettlementsProcedure, svc.ListSettlements, o...))
	return "/" + GroupServiceName + "/", mux
}

// ExpenseServiceHandler is the server-side contract for divvy.v1.ExpenseService.
type ExpenseServiceHandler interface {
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler returns the path prefix and handler to mount on a mux.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ExpenseServiceAddExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceAddExpenseProcedure, svc.AddExpense, o...))
	mux.Handle(ExpenseServiceGetExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, o...))
	mux.Handle(ExpenseServiceListExpensesProcedure, connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, o...))
	mux.Handle(ExpenseServiceDeleteExpenseProcedure, connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, o...))
	return "/" + ExpenseServiceName + "/", mux
}

// LedgerServiceHandler is the server-side contract for divvy.v1.LedgerService.
type LedgerServiceHandler interface {
	ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error)
	ComputeSettlements(context.Context, *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error)
}

// NewLedgerServiceHandler returns the path prefix and handler to mount on a mux.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	o := handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceComputeBalancesProcedure, connect.NewUnaryHandler(LedgerServiceComputeBalancesProcedure, svc.ComputeBalances, o...))
	mux.Handle(LedgerServiceComputeSettlementsProcedure, connect.NewUnaryHandler(LedgerServiceComputeSettlementsProcedure, svc.ComputeSettlements, o...))
	return "/" + LedgerServiceName + "/", mux
}
