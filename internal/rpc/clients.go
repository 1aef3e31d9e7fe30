package rpc

import (
	"context"

	"connectrpc.com/connect"
)

// AuthServiceClient is a client for divvy.v1.AuthService.
type AuthServiceClient struct {
	register *connect.Client[RegisterRequest, RegisterResponse]
	login    *connect.Client[LoginRequest, LoginResponse]
}

// NewAuthServiceClient constructs a client for divvy.v1.AuthService.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	o := clientOptions(opts)
	return &AuthServiceClient{
		register: connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, o...),
		login:    connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, o...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// GroupServiceClient is a client for divvy.v1.GroupService.
type GroupServiceClient struct {
	createGroup       *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup          *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups        *connect.Client[ListGroupsRequest, ListGroupsResponse]
	updateGroup       *connect.Client[UpdateGroupRequest, UpdateGroupResponse]
	deleteGroup       *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	addMember         *connect.Client[AddMemberRequest, AddMemberResponse]
	getGroupBalances  *connect.Client[GetGroupBalancesRequest, GetGroupBalancesResponse]
	getSettlementPlan *connect.Client[GetSettlementPlanRequest, GetSettlementPlanResponse]
	recordSettlement  *connect.Client[RecordSettlementRequest, RecordSettlementResponse]
	listSettlements   *connect.Client[ListSettlementsRequest, ListSettlementsResponse]
}

// NewGroupServiceClient constructs a client for divvy.v1.GroupService.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	o := clientOptions(opts)
	return &GroupServiceClient{
		createGroup:       connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, o...),
		getGroup:          connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, o...),
		listGroups:        connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, o...),
		updateGroup:       connect.NewClient[UpdateGroupRequest, UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, o...),
		deleteGroup:       connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, o...),
		addMember:         connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, o...),
		getGroupBalances:  connect.NewClient[GetGroupBalancesRequest, GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, o...),
		getSettlementPlan: connect.NewClient[GetSettlementPlanRequest, GetSettlementPlanResponse](httpClient, baseURL+GroupServiceGetSettlementPlanProcedure, o...),
		recordSettlement:  connect.NewClient[RecordSettlementRequest, RecordSettlementResponse](httpClient, baseURL+GroupServiceRecordSettlementProcedure, o...),
		listSettlements:   connect.NewClient[ListSettlementsRequest, ListSettlementsResponse](httpClient, baseURL+GroupServiceListSettlementsProcedure, o...),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[GetGroupBalancesRequest]) (*connect.Response[GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetSettlementPlan(ctx context.Context, req *connect.Request[GetSettlementPlanRequest]) (*connect.Response[GetSettlementPlanResponse], error) {
	return c.getSettlementPlan.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[RecordSettlementRequest]) (*connect.Response[RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListSettlements(ctx context.Context, req *connect.Request[ListSettlementsRequest]) (*connect.Response[ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}

// ExpenseServiceClient is a client for divvy.v1.ExpenseService.
type ExpenseServiceClient struct {
	addExpense    *connect.Client[AddExpenseRequest, AddExpenseResponse]
	getExpense    *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses  *connect.Client[ListExpensesRequest, ListExpensesResponse]
	deleteExpense *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
}

// NewExpenseServiceClient constructs a client for divvy.v1.ExpenseService.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	o := clientOptions(opts)
	return &ExpenseServiceClient{
		addExpense:    connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+ExpenseServiceAddExpenseProcedure, o...),
		getExpense:    connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, o...),
		listExpenses:  connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, o...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, o...),
	}
}

func (c *ExpenseServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for divvy.v1.LedgerService.
type LedgerServiceClient struct {
	computeBalances    *connect.Client[ComputeBalancesRequest, ComputeBalancesResponse]
	computeSettlements *connect.Client[ComputeSettlementsRequest, ComputeSettlementsResponse]
}

// NewLedgerServiceClient constructs a client for divvy.v1.LedgerService.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	o := clientOptions(opts)
	return &LedgerServiceClient{
		computeBalances:    connect.NewClient[ComputeBalancesRequest, ComputeBalancesResponse](httpClient, baseURL+LedgerServiceComputeBalancesProcedure, o...),
		computeSettlements: connect.NewClient[ComputeSettlementsRequest, ComputeSettlementsResponse](httpClient, baseURL+LedgerServiceComputeSettlementsProcedure, o...),
	}
}

func (c *LedgerServiceClient) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	return c.computeBalances.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ComputeSettlements(ctx context.Context, req *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error) {
	return c.computeSettlements.CallUnary(ctx, req)
}
