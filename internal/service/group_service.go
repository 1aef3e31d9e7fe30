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

// GroupService implements divvy.v1.GroupService.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

var _ rpc.GroupServiceHandler = (*GroupService)(nil)

// CreateGroup creates a new group with its initial roster.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[rpc.CreateGroupRequest]) (*connect.Response[rpc.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberNames),
	)

	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name required"))
	}

	group := &models.Group{Name: req.Msg.Name}
	for _, name := range req.Msg.MemberNames {
		if name == "" {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("member name must be non-empty"))
		}
		group.Members = append(group.Members, models.Member{Name: name})
	}

	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&rpc.CreateGroupResponse{Group: toRPCGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[rpc.GetGroupRequest]) (*connect.Response[rpc.GetGroupResponse], error) {
	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}
	return connect.NewResponse(&rpc.GetGroupResponse{Group: toRPCGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[rpc.ListGroupsRequest]) (*connect.Response[rpc.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, asConnectError(err)
	}

	out := make([]rpc.Group, len(groups))
	for i, g := range groups {
		out[i] = toRPCGroup(g)
	}
	return connect.NewResponse(&rpc.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[rpc.UpdateGroupRequest]) (*connect.Response[rpc.UpdateGroupResponse], error) {
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name required"))
	}

	if err := s.store.UpdateGroupName(ctx, req.Msg.GroupID, req.Msg.Name); err != nil {
		slog.Warn("UpdateGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&rpc.UpdateGroupResponse{Group: toRPCGroup(group)}), nil
}

// DeleteGroup removes a group and everything attached to it.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[rpc.DeleteGroupRequest]) (*connect.Response[rpc.DeleteGroupResponse], error) {
	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Warn("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&rpc.DeleteGroupResponse{}), nil
}

// AddMember adds a member to a group's roster. Past expenses re-split across
// the grown roster on the next balance computation.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[rpc.AddMemberRequest]) (*connect.Response[rpc.AddMemberResponse], error) {
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("member name required"))
	}

	member, err := s.store.AddMember(ctx, req.Msg.GroupID, req.Msg.Name)
	if err != nil {
		slog.Warn("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Member added", "group_id", req.Msg.GroupID, "member_id", member.ID)
	return connect.NewResponse(&rpc.AddMemberResponse{
		Member: rpc.Member{ID: member.ID, Name: member.Name},
	}), nil
}

// GetGroupBalances computes each member's signed balance from the group's
// expenses, with recorded repayments netted in.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[rpc.GetGroupBalancesRequest]) (*connect.Response[rpc.GetGroupBalancesResponse], error) {
	summary, balances, err := s.groupBalances(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("GetGroupBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("GetGroupBalances successful",
		"group_id", req.Msg.GroupID,
		"members_count", len(balances),
	)
	return connect.NewResponse(&rpc.GetGroupBalancesResponse{
		TotalExpenses:  summary.TotalExpenses.Float(),
		PerPersonShare: summary.PerPersonShare,
		Balances:       toRPCBalances(balances),
	}), nil
}

// GetSettlementPlan computes the minimal set of transfers that zeroes the
// group's current balances.
func (s *GroupService) GetSettlementPlan(ctx context.Context, req *connect.Request[rpc.GetSettlementPlanRequest]) (*connect.Response[rpc.GetSettlementPlanResponse], error) {
	_, balances, err := s.groupBalances(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("GetSettlementPlan failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	plan, err := ledger.ComputeSettlements(balances)
	if err != nil {
		slog.Error("GetSettlementPlan failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("GetSettlementPlan successful",
		"group_id", req.Msg.GroupID,
		"settlements_count", len(plan),
	)
	return connect.NewResponse(&rpc.GetSettlementPlanResponse{
		Settlements: toRPCSettlements(plan),
	}), nil
}

// RecordSettlement persists a repayment between two members.
func (s *GroupService) RecordSettlement(ctx context.Context, req *connect.Request[rpc.RecordSettlementRequest]) (*connect.Response[rpc.RecordSettlementResponse], error) {
	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, asConnectError(err)
	}

	amount, err := money.PositiveFromFloat(req.Msg.Amount)
	if err != nil {
		return nil, asConnectError(err)
	}
	if req.Msg.From == req.Msg.To {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("from and to must differ"))
	}
	for _, id := range []string{req.Msg.From, req.Msg.To} {
		if _, ok := group.MemberByID(id); !ok {
			return nil, connect.NewError(connect.CodeInvalidArgument,
				fmt.Errorf("member %s not in group %s", id, group.ID))
		}
	}

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: req.Msg.From,
		ToMemberID:   req.Msg.To,
		Amount:       amount,
		CreatedBy:    middleware.GetUserID(ctx),
		Note:         req.Msg.Note,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, asConnectError(err)
	}

	slog.Info("Settlement recorded", "group_id", group.ID, "settlement_id", settlement.ID)
	return connect.NewResponse(&rpc.RecordSettlementResponse{
		Settlement: toRPCRecordedSettlement(settlement),
	}), nil
}

// ListSettlements retrieves a group's recorded repayments.
func (s *GroupService) ListSettlements(ctx context.Context, req *connect.Request[rpc.ListSettlementsRequest]) (*connect.Response[rpc.ListSettlementsResponse], error) {
	if _, err := s.store.GetGroup(ctx, req.Msg.GroupID); err != nil {
		return nil, asConnectError(err)
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("ListSettlements failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, asConnectError(err)
	}

	out := make([]rpc.RecordedSettlement, len(settlements))
	for i := range settlements {
		out[i] = toRPCRecordedSettlement(&settlements[i])
	}
	return connect.NewResponse(&rpc.ListSettlementsResponse{Settlements: out}), nil
}

// groupBalances loads a group snapshot, aggregates its expenses and nets
// recorded repayments into the result.
func (s *GroupService) groupBalances(ctx context.Context, groupID string) (*ledger.Summary, []ledger.Balance, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := ledger.ComputeBalances(group.Members, expenses)
	if err != nil {
		return nil, nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	balances, err := ledger.ApplySettlements(summary.Balances, settlements)
	if err != nil {
		return nil, nil, err
	}

	return summary, balances, nil
}
