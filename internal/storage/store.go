// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"divvy/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for persistence operations. This abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the service layer.
//
// Balances and settlement plans are never stored; they are recomputed from
// the group's roster and expense list on every request.
type Store interface {
	// CreateGroup persists a new group and its initial members.
	// ID, member IDs and CreatedAt are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its full roster.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups with their rosters.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroupName renames a group.
	UpdateGroupName(ctx context.Context, groupID, name string) error

	// DeleteGroup removes a group and everything attached to it.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddMember adds a member to a group's roster and returns the member
	// with its assigned ID.
	AddMember(ctx context.Context, groupID, name string) (*models.Member, error)

	// CreateExpense persists a new expense. ID and CreatedAt are populated
	// by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves a group's expenses, oldest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement persists a recorded repayment. ID and CreatedAt are
	// populated by the store.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves a group's recorded repayments,
	// oldest first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]models.Settlement, error)

	// DeleteSettlement removes a recorded repayment by ID.
	DeleteSettlement(ctx context.Context, settlementID string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID. Returns (nil, nil) when no such
	// user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
