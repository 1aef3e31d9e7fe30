package rpc

// Currency amounts in these messages are two-decimal numbers (e.g. 33.33).
// Internally everything is integer cents; services convert at this boundary.

// User is the public view of an account (no password hash).
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Member is one participant of a group.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Group is a named roster of members.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// Expense is a payment made by one member on behalf of the group.
type Expense struct {
	ID          string  `json:"id"`
	GroupID     string  `json:"groupId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
	CreatedAt   int64   `json:"createdAt"`
}

// Balance is a member's signed position: positive means owed money,
// negative means owing.
type Balance struct {
	UserID  string  `json:"userId"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Settlement is one proposed transfer of a settlement plan. From and To are
// member IDs, not display names.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// RecordedSettlement is a repayment that has been persisted for a group.
type RecordedSettlement struct {
	ID        string  `json:"id"`
	GroupID   string  `json:"groupId"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note,omitempty"`
	CreatedAt int64   `json:"createdAt"`
}

// AuthService messages.

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// GroupService messages.

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	MemberNames []string `json:"memberNames"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type UpdateGroupResponse struct {
	Group Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type AddMemberResponse struct {
	Member Member `json:"member"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupBalancesResponse struct {
	TotalExpenses  float64   `json:"totalExpenses"`
	PerPersonShare float64   `json:"perPersonShare"`
	Balances       []Balance `json:"balances"`
}

type GetSettlementPlanRequest struct {
	GroupID string `json:"groupId"`
}

type GetSettlementPlanResponse struct {
	Settlements []Settlement `json:"settlements"`
}

type RecordSettlementRequest struct {
	GroupID string  `json:"groupId"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
	Note    string  `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement RecordedSettlement `json:"settlement"`
}

type ListSettlementsRequest struct {
	GroupID string `json:"groupId"`
}

type ListSettlementsResponse struct {
	Settlements []RecordedSettlement `json:"settlements"`
}

// ExpenseService messages.

type AddExpenseRequest struct {
	GroupID     string  `json:"groupId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type ListExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// LedgerService messages. These are the pure computation entry points: the
// caller supplies the roster and expenses (or balances) inline and nothing
// is read from storage.

type RosterMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LedgerExpense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PaidBy      string  `json:"paidBy"`
}

type ComputeBalancesRequest struct {
	Roster   []RosterMember  `json:"roster"`
	Expenses []LedgerExpense `json:"expenses"`
}

type ComputeBalancesResponse struct {
	TotalExpenses  float64   `json:"totalExpenses"`
	PerPersonShare float64   `json:"perPersonShare"`
	Balances       []Balance `json:"balances"`
}

type ComputeSettlementsRequest struct {
	Balances []Balance `json:"balances"`
}

type ComputeSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}
