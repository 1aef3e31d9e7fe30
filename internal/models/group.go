package models

// Member is a participant in a group.
//
// Members are group-scoped: the same person in two groups is two members.
// The ID is the stable identity used throughout balance and settlement
// computation; Name is display-only.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the display name of the member.
	Name string
}

// Group represents a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the current roster. Balance computation always runs
	// against this roster, so membership changes re-split past expenses.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// MemberByID returns the member with the given ID, or false if the ID is not
// part of the roster.
func (g *Group) MemberByID(id string) (Member, bool) {
	for _, m := range g.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
