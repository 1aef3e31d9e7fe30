// Package models defines the core domain models for Divvy.
//
// # Models
//
//   - Group: a named set of members who share expenses
//   - Member: a participant in a group, identified by an opaque ID
//   - Expense: a payment made by one member on behalf of the group
//   - Settlement: a recorded peer-to-peer repayment between members
//   - User: a registered account (authentication only; members are
//     group-scoped and independent of user accounts)
//
// # Design principles
//
//  1. Identity is the ID, never the display name. Members keep a stable ID
//     so balances and settlements stay resolvable when someone is renamed.
//  2. Money fields are integer cents (money.Cents); float currency values
//     exist only at the RPC boundary.
//  3. Relationships use ID strings instead of pointers to avoid circular
//     references.
package models
