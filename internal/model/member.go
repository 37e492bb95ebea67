package model

import (
	"strings"
	"time"
)

// Member identifies a participant of the community server as reported by
// the chat-platform gateway.  The ID is the platform's stable snowflake
// identifier and is treated as an opaque string everywhere in this
// codebase.  Bots are excluded from the verification workflow entirely.
//
// Fields:
//  ID          – stable platform identifier (opaque string).
//  Username    – account name, used for channel naming and logs.
//  DisplayName – server nickname, written back to the roster on success.
//  JoinedAt    – when the member joined the server.
//  IsBot       – true for bot accounts.
type Member struct {
	ID          string
	Username    string
	DisplayName string
	JoinedAt    time.Time
	IsBot       bool
	Roles       []string // current role names, maintained by the member view
}

// HasRole reports whether the member currently carries a role with one of
// the given names.  Comparison is exact; synonym tolerance is handled by
// the caller passing several names.
func (m Member) HasRole(names ...string) bool {
	for _, have := range m.Roles {
		for _, want := range names {
			if have == want {
				return true
			}
		}
	}
	return false
}

// HasRoleFold is HasRole with case-insensitive comparison.  The restricted
// role is matched this way because existing servers name it "visitor",
// "Visitor" or "New member" interchangeably.
func (m Member) HasRoleFold(names ...string) bool {
	for _, have := range m.Roles {
		for _, want := range names {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
