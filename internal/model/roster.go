package model

import "time"

// RosterRecord mirrors a row of the `members` roster table, the external
// system of record for legitimate organisation membership.  The roster is
// keyed by normalized email; this service only annotates rows with the
// verified chat identity and never deletes them.
//
// Fields:
//  DocID      – primary key of the roster row.
//  Email      – members.email, stored lower-cased and trimmed.
//  Name       – members.name, full display name.
//  MemberCode – members.member_code, the organisation's own member id.
//  Ban        – members.ban, the department ("ban") the member belongs to.
//  Role       – members.role, position within the department.
//  Process    – members.process, account status ("Active" or other).
//  DOB        – members.dob, optional, display only.
//  Phone      – members.phone, optional, display only.
type RosterRecord struct {
	DocID      uint64
	Email      string
	Name       string
	MemberCode string
	Ban        string
	Role       string
	Process    string
	DOB        *time.Time
	Phone      *string
}

// StatusActive is the roster process value that permits verification.
const StatusActive = "Active"

// DefaultPositionRole is the roster position value that carries no extra
// role grant; anything else is granted as a secondary role when a role of
// that name exists on the server.
const DefaultPositionRole = "Member"

// IsActive reports whether the record's account status allows verification.
func (r RosterRecord) IsActive() bool { return r.Process == StatusActive }

// ChatIdentity is the set of platform attributes written back to the
// roster once a member confirms their record.
//
// Fields:
//  MemberID    – platform identifier of the verified member.
//  Username    – platform account name.
//  DisplayName – server nickname at verification time.
type ChatIdentity struct {
	MemberID    string
	Username    string
	DisplayName string
}
