package model

import "time"

// PendingVerification is an in-flight verification attempt for one member.
// It is created after a successful roster lookup during the email step and
// removed on confirmation accept, reject, or member-level expiry, whichever
// comes first.  At most one exists per member at any time.
//
// Fields:
//  SessionID – unique id of this attempt, used in logs and the admin API.
//  MemberID  – platform identifier of the member being verified.
//  Email     – email as submitted (pre-normalization).
//  Record    – roster snapshot taken at lookup time.
//  ChannelID – confirmation surface the accept/reject prompt was sent to.
//  CreatedAt – when the lookup succeeded and the session was opened.
type PendingVerification struct {
	SessionID string
	MemberID  string
	Email     string
	Record    RosterRecord
	ChannelID string
	CreatedAt time.Time
}

// Recognized role names.  The verified check tolerates a small set of
// synonyms so the bot works on servers configured before it was installed.
var (
	RestrictedRoles = []string{"Visitor", "New Member"}
	VerifiedRoles   = []string{"Enactus Member", "Member", "Verified"}
)

// GenericMemberRole is the fallback grant when no role matches the
// member's department name.
const GenericMemberRole = "Enactus Member"
