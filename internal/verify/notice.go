package verify

import (
	"time"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// NoticeKind names a user-facing message the machine wants delivered.
// Rendering (embed layout, wording, localisation) is entirely the
// gateway's concern; the machine only supplies the facts.
type NoticeKind string

const (
	NoticeWelcome         NoticeKind = "welcome"
	NoticeInstructions    NoticeKind = "instructions"
	NoticeAlreadyVerified NoticeKind = "already_verified"
	NoticeSessionExists   NoticeKind = "session_exists"
	NoticeCooldown        NoticeKind = "cooldown"
	NoticePromptEmail     NoticeKind = "prompt_email"
	NoticeInvalidEmail    NoticeKind = "invalid_email"
	NoticeEmailNotFound   NoticeKind = "email_not_found"
	NoticeAccountInactive NoticeKind = "account_inactive"
	NoticeConfirmPrompt   NoticeKind = "confirm_prompt"
	NoticeNoSession       NoticeKind = "no_session"
	NoticeSuccess         NoticeKind = "success"
	NoticeRejected        NoticeKind = "rejected"
	NoticeExpired         NoticeKind = "expired"
	NoticeStatus          NoticeKind = "status"
	NoticeHelp            NoticeKind = "help"
	NoticeSystemError     NoticeKind = "system_error"
)

// Notice is one user-facing message.  MemberID addresses the member
// directly (DM or ephemeral reply); ChannelID, when set, addresses the
// member's confirmation channel instead.
type Notice struct {
	Kind        NoticeKind          `json:"kind"`
	MemberID    string              `json:"member_id,omitempty"`
	ChannelID   string              `json:"channel_id,omitempty"`
	Email       string              `json:"email,omitempty"`
	RoleName    string              `json:"role_name,omitempty"`
	WaitSeconds int                 `json:"wait_seconds,omitempty"`
	Record      *model.RosterRecord `json:"record,omitempty"`
	Status      *StatusReport       `json:"status,omitempty"`
}

// StatusReport answers the /status command.
//
// Fields:
//  State    – "verified", "pending" or "unknown".
//  RoleName – the verified role held, when State is "verified".
//  JoinedAt – when the member joined the server.
//  TimeLeft – remaining verification window, when State is "pending".
type StatusReport struct {
	State    string        `json:"state"`
	RoleName string        `json:"role_name,omitempty"`
	JoinedAt time.Time     `json:"joined_at"`
	TimeLeft time.Duration `json:"time_left,omitempty"`
}
