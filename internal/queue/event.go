// Package queue moves platform traffic over the message broker: inbound
// gateway events are consumed from one queue, outbound gateway actions
// are published to another.
package queue

import (
	"time"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// Event types emitted by the gateway.
const (
	EventMemberJoined   = "member.joined"
	EventMemberLeft     = "member.left"
	EventMemberRoles    = "member.roles"
	EventGuildSnapshot  = "guild.snapshot"
	EventCommandInvoked = "command.invoked"
	EventModalSubmitted = "modal.submitted"
	EventButtonClicked  = "button.clicked"
)

// Identifiers the gateway uses for the verification form and buttons.
const (
	FormVerifyEmail = "verify_email"
	FieldEmail      = "email"
	ButtonConfirm   = "confirm_yes"
	ButtonReject    = "confirm_no"
)

// MemberPayload carries one member over the wire.
type MemberPayload struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	JoinedAt    time.Time `json:"joined_at"`
	IsBot       bool      `json:"is_bot"`
	Roles       []string  `json:"roles,omitempty"`
}

// Model converts the payload into the domain member type.
func (p MemberPayload) Model() model.Member {
	return model.Member{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		JoinedAt:    p.JoinedAt,
		IsBot:       p.IsBot,
		Roles:       p.Roles,
	}
}

// Event is the envelope for every inbound gateway message.  Only the
// fields relevant to the Type are populated.
type Event struct {
	Type      string            `json:"type"`
	Member    *MemberPayload    `json:"member,omitempty"`
	MemberID  string            `json:"member_id,omitempty"`
	Command   string            `json:"command,omitempty"`
	FormID    string            `json:"form_id,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	ButtonID  string            `json:"button_id,omitempty"`
	Roles     []string          `json:"roles,omitempty"`
	Members   []MemberPayload   `json:"members,omitempty"`
	RoleNames []string          `json:"role_names,omitempty"`
}
