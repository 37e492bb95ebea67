package platform

import "github.com/enactusftu/gatekeeper/internal/verify"

// ActionType names an imperative operation forwarded to the gateway.
type ActionType string

const (
	ActionGrantRole     ActionType = "grant_role"
	ActionRevokeRole    ActionType = "revoke_role"
	ActionCreateChannel ActionType = "create_channel"
	ActionDeleteChannel ActionType = "delete_channel"
	ActionRemoveMember  ActionType = "remove_member"
	ActionNotify        ActionType = "notify"
)

// Action is one gateway command.  ChannelID is a reference minted by this
// process (the gateway keys created channels by it), so channel creation
// does not need a round trip.
type Action struct {
	Type        ActionType     `json:"type"`
	GuildID     string         `json:"guild_id"`
	MemberID    string         `json:"member_id,omitempty"`
	RoleName    string         `json:"role_name,omitempty"`
	ChannelID   string         `json:"channel_id,omitempty"`
	ChannelName string         `json:"channel_name,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Notice      *verify.Notice `json:"notice,omitempty"`
}
