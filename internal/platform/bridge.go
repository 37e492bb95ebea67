package platform

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/enactusftu/gatekeeper/internal/model"
	"github.com/enactusftu/gatekeeper/internal/verify"
)

// ActionSink publishes one action towards the gateway.
type ActionSink interface {
	Publish(ctx context.Context, a Action) error
}

// Bridge implements the verification machine's Platform and Notifier
// dependencies: queries read the mirrored member view, imperative calls
// publish actions and update the view optimistically so a guard running
// right after a grant already sees it.
type Bridge struct {
	view    *MemberView
	sink    ActionSink
	guildID string
}

// NewBridge wires a bridge over the given view and sink.  Every action it
// publishes is stamped with the guild id so the gateway can serve more
// than one bot instance off a shared queue.
func NewBridge(view *MemberView, sink ActionSink, guildID string) *Bridge {
	return &Bridge{view: view, sink: sink, guildID: guildID}
}

// publish stamps the guild id before handing the action to the sink.
func (b *Bridge) publish(ctx context.Context, a Action) error {
	a.GuildID = b.guildID
	return b.sink.Publish(ctx, a)
}

// View exposes the member view for the event consumer to feed.
func (b *Bridge) View() *MemberView { return b.view }

func (b *Bridge) Member(_ context.Context, memberID string) (model.Member, bool) {
	return b.view.Get(memberID)
}

func (b *Bridge) RestrictedMembers(_ context.Context) []model.Member {
	return b.view.Restricted()
}

func (b *Bridge) FindRole(_ context.Context, names ...string) (string, bool) {
	return b.view.FindRole(names...)
}

func (b *Bridge) GrantRole(ctx context.Context, memberID, roleName string) error {
	if err := b.publish(ctx, Action{Type: ActionGrantRole, MemberID: memberID, RoleName: roleName}); err != nil {
		return err
	}
	b.view.AddRole(memberID, roleName)
	return nil
}

func (b *Bridge) RevokeRole(ctx context.Context, memberID, roleName string) error {
	if err := b.publish(ctx, Action{Type: ActionRevokeRole, MemberID: memberID, RoleName: roleName}); err != nil {
		return err
	}
	b.view.DropRole(memberID, roleName)
	return nil
}

// channelNameSafe strips everything but lower-case alphanumerics, the way
// the platform restricts channel names.
var channelNameSafe = regexp.MustCompile(`[^a-z0-9]+`)

// OpenConfirmationChannel mints a channel reference, asks the gateway to
// create a private channel under it and returns the reference.  The
// machine stores the reference in the session and addresses the
// confirmation prompt to it.
func (b *Bridge) OpenConfirmationChannel(ctx context.Context, m model.Member) (string, error) {
	name := "verify-" + channelNameSafe.ReplaceAllString(strings.ToLower(m.Username), "-")
	if len(name) > 90 {
		name = name[:90]
	}
	ref := name + "-" + uuid.NewString()[:8]
	err := b.publish(ctx, Action{
		Type:        ActionCreateChannel,
		MemberID:    m.ID,
		ChannelID:   ref,
		ChannelName: name,
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (b *Bridge) DeleteChannel(ctx context.Context, channelID string) error {
	return b.publish(ctx, Action{Type: ActionDeleteChannel, ChannelID: channelID})
}

func (b *Bridge) RemoveMember(ctx context.Context, memberID, reason string) error {
	if err := b.publish(ctx, Action{Type: ActionRemoveMember, MemberID: memberID, Reason: reason}); err != nil {
		return err
	}
	b.view.Remove(memberID)
	return nil
}

// Notify forwards a notice to the gateway for rendering and delivery.
// Delivery is best effort; a publish failure is logged and swallowed so a
// broken broker cannot fail a state transition.
func (b *Bridge) Notify(ctx context.Context, n verify.Notice) {
	if err := b.publish(ctx, Action{Type: ActionNotify, MemberID: n.MemberID, ChannelID: n.ChannelID, Notice: &n}); err != nil {
		log.Printf("platform: notify %s for %s failed: %v", n.Kind, n.MemberID, err)
	}
}
