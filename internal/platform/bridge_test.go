package platform

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/enactusftu/gatekeeper/internal/verify"
)

type recordingSink struct {
	published []Action
	err       error
}

func (s *recordingSink) Publish(_ context.Context, a Action) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, a)
	return nil
}

func TestGrantRoleUpdatesViewOptimistically(t *testing.T) {
	view := NewMemberView()
	view.Upsert(viewMember("m1", false, "Visitor"))
	sink := &recordingSink{}
	b := NewBridge(view, sink, "g1")

	require.NoError(t, b.GrantRole(context.Background(), "m1", "Enactus Member"))
	require.NoError(t, b.RevokeRole(context.Background(), "m1", "Visitor"))

	// Guards that run right after must already see the new role set.
	m, _ := view.Get("m1")
	require.Equal(t, []string{"Enactus Member"}, m.Roles)

	require.Len(t, sink.published, 2)
	require.Equal(t, ActionGrantRole, sink.published[0].Type)
	require.Equal(t, ActionRevokeRole, sink.published[1].Type)
	require.Equal(t, "g1", sink.published[0].GuildID)
}

func TestGrantRoleFailureLeavesViewUntouched(t *testing.T) {
	view := NewMemberView()
	view.Upsert(viewMember("m1", false, "Visitor"))
	b := NewBridge(view, &recordingSink{err: errors.New("broker down")}, "g1")

	require.Error(t, b.GrantRole(context.Background(), "m1", "Enactus Member"))

	m, _ := view.Get("m1")
	require.Equal(t, []string{"Visitor"}, m.Roles)
}

func TestOpenConfirmationChannelMintsSafeRef(t *testing.T) {
	sink := &recordingSink{}
	b := NewBridge(NewMemberView(), sink, "g1")

	member := viewMember("m1", false)
	member.Username = "Ali Hosseini!"
	ref, err := b.OpenConfirmationChannel(context.Background(), member)
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^verify-ali-hosseini-.*[0-9a-f]{8}$`), ref)

	require.Len(t, sink.published, 1)
	a := sink.published[0]
	require.Equal(t, ActionCreateChannel, a.Type)
	require.Equal(t, ref, a.ChannelID)
	require.Equal(t, "m1", a.MemberID)
}

func TestRemoveMemberDropsFromView(t *testing.T) {
	view := NewMemberView()
	view.Upsert(viewMember("m1", false, "Visitor"))
	b := NewBridge(view, &recordingSink{}, "g1")

	require.NoError(t, b.RemoveMember(context.Background(), "m1", "verification window expired"))
	_, ok := view.Get("m1")
	require.False(t, ok)
}

func TestNotifySwallowsPublishErrors(t *testing.T) {
	b := NewBridge(NewMemberView(), &recordingSink{err: errors.New("broker down")}, "g1")

	// Must not panic or propagate; delivery is best effort.
	b.Notify(context.Background(), verify.Notice{Kind: verify.NoticeWelcome, MemberID: "m1"})
}
