package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/enactusftu/gatekeeper/internal/platform"
)

func marshal(t *testing.T, ev Event) []byte {
	t.Helper()
	b, err := json.Marshal(ev)
	require.NoError(t, err)
	return b
}

func TestDispatchRejectsMalformedBody(t *testing.T) {
	d := &Dispatcher{View: platform.NewMemberView()}
	require.Error(t, d.Dispatch([]byte("not json")))
}

func TestDispatchSnapshotReplacesView(t *testing.T) {
	view := platform.NewMemberView()
	d := &Dispatcher{View: view}

	joined := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	body := marshal(t, Event{
		Type: EventGuildSnapshot,
		Members: []MemberPayload{
			{ID: "m1", Username: "ali", JoinedAt: joined, Roles: []string{"Visitor"}},
			{ID: "b1", Username: "hook", IsBot: true, Roles: []string{"Visitor"}},
		},
		RoleNames: []string{"Visitor", "Enactus Member"},
	})
	require.NoError(t, d.Dispatch(body))

	m, ok := view.Get("m1")
	require.True(t, ok)
	require.Equal(t, "ali", m.Username)
	require.Equal(t, joined, m.JoinedAt)

	// Bots land in the view but never in the restricted list.
	restricted := view.Restricted()
	require.Len(t, restricted, 1)
	require.Equal(t, "m1", restricted[0].ID)

	name, ok := view.FindRole("visitor")
	require.True(t, ok)
	require.Equal(t, "Visitor", name)
}

func TestDispatchRoleAndLeaveEvents(t *testing.T) {
	view := platform.NewMemberView()
	d := &Dispatcher{View: view}

	require.NoError(t, d.Dispatch(marshal(t, Event{
		Type:   EventMemberJoined,
		Member: &MemberPayload{ID: "m1", Username: "ali", IsBot: true},
	})))
	// A joining bot only lands in the view; the machine ignores bots, so
	// the dispatcher can skip it entirely without a wired machine.

	require.NoError(t, d.Dispatch(marshal(t, Event{
		Type:     EventMemberRoles,
		MemberID: "m1",
		Roles:    []string{"Enactus Member", "Tech"},
	})))
	m, _ := view.Get("m1")
	require.Equal(t, []string{"Enactus Member", "Tech"}, m.Roles)

	require.NoError(t, d.Dispatch(marshal(t, Event{Type: EventMemberLeft, MemberID: "m1"})))
	_, ok := view.Get("m1")
	require.False(t, ok)
}
