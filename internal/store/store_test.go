package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/enactusftu/gatekeeper/internal/model"
)

func session(memberID, sessionID string) model.PendingVerification {
	return model.PendingVerification{
		SessionID: sessionID,
		MemberID:  memberID,
		Email:     "foo@enactus.org",
		ChannelID: "chan-" + memberID,
	}
}

func TestPutIfAbsentKeepsSingleSession(t *testing.T) {
	s := NewSessionStore()

	first, stored := s.PutIfAbsent(session("m1", "s1"))
	require.True(t, stored)
	require.Equal(t, "s1", first.SessionID)

	// A second attempt for the same member is rejected and the caller gets
	// the existing session back to redirect the user to it.
	existing, stored := s.PutIfAbsent(session("m1", "s2"))
	require.False(t, stored)
	require.Equal(t, "s1", existing.SessionID)
	require.Equal(t, 1, s.Len())
}

func TestRemoveReturnsSessionOnce(t *testing.T) {
	s := NewSessionStore()
	s.PutIfAbsent(session("m1", "s1"))

	pv, ok := s.Remove("m1")
	require.True(t, ok)
	require.Equal(t, "chan-m1", pv.ChannelID)

	_, ok = s.Remove("m1")
	require.False(t, ok, "second remove must be a no-op")
	require.False(t, s.Has("m1"))
}

func TestListSnapshots(t *testing.T) {
	s := NewSessionStore()
	s.PutIfAbsent(session("m1", "s1"))
	s.PutIfAbsent(session("m2", "s2"))

	got := s.List()
	require.Len(t, got, 2)

	// Mutating the snapshot does not affect the store.
	got[0].Email = "changed"
	for _, pv := range s.List() {
		require.Equal(t, "foo@enactus.org", pv.Email)
	}
}
