package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/enactusftu/gatekeeper/internal/model"
)

func viewMember(id string, bot bool, roles ...string) model.Member {
	return model.Member{
		ID:       id,
		Username: "user-" + id,
		JoinedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		IsBot:    bot,
		Roles:    roles,
	}
}

func TestRestrictedFiltersBotsAndRoleCase(t *testing.T) {
	v := NewMemberView()
	v.Upsert(viewMember("m1", false, "visitor"))
	v.Upsert(viewMember("m2", false, "NEW MEMBER"))
	v.Upsert(viewMember("m3", false, "Enactus Member"))
	v.Upsert(viewMember("b1", true, "Visitor"))

	got := v.Restricted()
	ids := make([]string, 0, len(got))
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	require.ElementsMatch(t, []string{"m1", "m2"}, ids)
}

func TestAddAndDropRoleUpdateLocalState(t *testing.T) {
	v := NewMemberView()
	v.Upsert(viewMember("m1", false, "Visitor"))

	v.AddRole("m1", "Enactus Member")
	v.AddRole("m1", "Enactus Member") // second grant is a no-op

	m, ok := v.Get("m1")
	require.True(t, ok)
	require.Equal(t, []string{"Visitor", "Enactus Member"}, m.Roles)

	v.DropRole("m1", "Visitor")
	final, _ := v.Get("m1")
	require.Equal(t, []string{"Enactus Member"}, final.Roles)
}

func TestFindRoleCanonicalisesCase(t *testing.T) {
	v := NewMemberView()
	v.Snapshot(nil, []string{"Visitor", "Enactus Member", "Tech"})

	name, ok := v.FindRole("VISITOR", "New Member")
	require.True(t, ok)
	require.Equal(t, "Visitor", name)

	_, ok = v.FindRole("Leader")
	require.False(t, ok)
}

func TestFindRoleOptimisticBeforeSnapshot(t *testing.T) {
	v := NewMemberView()

	// No role list yet: report the first candidate so a grant published
	// right after startup is not silently skipped.
	name, ok := v.FindRole("Visitor", "New Member")
	require.True(t, ok)
	require.Equal(t, "Visitor", name)
}

func TestSnapshotReplacesMembers(t *testing.T) {
	v := NewMemberView()
	v.Upsert(viewMember("stale", false, "Visitor"))

	v.Snapshot([]model.Member{viewMember("m1", false, "Visitor")}, []string{"Visitor"})

	_, ok := v.Get("stale")
	require.False(t, ok)
	_, ok = v.Get("m1")
	require.True(t, ok)
}
