// Package platform adapts the chat-platform gateway for the verification
// machine.  The gateway is a separate process: imperative actions are
// published to it over the message broker, and queries are answered from
// a member view mirrored out of the gateway's event stream.
package platform

import (
	"strings"
	"sync"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// MemberView mirrors the server's membership and role list.  It is
// updated by the event consumer (joins, leaves, role changes, snapshots)
// and optimistically by the Bridge when it publishes grants and removals,
// so guards read their own writes before the gateway echoes them back.
type MemberView struct {
	mu      sync.RWMutex
	members map[string]model.Member
	roles   map[string]string // lower-cased name -> canonical name
}

// NewMemberView returns an empty view.
func NewMemberView() *MemberView {
	return &MemberView{
		members: make(map[string]model.Member),
		roles:   make(map[string]string),
	}
}

// Upsert stores or replaces one member.
func (v *MemberView) Upsert(m model.Member) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.members[m.ID] = m
}

// Remove forgets a member (left or removed).
func (v *MemberView) Remove(memberID string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.members, memberID)
}

// Get returns the member when known.
func (v *MemberView) Get(memberID string) (model.Member, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	m, ok := v.members[memberID]
	return m, ok
}

// SetRoles replaces a member's role list with the gateway's version.
func (v *MemberView) SetRoles(memberID string, roles []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if m, ok := v.members[memberID]; ok {
		m.Roles = roles
		v.members[memberID] = m
	}
}

// AddRole records a role grant locally until the gateway confirms it.
func (v *MemberView) AddRole(memberID, roleName string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.members[memberID]
	if !ok || m.HasRole(roleName) {
		return
	}
	m.Roles = append(append([]string(nil), m.Roles...), roleName)
	v.members[memberID] = m
}

// DropRole records a role revocation locally.
func (v *MemberView) DropRole(memberID, roleName string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	m, ok := v.members[memberID]
	if !ok {
		return
	}
	kept := make([]string, 0, len(m.Roles))
	for _, r := range m.Roles {
		if r != roleName {
			kept = append(kept, r)
		}
	}
	m.Roles = kept
	v.members[memberID] = m
}

// Snapshot replaces the whole view.  The gateway sends one on connect and
// whenever it resynchronises.
func (v *MemberView) Snapshot(members []model.Member, roleNames []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.members = make(map[string]model.Member, len(members))
	for _, m := range members {
		v.members[m.ID] = m
	}
	v.roles = make(map[string]string, len(roleNames))
	for _, name := range roleNames {
		v.roles[strings.ToLower(name)] = name
	}
}

// Restricted returns every non-bot member holding a restricted role.  The
// sweep re-derives overdue members from this list.
func (v *MemberView) Restricted() []model.Member {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var out []model.Member
	for _, m := range v.members {
		if m.IsBot {
			continue
		}
		if m.HasRoleFold(model.RestrictedRoles...) {
			out = append(out, m)
		}
	}
	return out
}

// FindRole returns the canonical name of the first requested role the
// server actually has.  Matching is case-insensitive.  Before a role
// snapshot has arrived the view has no role list and optimistically
// reports the first name as present; the gateway performs the real
// existence check when it applies the grant.
func (v *MemberView) FindRole(names ...string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if len(names) == 0 {
		return "", false
	}
	if len(v.roles) == 0 {
		return names[0], true
	}
	for _, want := range names {
		if canonical, ok := v.roles[strings.ToLower(want)]; ok {
			return canonical, true
		}
	}
	return "", false
}
