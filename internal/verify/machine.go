// Package verify implements the verification state machine.  A joining
// member passes through joined → awaiting email → awaiting confirmation →
// verified, or is expired by a deadline timer (and the reconciliation
// sweep) or rejected at the confirmation step.  All transition handlers
// are idempotent under racing triggers: whichever handler observes "no
// pending session" or "already verified" first treats the situation as
// resolved and performs no destructive action.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enactusftu/gatekeeper/internal/config"
	"github.com/enactusftu/gatekeeper/internal/model"
	"github.com/enactusftu/gatekeeper/internal/repository"
	"github.com/enactusftu/gatekeeper/internal/store"
)

// Machine orchestrates all verification transitions for one community
// server.  It owns no goroutines itself; handlers run on the event
// dispatcher, timer callbacks and the sweep loop, and rely on the session
// store's locking for the short check-then-act sections.
type Machine struct {
	cfg      config.VerificationConfig
	roster   RosterDirectory
	platform Platform
	notify   Notifier
	sessions *store.SessionStore
	sched    Scheduler
	cooldown Cooldowner
	now      func() time.Time
}

// New wires a Machine.  All collaborators are required.
func New(cfg config.VerificationConfig, roster RosterDirectory, platform Platform,
	notify Notifier, sessions *store.SessionStore, sched Scheduler, cooldown Cooldowner) *Machine {
	return &Machine{
		cfg:      cfg,
		roster:   roster,
		platform: platform,
		notify:   notify,
		sessions: sessions,
		sched:    sched,
		cooldown: cooldown,
		now:      time.Now,
	}
}

// OnMemberJoined handles a new arrival: grant the restricted role when the
// server has one, send the welcome and instruction notices, and arm the
// removal deadline.  Bots are ignored entirely.
func (m *Machine) OnMemberJoined(ctx context.Context, member model.Member) {
	if member.IsBot {
		return
	}
	log.Printf("verify: member joined %s (%s)", member.Username, member.ID)

	// The restricted role is advisory scaffolding: its absence never
	// blocks the join flow.
	if role, ok := m.platform.FindRole(ctx, model.RestrictedRoles...); ok {
		if err := m.platform.GrantRole(ctx, member.ID, role); err != nil {
			log.Printf("verify: grant %s to %s failed: %v", role, member.ID, err)
		}
	}

	m.notify.Notify(ctx, Notice{Kind: NoticeWelcome, MemberID: member.ID})
	m.notify.Notify(ctx, Notice{Kind: NoticeInstructions, MemberID: member.ID})

	deadline := member.JoinedAt.Add(m.cfg.Window)
	id := member.ID
	m.sched.Arm(id, deadline, func() {
		m.OnDeadlineFired(context.Background(), id)
	})
}

// OnCommand dispatches a slash command.  The cooldown gate runs before
// anything else: a member repeating any command inside the window gets a
// wait notice and causes no state change.
func (m *Machine) OnCommand(ctx context.Context, memberID, command string) error {
	member, ok := m.platform.Member(ctx, memberID)
	if !ok || member.IsBot {
		return nil
	}
	if wait := m.cooldown.Check(ctx, memberID, command); wait > 0 {
		m.notify.Notify(ctx, Notice{
			Kind:        NoticeCooldown,
			MemberID:    memberID,
			WaitSeconds: int(wait.Round(time.Second) / time.Second),
		})
		return ErrOnCooldown
	}
	log.Printf("verify: /%s by %s", command, memberID)

	switch command {
	case "verify":
		return m.onVerifyRequested(ctx, member)
	case "status":
		m.reportStatus(ctx, member)
		return nil
	case "help":
		m.notify.Notify(ctx, Notice{Kind: NoticeHelp, MemberID: memberID})
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// onVerifyRequested begins (or resumes) the email-entry step.
func (m *Machine) onVerifyRequested(ctx context.Context, member model.Member) error {
	if member.HasRole(model.VerifiedRoles...) {
		// Informational, not a failure: the member is told they are done.
		m.notify.Notify(ctx, Notice{Kind: NoticeAlreadyVerified, MemberID: member.ID})
		return ErrAlreadyVerified
	}
	if pv, ok := m.sessions.Get(member.ID); ok {
		m.notify.Notify(ctx, Notice{Kind: NoticeSessionExists, MemberID: member.ID, ChannelID: pv.ChannelID})
		return ErrSessionExists
	}
	m.notify.Notify(ctx, Notice{Kind: NoticePromptEmail, MemberID: member.ID})
	return nil
}

// OnEmailSubmitted validates the submitted email, looks it up in the
// roster and, when it resolves to an active record, opens the
// confirmation step.  The domain-marker check runs before any roster
// call so obviously foreign emails never reach the directory.
func (m *Machine) OnEmailSubmitted(ctx context.Context, memberID, email string) error {
	member, ok := m.platform.Member(ctx, memberID)
	if !ok || member.IsBot {
		return nil
	}
	email = strings.TrimSpace(email)
	log.Printf("verify: email submitted by %s", memberID)

	if !strings.Contains(strings.ToLower(email), m.cfg.DomainMarker) {
		m.notify.Notify(ctx, Notice{Kind: NoticeInvalidEmail, MemberID: memberID, Email: email})
		return ErrInvalidEmailFormat
	}
	if pv, ok := m.sessions.Get(memberID); ok {
		m.notify.Notify(ctx, Notice{Kind: NoticeSessionExists, MemberID: memberID, ChannelID: pv.ChannelID})
		return ErrSessionExists
	}

	rec, err := m.roster.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		m.notify.Notify(ctx, Notice{Kind: NoticeEmailNotFound, MemberID: memberID, Email: email})
		return ErrEmailNotFound
	}
	if err != nil {
		log.Printf("verify: roster lookup for %s failed: %v", memberID, err)
		m.notify.Notify(ctx, Notice{Kind: NoticeSystemError, MemberID: memberID})
		return fmt.Errorf("roster lookup: %w", err)
	}
	if !rec.IsActive() {
		m.notify.Notify(ctx, Notice{Kind: NoticeAccountInactive, MemberID: memberID, Email: email, Record: &rec})
		return ErrAccountInactive
	}

	channelID, err := m.platform.OpenConfirmationChannel(ctx, member)
	if err != nil {
		log.Printf("verify: open channel for %s failed: %v", memberID, err)
		m.notify.Notify(ctx, Notice{Kind: NoticeSystemError, MemberID: memberID})
		return fmt.Errorf("open confirmation channel: %w", err)
	}

	pv := model.PendingVerification{
		SessionID: uuid.NewString(),
		MemberID:  memberID,
		Email:     email,
		Record:    rec,
		ChannelID: channelID,
		CreatedAt: m.now(),
	}
	if existing, stored := m.sessions.PutIfAbsent(pv); !stored {
		// Lost a race with a parallel submission; keep the first session
		// and drop the channel we just opened.
		_ = m.platform.DeleteChannel(ctx, channelID)
		m.notify.Notify(ctx, Notice{Kind: NoticeSessionExists, MemberID: memberID, ChannelID: existing.ChannelID})
		return ErrSessionExists
	}

	m.notify.Notify(ctx, Notice{
		Kind:      NoticeConfirmPrompt,
		MemberID:  memberID,
		ChannelID: channelID,
		Email:     email,
		Record:    &rec,
	})
	return nil
}

// OnConfirmationDecided finalizes a session.  Accept disarms the deadline,
// writes the identity back to the roster, grants the department role (or
// the generic member role), revokes the restricted role and removes the
// session.  Reject only discards the session; the deadline stays armed so
// the member either retries or expires.  Either way the confirmation
// channel is deleted after a fixed delay as cleanup, not as a transition.
func (m *Machine) OnConfirmationDecided(ctx context.Context, memberID string, accepted bool) error {
	pv, ok := m.sessions.Get(memberID)
	if !ok {
		m.notify.Notify(ctx, Notice{Kind: NoticeNoSession, MemberID: memberID})
		return ErrNoPendingSession
	}
	member, ok := m.platform.Member(ctx, memberID)
	if !ok {
		// The member left mid-confirmation; nothing to decide any more.
		m.sessions.Remove(memberID)
		m.sched.Disarm(memberID)
		m.scheduleChannelCleanup(pv.ChannelID, 0)
		return ErrNoPendingSession
	}

	if !accepted {
		m.sessions.Remove(memberID)
		m.notify.Notify(ctx, Notice{Kind: NoticeRejected, MemberID: memberID, ChannelID: pv.ChannelID, Email: pv.Email})
		m.scheduleChannelCleanup(pv.ChannelID, m.cfg.RejectCleanup)
		log.Printf("verify: %s rejected the roster match for %s", memberID, pv.Email)
		return nil
	}

	m.sched.Disarm(memberID)

	// Write-back failure is surfaced but does not block the grant: a
	// correctly-verified member must not be stranded behind a failed side
	// effect.
	identity := model.ChatIdentity{
		MemberID:    member.ID,
		Username:    member.Username,
		DisplayName: member.DisplayName,
	}
	if err := m.roster.RecordConfirmation(ctx, pv.Record.DocID, identity); err != nil {
		log.Printf("verify: roster write-back for %s failed: %v", memberID, err)
	}

	roleName := m.grantMembership(ctx, member, pv.Record)

	if restricted, ok := m.platform.FindRole(ctx, model.RestrictedRoles...); ok {
		if err := m.platform.RevokeRole(ctx, memberID, restricted); err != nil {
			log.Printf("verify: revoke %s from %s failed: %v", restricted, memberID, err)
		}
	}

	m.sessions.Remove(memberID)
	m.notify.Notify(ctx, Notice{
		Kind:      NoticeSuccess,
		MemberID:  memberID,
		ChannelID: pv.ChannelID,
		Email:     pv.Email,
		RoleName:  roleName,
		Record:    &pv.Record,
	})
	m.scheduleChannelCleanup(pv.ChannelID, m.cfg.AcceptCleanup)
	log.Printf("verify: %s verified as %s/%s", memberID, pv.Record.Ban, pv.Record.Role)
	return nil
}

// grantMembership grants the department role when the server has one of
// that name, else the generic member role, plus a secondary position role
// when the roster position is not the default.  It returns the primary
// role name actually granted for the success notice.
func (m *Machine) grantMembership(ctx context.Context, member model.Member, rec model.RosterRecord) string {
	primary, ok := m.platform.FindRole(ctx, rec.Ban)
	if !ok {
		primary, ok = m.platform.FindRole(ctx, model.GenericMemberRole, "Member")
	}
	if ok {
		if err := m.platform.GrantRole(ctx, member.ID, primary); err != nil {
			log.Printf("verify: grant %s to %s failed: %v", primary, member.ID, err)
		}
		if rec.Role != "" && rec.Role != model.DefaultPositionRole {
			if position, ok := m.platform.FindRole(ctx, rec.Role); ok {
				if err := m.platform.GrantRole(ctx, member.ID, position); err != nil {
					log.Printf("verify: grant %s to %s failed: %v", position, member.ID, err)
				}
			}
		}
		return primary
	}
	return model.GenericMemberRole
}

// OnDeadlineFired expires one member: if they are still unverified past
// their deadline they are notified best-effort and removed.  The handler
// is idempotent; a stale timer racing a completed confirmation observes
// the verified role (or the member already gone) and does nothing.
func (m *Machine) OnDeadlineFired(ctx context.Context, memberID string) {
	member, ok := m.platform.Member(ctx, memberID)
	if !ok {
		// Already removed or left on their own; just drop leftovers.
		m.sessions.Remove(memberID)
		m.sched.Disarm(memberID)
		return
	}
	if member.IsBot {
		return
	}
	if member.HasRole(model.VerifiedRoles...) {
		log.Printf("verify: stale deadline for verified member %s", memberID)
		m.sched.Disarm(memberID)
		return
	}

	log.Printf("verify: deadline expired for %s, removing", memberID)
	m.notify.Notify(ctx, Notice{Kind: NoticeExpired, MemberID: memberID})
	if err := m.platform.RemoveMember(ctx, memberID, "verification window expired"); err != nil {
		log.Printf("verify: remove %s failed: %v", memberID, err)
	}
	if pv, ok := m.sessions.Remove(memberID); ok {
		m.scheduleChannelCleanup(pv.ChannelID, 0)
	}
	m.sched.Disarm(memberID)
}

// Sweep re-derives overdue members from first principles: every
// restricted-role holder whose join time is older than the window and who
// has no confirmation in flight is expired through the same idempotent
// path as an individual timer.  This is the reconciliation that survives
// lost timers, including a process restart.
func (m *Machine) Sweep(ctx context.Context) {
	cutoff := m.now().Add(-m.cfg.Window)
	candidates := m.platform.RestrictedMembers(ctx)
	expired := 0
	for _, member := range candidates {
		if member.IsBot {
			continue
		}
		if member.JoinedAt.After(cutoff) {
			continue
		}
		if m.sessions.Has(member.ID) {
			// Mid-confirmation; the individual deadline still covers them.
			continue
		}
		m.OnDeadlineFired(ctx, member.ID)
		expired++
	}
	if expired > 0 {
		log.Printf("sweep: expired %d of %d restricted members", expired, len(candidates))
	}
}

// reportStatus answers /status from live role state.
func (m *Machine) reportStatus(ctx context.Context, member model.Member) {
	report := StatusReport{State: "unknown", JoinedAt: member.JoinedAt}
	switch {
	case member.HasRole(model.VerifiedRoles...):
		report.State = "verified"
		for _, r := range model.VerifiedRoles {
			if member.HasRole(r) {
				report.RoleName = r
				break
			}
		}
	case member.HasRoleFold(model.RestrictedRoles...):
		report.State = "pending"
		if left := member.JoinedAt.Add(m.cfg.Window).Sub(m.now()); left > 0 {
			report.TimeLeft = left
		}
	}
	m.notify.Notify(ctx, Notice{Kind: NoticeStatus, MemberID: member.ID, Status: &report})
}

// scheduleChannelCleanup deletes a confirmation channel after the delay.
// A zero delay deletes immediately.  Deletion failures are logged only;
// the channel may already be gone.
func (m *Machine) scheduleChannelCleanup(channelID string, delay time.Duration) {
	if channelID == "" {
		return
	}
	run := func() {
		if err := m.platform.DeleteChannel(context.Background(), channelID); err != nil {
			log.Printf("verify: delete channel %s failed: %v", channelID, err)
		}
	}
	if delay <= 0 {
		run()
		return
	}
	m.sched.After(delay, run)
}
