package verify

import (
	"context"
	"time"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// RosterDirectory is the external member directory.  FindByEmail must
// return repository.ErrNotFound for a missing row so the machine can tell
// "email not recognized" apart from a directory outage.
type RosterDirectory interface {
	FindByEmail(ctx context.Context, email string) (model.RosterRecord, error)
	RecordConfirmation(ctx context.Context, docID uint64, id model.ChatIdentity) error
}

// Platform is the narrow surface of the chat server the machine needs.
// Queries are served from the gateway's mirrored member view; imperative
// calls are forwarded to the gateway.  Role absence is never an error:
// FindRole reports it and callers treat scaffolding roles as advisory.
type Platform interface {
	Member(ctx context.Context, memberID string) (model.Member, bool)
	RestrictedMembers(ctx context.Context) []model.Member
	FindRole(ctx context.Context, names ...string) (string, bool)
	GrantRole(ctx context.Context, memberID, roleName string) error
	RevokeRole(ctx context.Context, memberID, roleName string) error
	OpenConfirmationChannel(ctx context.Context, m model.Member) (string, error)
	DeleteChannel(ctx context.Context, channelID string) error
	RemoveMember(ctx context.Context, memberID, reason string) error
}

// Notifier delivers user-facing notices.  Delivery is best effort; the
// machine never fails a transition because a message could not be sent.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// Scheduler arms the per-member deadline timers and runs delayed cleanup.
// Disarm must be safe on fired or never-armed keys.
type Scheduler interface {
	Arm(key string, at time.Time, fn func())
	Disarm(key string)
	After(d time.Duration, fn func())
}

// Cooldowner gates repeat command invocations; zero means allowed.
type Cooldowner interface {
	Check(ctx context.Context, memberID, command string) time.Duration
}
