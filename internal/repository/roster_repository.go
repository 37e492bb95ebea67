package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/enactusftu/gatekeeper/internal/model"
)

// RosterRepo provides data access to the `members` roster table.  Lookups
// are read-only; the only write this service performs is the verification
// write-back in RecordConfirmation.  Rows are never deleted here.
type RosterRepo struct{ DB *sql.DB }

// NewRosterRepo returns a new RosterRepo bound to the provided database.
func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{DB: db} }

const rosterColumns = "id,email,name,member_code,ban,role,process,dob,phone"

// FindByEmail fetches the roster record for a normalized email.  The email
// is trimmed and lower-cased before querying so lookups are
// case-insensitive.  When several rows share an email the first match
// wins; uniqueness is a data invariant enforced upstream.  A missing row
// yields ErrNotFound; any other error means the directory is unreachable
// or misconfigured and must be treated as a system failure by callers.
func (r *RosterRepo) FindByEmail(ctx context.Context, email string) (model.RosterRecord, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var rec model.RosterRecord
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+rosterColumns+" FROM members WHERE email=? ORDER BY id LIMIT 1",
		email).Scan(&rec.DocID, &rec.Email, &rec.Name, &rec.MemberCode,
		&rec.Ban, &rec.Role, &rec.Process, &rec.DOB, &rec.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RosterRecord{}, ErrNotFound
	}
	if err != nil {
		return model.RosterRecord{}, err
	}
	return rec, nil
}

// RecordConfirmation writes the verified chat identity back onto a roster
// row.  The update is idempotent: running it twice with the same identity
// leaves the row in the same final state, and verified_at keeps the
// timestamp of the first confirmation.
func (r *RosterRepo) RecordConfirmation(ctx context.Context, docID uint64, id model.ChatIdentity) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE members
		 SET discord_id=?, discord_username=?, discord_display_name=?,
		     verified=1,
		     verified_at=COALESCE(verified_at, UTC_TIMESTAMP()),
		     last_updated=UTC_TIMESTAMP()
		 WHERE id=?`,
		id.MemberID, id.Username, id.DisplayName, docID)
	return err
}
