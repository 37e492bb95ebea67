package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/enactusftu/gatekeeper/internal/model"
)

func newMockRepo(t *testing.T) (*RosterRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewRosterRepo(db), mock
}

func rosterRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "name", "member_code", "ban", "role", "process", "dob", "phone",
	})
}

func TestFindByEmailNormalizesInput(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Both spellings must hit the database with the same normalized key.
	for _, in := range []string{"Name@Enactus.ORG ", "name@enactus.org"} {
		mock.ExpectQuery("SELECT .+ FROM members WHERE email=").
			WithArgs("name@enactus.org").
			WillReturnRows(rosterRows().
				AddRow(7, "name@enactus.org", "Nguyen Van A", "EN123", "Tech", "Member", "Active", nil, nil))

		rec, err := repo.FindByEmail(context.Background(), in)
		require.NoError(t, err)
		require.Equal(t, uint64(7), rec.DocID)
		require.Equal(t, "Tech", rec.Ban)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .+ FROM members WHERE email=").
		WithArgs("missing@enactus.org").
		WillReturnRows(rosterRows())

	_, err := repo.FindByEmail(context.Background(), "missing@enactus.org")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmailDirectoryFailure(t *testing.T) {
	repo, mock := newMockRepo(t)

	boom := errors.New("connection refused")
	mock.ExpectQuery("SELECT .+ FROM members WHERE email=").
		WithArgs("foo@enactus.org").
		WillReturnError(boom)

	_, err := repo.FindByEmail(context.Background(), "foo@enactus.org")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestRecordConfirmationIdempotent(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := model.ChatIdentity{MemberID: "123", Username: "user#0", DisplayName: "User"}
	// The UPDATE carries COALESCE(verified_at, ...) so a second run does not
	// move the original confirmation timestamp.  Both executions succeed.
	for i := 0; i < 2; i++ {
		mock.ExpectExec("UPDATE members").
			WithArgs("123", "user#0", "User", uint64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, repo.RecordConfirmation(context.Background(), 7, id))
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
