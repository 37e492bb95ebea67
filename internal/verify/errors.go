package verify

import "errors"

// Expected alternate outcomes of the workflow.  They are returned so the
// event dispatcher can log them at info level and tests can assert on
// them; none of them is a failure of the machine itself.
var (
	ErrInvalidEmailFormat = errors.New("email missing required domain marker")
	ErrEmailNotFound      = errors.New("email not present in roster")
	ErrAccountInactive    = errors.New("roster account is not active")
	ErrSessionExists      = errors.New("verification session already in flight")
	ErrNoPendingSession   = errors.New("no pending verification session")
	ErrAlreadyVerified    = errors.New("member already verified")
	ErrOnCooldown         = errors.New("command on cooldown")
	ErrUnknownCommand     = errors.New("unknown command")
)
