package usecase

import "errors"

// Outcome is the closed set of named results a ledger operation can report.
// Anything outside this set is a storage failure and surfaces as ERROR with
// no entity mutation.
type Outcome string

const (
	OutcomeSuccess        Outcome = "SUCCESS"
	OutcomeRoomNotFound   Outcome = "ROOM_NOT_FOUND"
	OutcomeMemberNotFound Outcome = "MEMBER_NOT_FOUND"
	OutcomeConflict       Outcome = "CONFLICT"
	OutcomeInvalidDate    Outcome = "INVALID_DATE"
	OutcomeAlreadyPaid    Outcome = "ALREADY_PAID"
	OutcomeCancelled      Outcome = "CANCELLED"
	OutcomeTooLate        Outcome = "TOO_LATE"
	OutcomeAlreadyFinal   Outcome = "ALREADY_FINAL"
	OutcomeNotFound       Outcome = "NOT_FOUND"
	OutcomeAlreadyExists  Outcome = "ALREADY_EXISTS"
	OutcomeError          Outcome = "ERROR"
)

// errRolledBack aborts the enclosing transaction after a named outcome has
// been decided. It never reaches callers.
var errRolledBack = errors.New("operation rolled back")
