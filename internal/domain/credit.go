package domain

import "time"

// DefaultStartingCredits is the balance a user receives when their record is first touched.
const DefaultStartingCredits int64 = 50

type UserID string

type EntryType string

const (
	EntryTypeGeneration EntryType = "email_generation"
	EntryTypeManual     EntryType = "manual"
	EntryTypeRefund     EntryType = "refund"
	EntryTypeInitial    EntryType = "initial"
)

// Valid reports whether t is non-empty. Charge reasons are free-form, so any
// non-empty type is accepted.
func (t EntryType) Valid() bool {
	return t != ""
}

// IsGrant reports whether t may be used to add credits to a balance.
func (t EntryType) IsGrant() bool {
	switch t {
	case EntryTypeManual, EntryTypeRefund:
		return true
	default:
		return false
	}
}

type Balance struct {
	UserID    UserID
	Credits   int64
	UpdatedAt time.Time
}

// HistoryEntry is one row of the append-only credit audit trail.
type HistoryEntry struct {
	ID           string
	UserID       UserID
	Type         EntryType
	Change       int64
	BalanceAfter int64
	Timestamp    time.Time
}
